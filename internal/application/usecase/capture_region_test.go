package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/application/port/mocks"
	"github.com/bnema/areashot/internal/application/port/porttest"
	"github.com/bnema/areashot/internal/domain/entity"
	repomocks "github.com/bnema/areashot/internal/domain/repository/mocks"
)

type pngEncoder struct{}

func (pngEncoder) Encode(w io.Writer, img image.Image, _ entity.OutputFormat) error {
	return png.Encode(w, img)
}

type memStore struct {
	saved map[string]image.Image
}

func (s *memStore) Save(_ context.Context, dir, name string, img image.Image, format entity.OutputFormat) (string, error) {
	if s.saved == nil {
		s.saved = map[string]image.Image{}
	}
	path := filepath.Join(dir, name+format.Extension())
	s.saved[path] = img
	return path, nil
}

func notificationOf(kind port.NotificationType) interface{} {
	return mock.MatchedBy(func(n port.Notification) bool { return n.Type == kind })
}

func recordWithStatus(status entity.CaptureStatus) interface{} {
	return mock.MatchedBy(func(r *entity.CaptureRecord) bool { return r.Status == status })
}

func smallPage() *porttest.Page {
	return porttest.NewPage(1200, 2000, entity.Viewport{Width: 1200, Height: 800, DevicePixelRatio: 1})
}

func TestCaptureRegion_CopiesSavesAndRecords(t *testing.T) {
	ctx := testContext(t)
	page := smallPage()
	clipboard := mocks.NewMockImageClipboard(t)
	notifier := mocks.NewMockNotifier(t)
	repo := repomocks.NewMockCaptureRepository(t)
	store := &memStore{}

	var copied []byte
	clipboard.EXPECT().WriteImage(mock.Anything, mock.Anything).
		Run(func(_ context.Context, data []byte) { copied = data }).
		Return(nil).Once()
	notifier.EXPECT().Notify(mock.Anything, notificationOf(port.NotificationInfo)).Return(nil).Once()
	notifier.EXPECT().Notify(mock.Anything, notificationOf(port.NotificationSuccess)).Return(nil).Once()
	repo.EXPECT().Save(mock.Anything, recordWithStatus(entity.CaptureSucceeded)).Return(nil).Once()

	uc := NewCaptureRegionUseCase(newCompositor(page), clipboard, notifier, pngEncoder{}, store, repo)
	out, err := uc.Execute(ctx, CaptureInput{
		PageURL:   "https://example.test/article",
		Rect:      entity.DocumentRect{Left: 10, Top: 20, Width: 300, Height: 200},
		Directory: "/tmp/shots",
		Clipboard: true,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.FormatPNG, out.Record.Format)
	assert.Equal(t, 300, out.Record.OutputWidth)
	assert.Equal(t, 200, out.Record.OutputHeight)
	assert.Equal(t, "https://example.test/article", out.Record.PageURL)
	assert.True(t, out.Record.Succeeded())
	assert.Contains(t, store.saved, out.Record.FilePath)
	assert.Equal(t, ".png", filepath.Ext(out.Record.FilePath))

	decoded, err := png.Decode(bytes.NewReader(copied))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 200), decoded.Bounds())
}

func TestCaptureRegion_ClipboardFailureFailsCapture(t *testing.T) {
	ctx := testContext(t)
	clipboard := mocks.NewMockImageClipboard(t)
	notifier := mocks.NewMockNotifier(t)
	repo := repomocks.NewMockCaptureRepository(t)

	clipboard.EXPECT().WriteImage(mock.Anything, mock.Anything).Return(errors.New("no display")).Once()
	notifier.EXPECT().Notify(mock.Anything, notificationOf(port.NotificationInfo)).Return(nil).Once()
	notifier.EXPECT().Notify(mock.Anything, notificationOf(port.NotificationError)).Return(nil).Once()
	repo.EXPECT().Save(mock.Anything, recordWithStatus(entity.CaptureFailed)).Return(nil).Once()

	uc := NewCaptureRegionUseCase(newCompositor(smallPage()), clipboard, notifier, pngEncoder{}, nil, repo)
	out, err := uc.Execute(ctx, CaptureInput{
		Rect:      entity.DocumentRect{Width: 100, Height: 100},
		Clipboard: true,
	})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, entity.ErrClipboardWriteFailed)
}

func TestCaptureRegion_TileFailureIsRecorded(t *testing.T) {
	ctx := testContext(t)
	page := smallPage()
	page.FailCaptureAt = 1
	notifier := mocks.NewMockNotifier(t)
	repo := repomocks.NewMockCaptureRepository(t)

	notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Twice()
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(r *entity.CaptureRecord) bool {
		return r.Status == entity.CaptureFailed && r.Error != ""
	})).Return(nil).Once()

	uc := NewCaptureRegionUseCase(newCompositor(page), nil, notifier, pngEncoder{}, nil, repo)
	_, err := uc.Execute(ctx, CaptureInput{Rect: entity.DocumentRect{Width: 100, Height: 100}})

	assert.ErrorIs(t, err, entity.ErrTileCaptureFailed)
}

func TestCaptureRegion_HistoryFailureDoesNotFailCapture(t *testing.T) {
	ctx := testContext(t)
	notifier := mocks.NewMockNotifier(t)
	repo := repomocks.NewMockCaptureRepository(t)

	notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return(errors.New("bus down")).Twice()
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	uc := NewCaptureRegionUseCase(newCompositor(smallPage()), nil, notifier, pngEncoder{}, nil, repo)
	out, err := uc.Execute(ctx, CaptureInput{Rect: entity.DocumentRect{Width: 50, Height: 50}})

	require.NoError(t, err)
	assert.True(t, out.Record.Succeeded())
	assert.Empty(t, out.Record.FilePath)
}

func TestCaptureRegion_WarnsAboutUnreachedTiles(t *testing.T) {
	ctx := testContext(t)
	page := smallPage()
	page.Frozen = true
	notifier := mocks.NewMockNotifier(t)

	var warning port.Notification
	notifier.EXPECT().Notify(mock.Anything, notificationOf(port.NotificationInfo)).Return(nil).Once()
	notifier.EXPECT().Notify(mock.Anything, notificationOf(port.NotificationWarning)).
		Run(func(_ context.Context, n port.Notification) { warning = n }).
		Return(nil).Once()

	uc := NewCaptureRegionUseCase(newCompositor(page), nil, notifier, pngEncoder{}, &memStore{}, nil)
	out, err := uc.Execute(ctx, CaptureInput{
		Rect:      entity.DocumentRect{Width: 300, Height: 2000},
		Directory: "/tmp/shots",
	})

	require.NoError(t, err)
	assert.True(t, out.Record.Succeeded(), "reachable tiles still make a capture")
	assert.Contains(t, warning.Message, "could not be reached and are blank")
	assert.Contains(t, warning.Message, fmt.Sprintf("of %d tiles", out.Record.Tiles))
}

func TestSuccessMessage(t *testing.T) {
	tests := []struct {
		name   string
		record entity.CaptureRecord
		want   string
	}{
		{name: "clipboard only", record: entity.CaptureRecord{Clipboard: true}, want: msgCopied},
		{name: "file only", record: entity.CaptureRecord{FilePath: "/tmp/a.png"}, want: "Screenshot saved to /tmp/a.png"},
		{name: "both", record: entity.CaptureRecord{Clipboard: true, FilePath: "/tmp/a.png"}, want: msgCopied + " Saved to /tmp/a.png"},
		{name: "neither", record: entity.CaptureRecord{}, want: "Screenshot captured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, successMessage(&tt.record))
		})
	}
}

func TestCaptureFileName(t *testing.T) {
	start := time.Date(2026, 10, 16, 9, 30, 5, 0, time.UTC)

	withHost := &entity.CaptureRecord{ID: "0123456789abcdef", PageURL: "https://www.example.com/docs"}
	assert.Equal(t, "areashot-example.com-20261016-093005-01234567", captureFileName(withHost, start))

	noHost := &entity.CaptureRecord{ID: "0123456789abcdef", PageURL: "about:blank"}
	assert.Equal(t, "areashot-20261016-093005-01234567", captureFileName(noHost, start))
}

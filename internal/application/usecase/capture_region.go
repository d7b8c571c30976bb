package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/domain/repository"
	pageurl "github.com/bnema/areashot/internal/domain/url"
	"github.com/bnema/areashot/internal/logging"
)

const (
	msgCapturing = "Capturing screenshot..."
	msgCopied    = "Screenshot copied to clipboard!"
	notifyTitle  = "areashot"
)

// regionCapturer produces the raster for a document rectangle.
type regionCapturer interface {
	Capture(ctx context.Context, target entity.DocumentRect, progress ProgressFunc) (*image.RGBA, entity.CaptureStats, error)
}

// CaptureRegionUseCase runs one capture end to end: composite, hand the
// image to the clipboard and disk, report to the user and record history.
type CaptureRegionUseCase struct {
	compositor regionCapturer
	clipboard  port.ImageClipboard
	notifier   port.Notifier
	encoder    port.ImageEncoder
	store      port.ImageStore
	repo       repository.CaptureRepository
	now        func() time.Time
}

// NewCaptureRegionUseCase creates a new CaptureRegionUseCase.
// clipboard, store and repo may be nil when those outputs are disabled.
func NewCaptureRegionUseCase(
	compositor regionCapturer,
	clipboard port.ImageClipboard,
	notifier port.Notifier,
	encoder port.ImageEncoder,
	store port.ImageStore,
	repo repository.CaptureRepository,
) *CaptureRegionUseCase {
	return &CaptureRegionUseCase{
		compositor: compositor,
		clipboard:  clipboard,
		notifier:   notifier,
		encoder:    encoder,
		store:      store,
		repo:       repo,
		now:        time.Now,
	}
}

// CaptureInput contains the parameters of one capture.
type CaptureInput struct {
	PageURL   string
	Rect      entity.DocumentRect
	Format    entity.OutputFormat
	Directory string
	Clipboard bool
	Progress  ProgressFunc
}

// CaptureOutput contains the result of a successful capture.
type CaptureOutput struct {
	Record *entity.CaptureRecord
	Image  *image.RGBA
}

// Execute captures input.Rect. A clipboard failure fails the capture.
func (uc *CaptureRegionUseCase) Execute(ctx context.Context, input CaptureInput) (*CaptureOutput, error) {
	record := &entity.CaptureRecord{
		ID:        uuid.NewString(),
		PageURL:   input.PageURL,
		Rect:      input.Rect,
		Format:    input.Format,
		Clipboard: input.Clipboard,
	}
	if record.Format == "" {
		record.Format = entity.FormatPNG
	}

	ctx = logging.WithCaptureID(ctx, record.ID)
	log := logging.FromContext(ctx)
	start := uc.now()
	record.CreatedAt = start.UTC()

	log.Info().
		Float64("left", input.Rect.Left).
		Float64("top", input.Rect.Top).
		Float64("width", input.Rect.Width).
		Float64("height", input.Rect.Height).
		Msg("capture started")
	uc.notify(ctx, port.NotificationInfo, msgCapturing)

	img, stats, err := uc.compositor.Capture(ctx, input.Rect, input.Progress)
	if err != nil {
		return nil, uc.fail(ctx, record, start, err)
	}
	record.Tiles = stats.Tiles
	record.OutputWidth = img.Bounds().Dx()
	record.OutputHeight = img.Bounds().Dy()
	if stats.Skipped > 0 {
		log.Warn().
			Int("skipped", stats.Skipped).
			Int("tiles", stats.Tiles).
			Msg("page did not scroll to every tile, unreached parts are blank")
	}

	if input.Clipboard {
		if err := uc.copyToClipboard(ctx, img); err != nil {
			return nil, uc.fail(ctx, record, start, err)
		}
	}

	if input.Directory != "" {
		if uc.store == nil {
			return nil, uc.fail(ctx, record, start, errors.New("no image store configured"))
		}
		name := captureFileName(record, start)
		path, err := uc.store.Save(ctx, input.Directory, name, img, record.Format)
		if err != nil {
			return nil, uc.fail(ctx, record, start, fmt.Errorf("save image: %w", err))
		}
		record.FilePath = path
	}

	record.Status = entity.CaptureSucceeded
	record.Duration = uc.now().Sub(start)
	uc.record(ctx, record)

	log.Info().
		Int("width", record.OutputWidth).
		Int("height", record.OutputHeight).
		Int("tiles", record.Tiles).
		Dur("duration", record.Duration).
		Str("path", record.FilePath).
		Msg("capture finished")
	if stats.Skipped > 0 {
		uc.notify(ctx, port.NotificationWarning, successMessage(record)+
			fmt.Sprintf(" %d of %d tiles could not be reached and are blank.", stats.Skipped, stats.Tiles))
	} else {
		uc.notify(ctx, port.NotificationSuccess, successMessage(record))
	}

	return &CaptureOutput{Record: record, Image: img}, nil
}

func (uc *CaptureRegionUseCase) copyToClipboard(ctx context.Context, img image.Image) error {
	if uc.clipboard == nil {
		return fmt.Errorf("%w: no clipboard available", entity.ErrClipboardWriteFailed)
	}

	var buf bytes.Buffer
	if err := uc.encoder.Encode(&buf, img, entity.FormatPNG); err != nil {
		return fmt.Errorf("%w: encode png: %w", entity.ErrClipboardWriteFailed, err)
	}
	if err := uc.clipboard.WriteImage(ctx, buf.Bytes()); err != nil {
		if errors.Is(err, entity.ErrClipboardWriteFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", entity.ErrClipboardWriteFailed, err)
	}
	return nil
}

func (uc *CaptureRegionUseCase) fail(ctx context.Context, record *entity.CaptureRecord, start time.Time, err error) error {
	logging.FromContext(ctx).Error().Err(err).Msg("capture failed")

	record.Status = entity.CaptureFailed
	record.Error = err.Error()
	record.Duration = uc.now().Sub(start)
	uc.record(ctx, record)

	uc.notify(ctx, port.NotificationError, "Screenshot failed: "+err.Error())
	return err
}

// record saves history. Failures are logged only.
func (uc *CaptureRegionUseCase) record(ctx context.Context, record *entity.CaptureRecord) {
	if uc.repo == nil {
		return
	}
	if err := uc.repo.Save(ctx, record); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to record capture history")
	}
}

// notify is fire-and-forget.
func (uc *CaptureRegionUseCase) notify(ctx context.Context, kind port.NotificationType, message string) {
	if uc.notifier == nil {
		return
	}
	err := uc.notifier.Notify(ctx, port.Notification{Title: notifyTitle, Message: message, Type: kind})
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("notification not delivered")
	}
}

func successMessage(record *entity.CaptureRecord) string {
	switch {
	case record.Clipboard && record.FilePath != "":
		return msgCopied + " Saved to " + record.FilePath
	case record.Clipboard:
		return msgCopied
	case record.FilePath != "":
		return "Screenshot saved to " + record.FilePath
	default:
		return "Screenshot captured"
	}
}

// captureFileName names a capture after its page host and start time.
func captureFileName(record *entity.CaptureRecord, start time.Time) string {
	stamp := start.Format("20060102-150405")
	if host := pageurl.FileStem(record.PageURL); host != "" {
		return fmt.Sprintf("areashot-%s-%s-%s", host, stamp, record.ID[:8])
	}
	return fmt.Sprintf("areashot-%s-%s", stamp, record.ID[:8])
}

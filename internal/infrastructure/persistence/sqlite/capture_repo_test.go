package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/domain/repository"
	"github.com/bnema/areashot/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/areashot/internal/logging"
)

func captureTestCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openRepo(t *testing.T) (context.Context, repository.CaptureRepository) {
	t.Helper()
	ctx := captureTestCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "history", "areashot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return ctx, sqlite.NewCaptureRepository(db)
}

func record(id string, status entity.CaptureStatus, at time.Time) *entity.CaptureRecord {
	return &entity.CaptureRecord{
		ID:           id,
		PageURL:      "https://example.com/" + id,
		Rect:         entity.DocumentRect{Left: 10.5, Top: 20, Width: 300, Height: 1200},
		OutputWidth:  600,
		OutputHeight: 2400,
		Tiles:        2,
		Format:       entity.FormatPNG,
		Clipboard:    true,
		Status:       status,
		Duration:     1500 * time.Millisecond,
		CreatedAt:    at,
	}
}

func TestCaptureRepository_SaveAndFind(t *testing.T) {
	ctx, repo := openRepo(t)
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	want := record("a", entity.CaptureSucceeded, at)
	want.FilePath = "/tmp/a.png"

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCaptureRepository_SaveUpdatesExisting(t *testing.T) {
	ctx, repo := openRepo(t)
	r := record("a", entity.CaptureFailed, time.Now())
	require.NoError(t, repo.Save(ctx, r))

	r.Status = entity.CaptureSucceeded
	r.FilePath = "/tmp/retry.png"
	require.NoError(t, repo.Save(ctx, r))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.CaptureSucceeded, got.Status)
	assert.Equal(t, "/tmp/retry.png", got.FilePath)
}

func TestCaptureRepository_GetRecentNewestFirst(t *testing.T) {
	ctx, repo := openRepo(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Save(ctx, record(id, entity.CaptureSucceeded, base.Add(time.Duration(i)*time.Hour))))
	}

	page, err := repo.GetRecent(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "new", page[0].ID)
	assert.Equal(t, "mid", page[1].ID)

	rest, err := repo.GetRecent(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "old", rest[0].ID)
}

func TestCaptureRepository_Stats(t *testing.T) {
	ctx, repo := openRepo(t)

	empty, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Nil(t, empty.LastAt)

	last := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, record("a", entity.CaptureSucceeded, last.Add(-time.Hour))))
	require.NoError(t, repo.Save(ctx, record("b", entity.CaptureFailed, last)))
	require.NoError(t, repo.Save(ctx, record("c", entity.CaptureSucceeded, last.Add(-2*time.Hour))))

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Succeeded)
	assert.Equal(t, int64(1), stats.Failed)
	require.NotNil(t, stats.LastAt)
	assert.True(t, last.Equal(*stats.LastAt))
}

func TestCaptureRepository_Delete(t *testing.T) {
	ctx, repo := openRepo(t)
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, record("old", entity.CaptureSucceeded, now.AddDate(0, 0, -40))))
	require.NoError(t, repo.Save(ctx, record("new", entity.CaptureSucceeded, now)))

	removed, err := repo.DeleteOlderThan(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := repo.GetRecent(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].ID)

	require.NoError(t, repo.DeleteAll(ctx))
	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestGetMigrationStatus(t *testing.T) {
	ctx := captureTestCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "areashot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	version, err := sqlite.GetMigrationStatus(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/domain/repository"
	"github.com/bnema/areashot/internal/logging"
)

const logURLMaxLen = 60

const captureColumns = `id, page_url, rect_left, rect_top, rect_width, rect_height,
	output_width, output_height, tiles, format, file_path, clipboard,
	status, error, duration_ms, created_at`

type captureRepo struct {
	db *sql.DB
}

// NewCaptureRepository creates a new SQLite-backed capture history repository.
func NewCaptureRepository(db *sql.DB) repository.CaptureRepository {
	return &captureRepo{db: db}
}

func (r *captureRepo) Save(ctx context.Context, record *entity.CaptureRecord) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("id", record.ID).
		Str("url", truncate(record.PageURL, logURLMaxLen)).
		Msg("saving capture record")

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO captures (`+captureColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			output_width = excluded.output_width,
			output_height = excluded.output_height,
			tiles = excluded.tiles,
			file_path = excluded.file_path,
			status = excluded.status,
			error = excluded.error,
			duration_ms = excluded.duration_ms`,
		record.ID,
		record.PageURL,
		record.Rect.Left,
		record.Rect.Top,
		record.Rect.Width,
		record.Rect.Height,
		record.OutputWidth,
		record.OutputHeight,
		record.Tiles,
		string(record.Format),
		record.FilePath,
		boolToInt(record.Clipboard),
		string(record.Status),
		record.Error,
		record.Duration.Milliseconds(),
		createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert capture: %w", err)
	}
	return nil
}

func (r *captureRepo) FindByID(ctx context.Context, id string) (*entity.CaptureRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+captureColumns+` FROM captures WHERE id = ?`, id)
	record, err := scanCapture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (r *captureRepo) GetRecent(ctx context.Context, limit, offset int) ([]*entity.CaptureRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+captureColumns+` FROM captures
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query captures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.CaptureRecord, 0, limit)
	for rows.Next() {
		record, err := scanCapture(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate captures: %w", err)
	}
	return records, nil
}

func (r *captureRepo) GetStats(ctx context.Context) (*entity.CaptureHistoryStats, error) {
	var (
		stats  entity.CaptureHistoryStats
		lastAt sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			MAX(created_at)
		FROM captures`,
		string(entity.CaptureSucceeded), string(entity.CaptureFailed),
	).Scan(&stats.Total, &stats.Succeeded, &stats.Failed, &lastAt)
	if err != nil {
		return nil, fmt.Errorf("query capture stats: %w", err)
	}
	if lastAt.Valid {
		t := time.UnixMilli(lastAt.Int64).UTC()
		stats.LastAt = &t
	}
	return &stats, nil
}

func (r *captureRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM captures WHERE created_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete old captures: %w", err)
	}
	return res.RowsAffected()
}

func (r *captureRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM captures`); err != nil {
		return fmt.Errorf("delete captures: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCapture(row rowScanner) (*entity.CaptureRecord, error) {
	var (
		record     entity.CaptureRecord
		format     string
		status     string
		clipboard  int64
		durationMs int64
		createdAt  int64
	)
	err := row.Scan(
		&record.ID,
		&record.PageURL,
		&record.Rect.Left,
		&record.Rect.Top,
		&record.Rect.Width,
		&record.Rect.Height,
		&record.OutputWidth,
		&record.OutputHeight,
		&record.Tiles,
		&format,
		&record.FilePath,
		&clipboard,
		&status,
		&record.Error,
		&durationMs,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	record.Format = entity.OutputFormat(format)
	record.Status = entity.CaptureStatus(status)
	record.Clipboard = clipboard != 0
	record.Duration = time.Duration(durationMs) * time.Millisecond
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package repository

import (
	"context"
	"time"

	"github.com/bnema/areashot/internal/domain/entity"
)

// CaptureRepository defines persistence for the capture history.
type CaptureRepository interface {
	// Save inserts a capture record.
	Save(ctx context.Context, record *entity.CaptureRecord) error

	// FindByID retrieves a record by its identifier.
	FindByID(ctx context.Context, id string) (*entity.CaptureRecord, error)

	// GetRecent retrieves recent records, newest first.
	GetRecent(ctx context.Context, limit, offset int) ([]*entity.CaptureRecord, error)

	// GetStats summarises the history.
	GetStats(ctx context.Context) (*entity.CaptureHistoryStats, error)

	// DeleteOlderThan removes records created before the given time and returns how many were removed.
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)

	// DeleteAll removes all records.
	DeleteAll(ctx context.Context) error
}

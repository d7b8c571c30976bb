package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/domain/repository"
	"github.com/bnema/areashot/internal/logging"
)

// ListCapturesUseCase handles browsing and pruning the capture history.
type ListCapturesUseCase struct {
	repo repository.CaptureRepository
	now  func() time.Time
}

// NewListCapturesUseCase creates a new ListCapturesUseCase.
func NewListCapturesUseCase(repo repository.CaptureRepository) *ListCapturesUseCase {
	return &ListCapturesUseCase{repo: repo, now: time.Now}
}

// ListCapturesOutput contains a page of history with totals.
type ListCapturesOutput struct {
	Captures []*entity.CaptureRecord
	Stats    *entity.CaptureHistoryStats
}

// Execute returns the most recent captures, newest first.
func (uc *ListCapturesUseCase) Execute(ctx context.Context, limit, offset int) (*ListCapturesOutput, error) {
	log := logging.FromContext(ctx)

	if limit <= 0 {
		limit = 50
	}

	records, err := uc.repo.GetRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get recent captures: %w", err)
	}

	stats, err := uc.repo.GetStats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to get capture stats")
		stats = &entity.CaptureHistoryStats{Total: int64(len(records))}
	}

	return &ListCapturesOutput{Captures: records, Stats: stats}, nil
}

// Purge removes captures older than the given number of days. Zero removes everything.
func (uc *ListCapturesUseCase) Purge(ctx context.Context, olderThanDays int) (int64, error) {
	log := logging.FromContext(ctx)

	if olderThanDays < 0 {
		return 0, fmt.Errorf("invalid retention %d days", olderThanDays)
	}

	if olderThanDays == 0 {
		if err := uc.repo.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("clear capture history: %w", err)
		}
		log.Info().Msg("capture history cleared")
		return -1, nil
	}

	cutoff := uc.now().AddDate(0, 0, -olderThanDays)
	removed, err := uc.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge capture history: %w", err)
	}

	log.Info().Int64("removed", removed).Time("before", cutoff).Msg("capture history purged")
	return removed, nil
}

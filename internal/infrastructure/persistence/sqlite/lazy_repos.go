package sqlite

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/domain/repository"
)

// LazyCaptureRepository opens the history database on first use.
type LazyCaptureRepository struct {
	provider port.DatabaseProvider
	onOpen   func(ctx context.Context, repo repository.CaptureRepository)
	repo     repository.CaptureRepository
	once     sync.Once
	initErr  error
}

// NewLazyCaptureRepository creates a lazy-loading capture repository. onOpen,
// when set, runs once right after the database opens.
func NewLazyCaptureRepository(
	provider port.DatabaseProvider,
	onOpen func(ctx context.Context, repo repository.CaptureRepository),
) *LazyCaptureRepository {
	return &LazyCaptureRepository{provider: provider, onOpen: onOpen}
}

var _ repository.CaptureRepository = (*LazyCaptureRepository)(nil)

func (r *LazyCaptureRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewCaptureRepository(db)
		if r.onOpen != nil {
			r.onOpen(ctx, r.repo)
		}
	})
	return r.initErr
}

func (r *LazyCaptureRepository) Save(ctx context.Context, record *entity.CaptureRecord) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, record)
}

func (r *LazyCaptureRepository) FindByID(ctx context.Context, id string) (*entity.CaptureRecord, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.FindByID(ctx, id)
}

func (r *LazyCaptureRepository) GetRecent(ctx context.Context, limit, offset int) ([]*entity.CaptureRecord, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetRecent(ctx, limit, offset)
}

func (r *LazyCaptureRepository) GetStats(ctx context.Context) (*entity.CaptureHistoryStats, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetStats(ctx)
}

func (r *LazyCaptureRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	if err := r.init(ctx); err != nil {
		return 0, err
	}
	return r.repo.DeleteOlderThan(ctx, before)
}

func (r *LazyCaptureRepository) DeleteAll(ctx context.Context) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.DeleteAll(ctx)
}

// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/areashot/internal/application/usecase"
	"github.com/bnema/areashot/internal/cli/styles"
	"github.com/bnema/areashot/internal/domain/build"
	"github.com/bnema/areashot/internal/domain/repository"
	"github.com/bnema/areashot/internal/infrastructure/config"
	"github.com/bnema/areashot/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/areashot/internal/logging"
)

// ErrHistoryDisabled is returned by history commands when history.enabled is off.
var ErrHistoryDisabled = errors.New("capture history is disabled (history.enabled = false)")

// Options are the root command's persistent flags.
type Options struct {
	// ConfigFile overrides the XDG config file.
	ConfigFile string
	// LogLevel overrides logging.level.
	LogLevel string
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	db        *sqlite.LazyDB
	// Captures is nil when history is disabled.
	Captures repository.CaptureRepository

	// Use cases
	ListCapturesUC *usecase.ListCapturesUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads configuration, sets up logging and opens the history database.
// The app context derives from parent.
func NewApp(parent context.Context, opts Options) (*App, error) {
	mgr, err := config.NewManagerWithFile(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCleanup, err := newLogger(cfg.Logging, opts.LogLevel)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithSessionID(logging.WithContext(parent, logger), logging.GenerateSessionID())

	a := &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(),
		ctx:        ctx,
		logCleanup: logCleanup,
	}

	if cfg.History.Enabled {
		a.openHistory(cfg)
	}

	return a, nil
}

// newLogger builds the CLI logger: console or json on stderr, plus a rotated
// JSON file when logging.enable_file_log is set.
func newLogger(cfg config.LoggingConfig, levelOverride string) (zerolog.Logger, func(), error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(level)
	logCfg.Format = cfg.Format
	logCfg.TimeFormat = "15:04:05"

	cleanup := func() {}
	if cfg.EnableFileLog && cfg.LogDir != "" {
		file, err := logging.OpenRotatingFile(logging.RotateOptions{
			Dir:        cfg.LogDir,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		logCfg.File = file
		cleanup = func() { _ = file.Close() }
	}

	return logging.New(logCfg), cleanup, nil
}

// openHistory prepares the capture database. It is opened on first use, at
// which point the retention window is applied.
func (a *App) openHistory(cfg *config.Config) {
	days := cfg.History.RetentionDays
	a.db = sqlite.NewLazyDB(cfg.Database.Path)
	a.Captures = sqlite.NewLazyCaptureRepository(a.db, func(ctx context.Context, repo repository.CaptureRepository) {
		if days <= 0 {
			return
		}
		removed, err := repo.DeleteOlderThan(ctx, time.Now().AddDate(0, 0, -days))
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Int("retention_days", days).Msg("history retention purge failed")
			return
		}
		if removed > 0 {
			logging.FromContext(ctx).Debug().Int64("removed", removed).Msg("history retention applied")
		}
	})
	a.ListCapturesUC = usecase.NewListCapturesUseCase(a.Captures)
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
		a.db = nil
	}
	if a.logCleanup != nil {
		a.logCleanup()
		a.logCleanup = nil
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// RequireHistory returns the history use case, or ErrHistoryDisabled.
func (a *App) RequireHistory() (*usecase.ListCapturesUseCase, error) {
	if a.ListCapturesUC == nil {
		return nil, ErrHistoryDisabled
	}
	return a.ListCapturesUC, nil
}

// internal/app/app.go
//
// Host bootstrap for the puzzle engine.
// Responsibilities:
//   - Load the word corpus (embedded or from files).
//   - Open the configured PuzzleStore backend (memory, file, sqlite, badger).
//   - Build the Engine, its ArchiveIndex and, when LEADERBOARD_URL is set,
//     the leaderboard Reporter.
//
// Presentation layers call New once at startup and Close on shutdown.

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailyword/internal/archive"
	"github.com/robalobadob/dailyword/internal/config"
	"github.com/robalobadob/dailyword/internal/game"
	"github.com/robalobadob/dailyword/internal/leaderboard"
	"github.com/robalobadob/dailyword/internal/sqlitedb"
	"github.com/robalobadob/dailyword/internal/store"
	"github.com/robalobadob/dailyword/internal/words"
)

// App is an assembled engine with its dependencies.
type App struct {
	Corpus  *words.Corpus
	Store   *store.PuzzleStore
	Engine  *game.Engine
	Archive *archive.Index

	closers []func() error
}

type options struct {
	logger   zerolog.Logger
	now      func() time.Time
	loc      *time.Location
	reporter game.Reporter
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger shared by every component.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.logger = l } }

// WithClock overrides the engine clock.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// WithLocation sets the zone used to parse archive date keys.
func WithLocation(loc *time.Location) Option { return func(o *options) { o.loc = loc } }

// WithReporter replaces the Reporter built from LEADERBOARD_URL.
func WithReporter(r game.Reporter) Option { return func(o *options) { o.reporter = r } }

// New assembles an App from cfg.
func New(ctx context.Context, cfg config.Engine, opts ...Option) (*App, error) {
	o := options{logger: log.Logger, now: time.Now, loc: time.Local}
	for _, fn := range opts {
		fn(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	corpus, err := words.Load(words.Source{AnswersFile: cfg.AnswersFile, AllowedFile: cfg.AllowedFile})
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	a := &App{Corpus: corpus}
	backend, closeFn, err := OpenBackend(cfg, o.logger)
	if err != nil {
		return nil, err
	}
	if closeFn != nil {
		a.closers = append(a.closers, closeFn)
	}

	a.Store, err = store.Open(ctx, backend, store.WithLogger(o.logger))
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open puzzle store: %w", err)
	}

	sel, _ := cfg.Selector()
	engineOpts := []game.Option{
		game.WithSelector(sel),
		game.WithClock(o.now),
		game.WithLogger(o.logger),
	}
	if cfg.ReportTimeout > 0 {
		engineOpts = append(engineOpts, game.WithReportTimeout(cfg.ReportTimeout))
	}
	reporter := o.reporter
	if reporter == nil && cfg.LeaderboardURL != "" {
		reporter = leaderboard.NewClient(cfg.LeaderboardURL)
	}
	if reporter != nil {
		engineOpts = append(engineOpts, game.WithReporter(reporter))
	}

	a.Engine = game.NewEngine(corpus, a.Store, engineOpts...)
	a.Archive = archive.New(a.Store, o.loc).WithLogger(o.logger)

	o.logger.Info().
		Str("backend", cfg.StoreBackend).
		Int("answers", corpus.Len()).
		Bool("leaderboard", reporter != nil).
		Msg("puzzle engine ready")
	return a, nil
}

// OpenBackend opens the blob backend named by cfg.StoreBackend. The returned
// close func is nil for backends that hold no resources.
func OpenBackend(cfg config.Engine, logger zerolog.Logger) (store.Backend, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemoryBackend(nil), nil, nil
	case config.BackendFile:
		return store.NewFileBackend(cfg.StorePath), nil, nil
	case config.BackendSQLite:
		db, err := sqlitedb.Open(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store.NewSQLiteBackend(db), db.Close, nil
	case config.BackendBadger:
		db, err := store.OpenBadger(cfg.StorePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store.NewBadgerBackend(db), db.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: STORE_BACKEND %q", config.ErrInvalid, cfg.StoreBackend)
}

// Close releases backend resources.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

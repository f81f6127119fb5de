// internal/game/engine.go
//
// Engine owns the per-date session lifecycle of a daily puzzle family.
// Responsibilities:
//   - Derive the day's Puzzle via the daily selector (once per load).
//   - Rebuild sessions from stored records by replaying their guesses.
//   - Mark finished past days read-only.
//   - Reset a day (destroy its record, start a fresh session).
//   - Hand won games to the leaderboard Reporter without waiting on it.
//
// Notes:
//   - The corpus and PuzzleStore are injected; the engine holds no globals.
//   - All session mutation must happen on one goroutine. Only the leaderboard
//     submission runs elsewhere, and it never touches session or store state.

package game

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailyword/internal/daily"
	"github.com/robalobadob/dailyword/internal/store"
	"github.com/robalobadob/dailyword/internal/words"
)

const defaultReportTimeout = 10 * time.Second

// Score is what the engine reports to the leaderboard after a win.
type Score struct {
	DateKey        string
	GuessCount     int
	ElapsedSeconds int
}

// Reporter submits a won game's score and returns the display name the
// leaderboard assigned.
type Reporter interface {
	SubmitScore(ctx context.Context, s Score) (displayName string, err error)
}

// Engine creates and resets sessions for calendar days.
type Engine struct {
	corpus        *words.Corpus
	store         *store.PuzzleStore
	selector      daily.Selector
	now           func() time.Time
	reporter      Reporter
	reportTimeout time.Duration
	logger        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSelector overrides the default puzzle selector (epoch and fallback word).
func WithSelector(s daily.Selector) Option { return func(e *Engine) { e.selector = s } }

// WithClock overrides time.Now; it decides "today" and measures elapsed time.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithReporter enables leaderboard submission on wins.
func WithReporter(r Reporter) Option { return func(e *Engine) { e.reporter = r } }

// WithReportTimeout bounds a single leaderboard submission.
func WithReportTimeout(d time.Duration) Option { return func(e *Engine) { e.reportTimeout = d } }

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.logger = l } }

// NewEngine wires an engine around a corpus and a store.
func NewEngine(c *words.Corpus, st *store.PuzzleStore, opts ...Option) *Engine {
	e := &Engine{
		corpus:        c,
		store:         st,
		selector:      daily.NewSelector(),
		now:           time.Now,
		reportTimeout: defaultReportTimeout,
		logger:        log.Logger,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Today returns the engine clock's current time.
func (e *Engine) Today() time.Time { return e.now() }

// Load returns the session for date's calendar day.
//
// A stored record is replayed through Evaluate to rebuild rows and hints; no
// write happens during load. A finished record for a day other than today
// produces a read-only session.
func (e *Engine) Load(date time.Time) *Session {
	p := e.puzzle(date)
	s := e.newSession(p)

	rec, ok := e.store.Load(p.DateKey)
	if !ok {
		return s
	}
	for _, g := range rec.Guesses {
		g = words.Normalize(g)
		if utf8.RuneCountInString(g) != p.WordLength {
			e.logger.Warn().Str("date", p.DateKey).Str("guess", g).Msg("skipping stored guess of wrong length")
			continue
		}
		if s.state.Terminal() {
			e.logger.Warn().Str("date", p.DateKey).Int("stored", len(rec.Guesses)).Msg("stored guesses continue past game end")
			break
		}
		s.commit(g)
	}
	if s.state.Status() != rec.Status {
		e.logger.Warn().Str("date", p.DateKey).Str("stored", rec.Status).Str("replayed", s.state.Status()).
			Msg("stored status disagrees with replayed guesses; using replay")
	}
	s.readOnly = s.state.Terminal() && p.DateKey != daily.DateKey(e.now())
	e.logger.Debug().Str("date", p.DateKey).Int("rows", len(s.rows)).Str("status", s.state.Status()).
		Bool("read_only", s.readOnly).Msg("session restored")
	return s
}

// Reset deletes the stored record for date and returns a fresh Playing session.
// The returned session is usable even when the delete could not be persisted.
func (e *Engine) Reset(ctx context.Context, date time.Time) (*Session, error) {
	p := e.puzzle(date)
	s := e.newSession(p)
	if err := e.store.Delete(ctx, p.DateKey); err != nil {
		e.logger.Error().Err(err).Str("date", p.DateKey).Msg("reset: delete stored record")
		return s, fmt.Errorf("reset %s: %w", p.DateKey, err)
	}
	e.logger.Info().Str("date", p.DateKey).Msg("session reset")
	return s, nil
}

func (e *Engine) puzzle(date time.Time) daily.Puzzle {
	p := e.selector.PuzzleFor(date, e.corpus)
	if p.Fallback {
		e.logger.Warn().Str("date", p.DateKey).Str("word", p.TargetWord).Msg("empty answer list; serving fallback puzzle")
	}
	return p
}

func (e *Engine) newSession(p daily.Puzzle) *Session {
	return &Session{
		engine:    e,
		puzzle:    p,
		state:     Playing{},
		hints:     KeyboardHints{},
		startedAt: e.now(),
	}
}

// report submits score on a detached goroutine. The returned channel receives
// the assigned display name, or is closed empty if the submission fails.
// It is buffered so the goroutine never blocks on an absent reader.
func (e *Engine) report(score Score) <-chan string {
	if e.reporter == nil {
		return nil
	}
	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error().Interface("panic", r).Str("date", score.DateKey).Msg("leaderboard submission panicked")
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), e.reportTimeout)
		defer cancel()

		name, err := e.reporter.SubmitScore(ctx, score)
		if err != nil {
			e.logger.Warn().Err(err).Str("date", score.DateKey).Int("guesses", score.GuessCount).
				Msg("leaderboard submission dropped")
			return
		}
		e.logger.Info().Str("date", score.DateKey).Str("display_name", name).Msg("leaderboard submission accepted")
		out <- name
	}()
	return out
}

package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/dailyword/internal/daily"
	"github.com/robalobadob/dailyword/internal/store"
	"github.com/robalobadob/dailyword/internal/words"
)

var d0 = time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)

func testCorpus() *words.Corpus {
	return words.NewCorpus(
		[]string{"LEVEL", "CRANE", "HOUSE"},
		[]string{"elver", "lever", "liver", "loser", "eerie"},
	)
}

type fixture struct {
	engine  *Engine
	store   *store.PuzzleStore
	backend *store.MemoryBackend
	clock   *time.Time
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	b := store.NewMemoryBackend(nil)
	st, err := store.Open(context.Background(), b, store.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	now := d0
	f := &fixture{store: st, backend: b, clock: &now}
	base := []Option{
		WithSelector(daily.Selector{Epoch: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}),
		WithClock(func() time.Time { return *f.clock }),
		WithLogger(zerolog.Nop()),
	}
	f.engine = NewEngine(testCorpus(), st, append(base, opts...)...)
	return f
}

func submit(t *testing.T, s *Session, word string) SubmitResult {
	t.Helper()
	res, err := s.SubmitGuess(context.Background(), word)
	require.NoError(t, err)
	require.NoError(t, res.PersistErr)
	return res
}

func TestEndToEndLoss(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	require.Equal(t, "level", s.Puzzle().TargetWord)
	assert.Equal(t, Playing{}, s.State())
	assert.Empty(t, s.Rows())

	res := submit(t, s, "ELVER")
	assert.Equal(t, []Outcome{P, P, C, C, A}, res.Row.Outcomes)
	assert.Equal(t, store.StatusPlaying, s.Status())
	assert.Len(t, s.Rows(), 1)
	assert.Empty(t, s.TargetWord(), "answer hidden while playing")

	for _, w := range []string{"crane", "house", "lever", "liver", "loser"} {
		res = submit(t, s, w)
	}
	assert.Equal(t, Lost{TargetWord: "level"}, res.State)
	assert.Equal(t, store.StatusLost, s.Status())
	assert.Len(t, s.Rows(), daily.MaxGuesses)
	assert.Equal(t, "level", s.TargetWord())
	assert.Nil(t, res.DisplayName)

	rec, ok := f.store.Load("2026-01-01")
	require.True(t, ok)
	assert.Equal(t, []string{"elver", "crane", "house", "lever", "liver", "loser"}, rec.Guesses)
	assert.Equal(t, store.StatusLost, rec.Status)

	_, err := s.SubmitGuess(context.Background(), "level")
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestLostIsStableAcrossLoads(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	for _, w := range []string{"elver", "crane", "house", "lever", "liver", "loser"} {
		submit(t, s, w)
	}
	for i := 0; i < 3; i++ {
		again := f.engine.Load(d0)
		assert.Equal(t, Lost{TargetWord: "level"}, again.State())
		assert.Len(t, again.Rows(), 6)
	}
	writes := f.backend.Writes()
	f.engine.Load(d0)
	assert.Equal(t, writes, f.backend.Writes(), "loading never writes")
}

func TestWin(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	submit(t, s, "crane")
	res := submit(t, s, "level")

	assert.Equal(t, Won{GuessCount: 2}, res.State)
	assert.True(t, res.Row.Solved())
	assert.Equal(t, "level", s.TargetWord())
	assert.True(t, f.store.IsComplete("2026-01-01"))
	assert.Equal(t, C, s.KeyboardHints()['l'])
}

func TestInvalidWordRejected(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	submit(t, s, "crane")
	writes := f.backend.Writes()

	res, err := s.SubmitGuess(context.Background(), "qzxvj")
	assert.ErrorIs(t, err, ErrInvalidWord)
	assert.Equal(t, Playing{}, res.State)
	assert.Len(t, s.Rows(), 1)
	assert.Equal(t, writes, f.backend.Writes())
	assert.Equal(t, "qzxvj", s.Buffer(), "typed row is kept for editing")
}

func TestRowBuffer(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)

	assert.False(t, s.DeleteLetter())
	for _, r := range "Hou" {
		assert.True(t, s.AddLetter(r))
	}
	assert.False(t, s.AddLetter('1'))
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIncompleteRow)

	assert.True(t, s.AddLetter('s'))
	assert.True(t, s.AddLetter('E'))
	assert.False(t, s.AddLetter('x'), "row is full")
	assert.Equal(t, "house", s.Buffer())

	assert.True(t, s.DeleteLetter())
	assert.True(t, s.AddLetter('e'))

	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "house", res.Row.Letters)
	assert.Empty(t, s.Buffer())
}

func TestSubmitGuessWrongLengthPanics(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	assert.Panics(t, func() { _, _ = s.SubmitGuess(context.Background(), "toolong") })
	var cv ContractViolation
	func() {
		defer func() { cv, _ = recover().(ContractViolation) }()
		_, _ = s.SubmitGuess(context.Background(), "abc")
	}()
	assert.Equal(t, "SubmitGuess", cv.Op)
}

func TestResumeReplaysIdentically(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	live := []SubmitResult{submit(t, s, "elver"), submit(t, s, "eerie")}

	resumed := f.engine.Load(d0)
	rows := resumed.Rows()
	require.Len(t, rows, 2)
	for i := range live {
		assert.Equal(t, live[i].Row, rows[i])
	}
	assert.Equal(t, s.KeyboardHints(), resumed.KeyboardHints())
	assert.False(t, resumed.IsReadOnly())

	res := submit(t, resumed, "level")
	assert.Equal(t, Won{GuessCount: 3}, res.State)
}

func TestPastFinishedDayIsReadOnly(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	submit(t, s, "level")

	*f.clock = d0.AddDate(0, 0, 1)
	past := f.engine.Load(d0)
	assert.True(t, past.IsReadOnly())
	assert.Equal(t, Won{GuessCount: 1}, past.State())

	writes := f.backend.Writes()
	assert.False(t, past.AddLetter('a'))
	assert.False(t, past.DeleteLetter())
	_, err := past.SubmitGuess(context.Background(), "crane")
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Equal(t, writes, f.backend.Writes())

	rec, _ := f.store.Load("2026-01-01")
	assert.Equal(t, []string{"level"}, rec.Guesses)
}

func TestPastUnfinishedDayIsPlayable(t *testing.T) {
	f := newFixture(t)
	submit(t, f.engine.Load(d0), "crane")

	*f.clock = d0.AddDate(0, 0, 3)
	past := f.engine.Load(d0)
	assert.False(t, past.IsReadOnly())
	assert.Len(t, past.Rows(), 1)
}

func TestTodayFinishedIsNotReadOnly(t *testing.T) {
	f := newFixture(t)
	submit(t, f.engine.Load(d0), "level")

	s := f.engine.Load(d0)
	assert.False(t, s.IsReadOnly())
	_, err := s.SubmitGuess(context.Background(), "crane")
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Load(d0)
	submit(t, s, "level")

	fresh, err := f.engine.Reset(context.Background(), d0)
	require.NoError(t, err)
	assert.Equal(t, Playing{}, fresh.State())
	assert.Empty(t, fresh.Rows())
	assert.False(t, f.store.HasRecord("2026-01-01"))

	submit(t, fresh, "crane")
	assert.Equal(t, Playing{}, f.engine.Load(d0).State())
}

func TestSelectionFollowsCalendar(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "crane", f.engine.Load(d0.AddDate(0, 0, 1)).Puzzle().TargetWord)
	assert.Equal(t, "house", f.engine.Load(d0.AddDate(0, 0, 2)).Puzzle().TargetWord)
}

func TestEmptyCorpusFallsBack(t *testing.T) {
	st, err := store.Open(context.Background(), store.NewMemoryBackend(nil))
	require.NoError(t, err)
	e := NewEngine(words.NewCorpus(nil, nil), st, WithLogger(zerolog.Nop()))

	s := e.Load(d0)
	assert.Equal(t, daily.DefaultFallbackWord, s.Puzzle().TargetWord)
	res, err := s.SubmitGuess(context.Background(), daily.DefaultFallbackWord)
	require.NoError(t, err)
	assert.Equal(t, Won{GuessCount: 1}, res.State)
}

func TestMalformedFallbackStillPlayable(t *testing.T) {
	st, err := store.Open(context.Background(), store.NewMemoryBackend(nil))
	require.NoError(t, err)
	corpus := words.NewCorpus(nil, []string{"crane", "house"})
	e := NewEngine(corpus, st, WithLogger(zerolog.Nop()), WithSelector(daily.Selector{Fallback: "hi"}))

	s := e.Load(d0)
	require.Equal(t, daily.DefaultFallbackWord, s.Puzzle().TargetWord)
	assert.NotPanics(t, func() {
		res, err := s.SubmitGuess(context.Background(), "house")
		require.NoError(t, err)
		assert.Equal(t, Playing{}, res.State)
	})
}

type errBackend struct{ *store.MemoryBackend }

func (errBackend) Write(context.Context, []byte) error { return errors.New("read-only filesystem") }

func TestPersistFailureDegrades(t *testing.T) {
	st, err := store.Open(context.Background(), errBackend{store.NewMemoryBackend(nil)})
	require.NoError(t, err)
	e := NewEngine(testCorpus(), st, WithLogger(zerolog.Nop()),
		WithSelector(daily.Selector{Epoch: d0}), WithClock(func() time.Time { return d0 }))

	s := e.Load(d0)
	res, err := s.SubmitGuess(context.Background(), "crane")
	require.NoError(t, err)
	assert.Error(t, res.PersistErr)
	assert.Len(t, s.Rows(), 1)
}

type fakeReporter struct {
	mu     sync.Mutex
	scores []Score
	name   string
	err    error
	block  chan struct{}
}

func (f *fakeReporter) SubmitScore(ctx context.Context, s Score) (string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append(f.scores, s)
	return f.name, f.err
}

func TestWinReportsScore(t *testing.T) {
	rep := &fakeReporter{name: "SwiftFalcon"}
	f := newFixture(t, WithReporter(rep))
	s := f.engine.Load(d0)
	submit(t, s, "crane")
	*f.clock = d0.Add(95 * time.Second)
	res := submit(t, s, "level")

	require.NotNil(t, res.DisplayName)
	select {
	case name := <-res.DisplayName:
		assert.Equal(t, "SwiftFalcon", name)
	case <-time.After(2 * time.Second):
		t.Fatal("no display name")
	}
	rep.mu.Lock()
	defer rep.mu.Unlock()
	assert.Equal(t, []Score{{DateKey: "2026-01-01", GuessCount: 2, ElapsedSeconds: 95}}, rep.scores)
}

func TestReportFailureIsDiscarded(t *testing.T) {
	rep := &fakeReporter{err: errors.New("network unreachable")}
	f := newFixture(t, WithReporter(rep))
	s := f.engine.Load(d0)
	res := submit(t, s, "level")

	select {
	case name, ok := <-res.DisplayName:
		assert.False(t, ok)
		assert.Empty(t, name)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
	assert.Equal(t, Won{GuessCount: 1}, s.State())
}

func TestReportDoesNotBlockTransition(t *testing.T) {
	rep := &fakeReporter{block: make(chan struct{})}
	f := newFixture(t, WithReporter(rep), WithReportTimeout(50*time.Millisecond))
	s := f.engine.Load(d0)

	res := submit(t, s, "level")
	assert.Equal(t, Won{GuessCount: 1}, res.State)
	assert.True(t, f.store.IsComplete("2026-01-01"), "state committed before the report finishes")

	select {
	case _, ok := <-res.DisplayName:
		assert.False(t, ok, "timed out submission yields no name")
	case <-time.After(2 * time.Second):
		t.Fatal("submission did not time out")
	}
}

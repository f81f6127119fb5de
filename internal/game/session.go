// internal/game/session.go
//
// Session is the mutable game for one calendar day.
//
// State transitions:
//   - Playing → Won when a submitted guess equals the answer.
//   - Playing → Lost when the last row is used without a win.
//   - Won and Lost are terminal; only Engine.Reset starts the day over.
//
// Every accepted submission persists the full record before returning.

package game

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/robalobadob/dailyword/internal/daily"
	"github.com/robalobadob/dailyword/internal/words"
)

// Session holds rows, state and keyboard hints for one day.
type Session struct {
	engine    *Engine
	puzzle    daily.Puzzle
	rows      []GuessRow
	state     State
	hints     KeyboardHints
	buffer    []rune
	readOnly  bool
	startedAt time.Time
}

// SubmitResult describes an accepted submission.
type SubmitResult struct {
	Row   GuessRow
	State State
	// PersistErr is set when the record could not be saved. The transition
	// still happened in memory.
	PersistErr error
	// DisplayName yields the leaderboard name after a win when a Reporter is
	// configured; it is closed without a value if the submission fails. Nil otherwise.
	DisplayName <-chan string
}

func (s *Session) DateKey() string      { return s.puzzle.DateKey }
func (s *Session) Puzzle() daily.Puzzle { return s.puzzle }
func (s *Session) State() State         { return s.state }
func (s *Session) Status() string       { return s.state.Status() }
func (s *Session) IsReadOnly() bool     { return s.readOnly }
func (s *Session) Buffer() string       { return string(s.buffer) }

// Rows returns a copy of the committed rows.
func (s *Session) Rows() []GuessRow { return append([]GuessRow(nil), s.rows...) }

// KeyboardHints returns a copy of the per-letter hints.
func (s *Session) KeyboardHints() KeyboardHints { return s.hints.Clone() }

// TargetWord reveals the answer once the session is terminal, else "".
func (s *Session) TargetWord() string {
	switch st := s.state.(type) {
	case Lost:
		return st.TargetWord
	case Won:
		return s.puzzle.TargetWord
	}
	return ""
}

// ShareGrid renders the committed rows as emoji.
func (s *Session) ShareGrid() string { return ShareGrid(s.rows) }

func (s *Session) editable() bool {
	return !s.readOnly && !s.state.Terminal()
}

// AddLetter appends an ASCII letter to the row buffer. It reports false and does
// nothing when the session is not editable, the row is full, or r is not a letter.
func (s *Session) AddLetter(r rune) bool {
	if !s.editable() || len(s.buffer) >= s.puzzle.WordLength {
		return false
	}
	switch {
	case r >= 'a' && r <= 'z':
	case r >= 'A' && r <= 'Z':
		r += 'a' - 'A'
	default:
		return false
	}
	s.buffer = append(s.buffer, r)
	return true
}

// DeleteLetter removes the last buffered letter.
func (s *Session) DeleteLetter() bool {
	if !s.editable() || len(s.buffer) == 0 {
		return false
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
	return true
}

// Submit evaluates the row buffer.
//
// Rejections (ErrReadOnly, ErrGameOver, ErrIncompleteRow, ErrInvalidWord) leave
// the session and the store untouched. Dictionary membership is checked before
// evaluation; the day's answer is always accepted, including a fallback answer.
func (s *Session) Submit(ctx context.Context) (SubmitResult, error) {
	switch {
	case s.readOnly:
		return SubmitResult{State: s.state}, ErrReadOnly
	case s.state.Terminal():
		return SubmitResult{State: s.state}, ErrGameOver
	case len(s.buffer) != s.puzzle.WordLength:
		return SubmitResult{State: s.state}, ErrIncompleteRow
	}

	candidate := string(s.buffer)
	if candidate != s.puzzle.TargetWord && !s.engine.corpus.IsAccepted(candidate) {
		s.engine.logger.Debug().Str("date", s.puzzle.DateKey).Str("guess", candidate).Msg("guess rejected")
		return SubmitResult{State: s.state}, ErrInvalidWord
	}

	row := s.commit(candidate)
	s.buffer = s.buffer[:0]
	res := SubmitResult{Row: row, State: s.state}

	if err := s.persist(ctx); err != nil {
		s.engine.logger.Error().Err(err).Str("date", s.puzzle.DateKey).Msg("persist session")
		res.PersistErr = err
	}

	if won, ok := s.state.(Won); ok {
		res.DisplayName = s.engine.report(Score{
			DateKey:        s.puzzle.DateKey,
			GuessCount:     won.GuessCount,
			ElapsedSeconds: int(s.engine.now().Sub(s.startedAt).Seconds()),
		})
	}
	return res, nil
}

// SubmitGuess replaces the row buffer with candidate and submits it.
// candidate must have exactly WordLength letters; anything else is a caller bug
// and panics with a ContractViolation.
func (s *Session) SubmitGuess(ctx context.Context, candidate string) (SubmitResult, error) {
	candidate = words.Normalize(candidate)
	if n := utf8.RuneCountInString(candidate); n != s.puzzle.WordLength {
		panic(ContractViolation{
			Op:     "SubmitGuess",
			Detail: fmt.Sprintf("candidate %q has %d letters, want %d", candidate, n, s.puzzle.WordLength),
		})
	}
	if s.editable() {
		s.buffer = []rune(candidate)
	}
	return s.Submit(ctx)
}

// commit evaluates guess, appends the row, merges hints and applies the
// transition. Shared by live submission and replay so both derive identical rows.
func (s *Session) commit(guess string) GuessRow {
	row := GuessRow{Letters: guess, Outcomes: Evaluate(guess, s.puzzle.TargetWord)}
	s.rows = append(s.rows, row)
	s.hints.Merge(row)

	switch {
	case guess == s.puzzle.TargetWord:
		s.state = Won{GuessCount: len(s.rows)}
	case len(s.rows) >= s.puzzle.MaxGuesses:
		s.state = Lost{TargetWord: s.puzzle.TargetWord}
	}
	return row
}

func (s *Session) persist(ctx context.Context) error {
	guesses := make([]string, len(s.rows))
	for i, r := range s.rows {
		guesses[i] = r.Letters
	}
	return s.engine.store.Save(ctx, s.puzzle.DateKey, guesses, s.state.Status())
}

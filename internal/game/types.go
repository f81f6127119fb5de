// internal/game/types.go
//
// Core type definitions for the daily puzzle engine.
// Defines:
//   - Outcome: per-letter result of a guess (correct/present/absent).
//   - GuessRow: one committed, evaluated guess.
//   - State: the session state variants Playing, Won and Lost.
//   - Errors returned by session mutations.

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/dailyword/internal/store"
)

// Outcome represents the evaluation result for a single letter in a guess.
//   - "correct": letter is in the answer at this position.
//   - "present": letter is in the answer at another position.
//   - "absent":  letter is not in the answer (or all its copies are used up).
//
// The zero value means "no information" and ranks below every outcome.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomePresent Outcome = "present"
	OutcomeAbsent  Outcome = "absent"
)

// rank orders outcomes for keyboard hint merging: correct > present > absent.
func (o Outcome) rank() int {
	switch o {
	case OutcomeCorrect:
		return 3
	case OutcomePresent:
		return 2
	case OutcomeAbsent:
		return 1
	}
	return 0
}

// GuessRow is one committed guess. It is never modified after evaluation.
type GuessRow struct {
	Letters  string    // lowercase, WordLength letters
	Outcomes []Outcome // one per letter
}

// Solved reports whether every letter is correct.
func (r GuessRow) Solved() bool {
	if len(r.Outcomes) == 0 {
		return false
	}
	for _, o := range r.Outcomes {
		if o != OutcomeCorrect {
			return false
		}
	}
	return true
}

// State is a session state. Each variant carries only the data valid for it,
// so a won session always knows its guess count and a lost one its answer.
type State interface {
	// Status is the wire form: "playing", "won" or "lost".
	Status() string
	// Terminal reports whether no further guesses are accepted.
	Terminal() bool
	isState()
}

// Playing is the initial state; guesses are accepted.
type Playing struct{}

// Won is terminal: the answer was guessed in GuessCount rows.
type Won struct {
	GuessCount int
}

// Lost is terminal: every row was used. TargetWord is revealed.
type Lost struct {
	TargetWord string
}

func (Playing) Status() string { return store.StatusPlaying }
func (Won) Status() string     { return store.StatusWon }
func (Lost) Status() string    { return store.StatusLost }

func (Playing) Terminal() bool { return false }
func (Won) Terminal() bool     { return true }
func (Lost) Terminal() bool    { return true }

func (Playing) isState() {}
func (Won) isState()     {}
func (Lost) isState()    {}

// Session mutation errors. None of them change session state.
var (
	// ErrInvalidWord: the candidate is not in the accepted dictionary.
	ErrInvalidWord = errors.New("not in word list")

	// ErrReadOnly: the session replays a finished past day.
	ErrReadOnly = errors.New("session is read-only")

	// ErrGameOver: the session already reached won or lost.
	ErrGameOver = errors.New("game finished")

	// ErrIncompleteRow: the row buffer holds fewer than WordLength letters.
	ErrIncompleteRow = errors.New("not enough letters")
)

// ContractViolation is panicked when a caller breaks a documented precondition,
// such as evaluating words of different lengths. It signals a caller bug, not a
// runtime condition, and is never returned as an error.
type ContractViolation struct {
	Op     string
	Detail string
}

func (c ContractViolation) Error() string {
	return fmt.Sprintf("game: contract violation in %s: %s", c.Op, c.Detail)
}

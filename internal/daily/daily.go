// internal/daily/daily.go
//
// Deterministic daily puzzle selection.
//   - DateKey: canonical YYYY-MM-DD key of a calendar day (storage + archive key).
//   - Selector: maps a calendar day onto an index of the answer list by counting
//     whole days from a fixed epoch.
//
// Selection is a pure function of (date, answers): no clock, no network, no salt.
// An empty answer list yields the selector's fallback word instead of an error.

package daily

import (
	"fmt"
	"time"

	"github.com/robalobadob/dailyword/internal/words"
)

const (
	// MaxGuesses is the number of guess rows in a daily puzzle.
	MaxGuesses = 6

	// DefaultFallbackWord is served when the answer list is empty.
	DefaultFallbackWord = "crane"

	keyLayout = "2006-01-02"
)

// DefaultEpoch is the calendar day that maps to answer index 0.
var DefaultEpoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey returns the YYYY-MM-DD key of t's calendar day in t's location.
// Two instants on the same local day always share a key.
func DateKey(t time.Time) string {
	return StartOfDay(t).Format(keyLayout)
}

// ParseDateKey parses a key produced by DateKey into midnight in loc (time.Local if nil).
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(keyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts calendar days from a to b, each read in its own location.
// Civil dates are compared in UTC so DST changes never produce 23/25 hour days.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / secondsPerDay)
}

// Puzzle is the derived, immutable puzzle for one calendar day.
type Puzzle struct {
	DateKey    string
	TargetWord string
	WordLength int
	MaxGuesses int
	// Fallback is true when the answer list was empty and the fallback word was used.
	Fallback bool
}

// Selector picks the answer for a calendar day. The zero value uses DefaultEpoch
// and DefaultFallbackWord.
type Selector struct {
	Epoch    time.Time
	Fallback string
}

// NewSelector returns a Selector with the default epoch and fallback word.
func NewSelector() Selector {
	return Selector{Epoch: DefaultEpoch, Fallback: DefaultFallbackWord}
}

func (s Selector) epoch() time.Time {
	if s.Epoch.IsZero() {
		return DefaultEpoch
	}
	return s.Epoch
}

// fallback returns the normalized fallback word, or DefaultFallbackWord when
// the configured one is not a playable word.
func (s Selector) fallback() string {
	w := words.Normalize(s.Fallback)
	if !words.Valid(w) {
		return DefaultFallbackWord
	}
	return w
}

// Index returns abs(days since epoch) mod n, or -1 when n <= 0.
// Days before the epoch mirror days after it (epoch-k and epoch+k share an index).
func (s Selector) Index(date time.Time, n int) int {
	if n <= 0 {
		return -1
	}
	d := DaysBetween(s.epoch(), date)
	if d < 0 {
		d = -d
	}
	return d % n
}

// WordForDate returns the answer for date's calendar day, or the fallback word
// when answers is empty.
func (s Selector) WordForDate(date time.Time, answers []string) string {
	i := s.Index(date, len(answers))
	if i < 0 {
		return s.fallback()
	}
	return answers[i]
}

// PuzzleFor derives the Puzzle for date from the corpus answers.
func (s Selector) PuzzleFor(date time.Time, c *words.Corpus) Puzzle {
	answers := c.Answers()
	return Puzzle{
		DateKey:    DateKey(date),
		TargetWord: words.Normalize(s.WordForDate(date, answers)),
		WordLength: words.WordLength,
		MaxGuesses: MaxGuesses,
		Fallback:   len(answers) == 0,
	}
}

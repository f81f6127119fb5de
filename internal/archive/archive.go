// internal/archive/archive.go
//
// Archive derives calendar-browsable summaries from the PuzzleStore.
// Nothing here is persisted: every query rescans the store, so the archive can
// never drift from the records it summarizes.

package archive

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/dailyword/internal/daily"
	"github.com/robalobadob/dailyword/internal/store"
)

// Entry is one finished day.
type Entry struct {
	DateKey string
	Date    time.Time
	Won     bool
	Guesses int
}

// Stats summarizes finished days. Distribution maps guess count to wins.
type Stats struct {
	Played        int
	Won           int
	CurrentStreak int
	MaxStreak     int
	Distribution  map[int]int
}

// Index answers archive queries over a PuzzleStore.
type Index struct {
	store  *store.PuzzleStore
	loc    *time.Location
	logger zerolog.Logger
}

// New returns an Index reading st. Date keys are parsed in loc (time.Local if nil).
func New(st *store.PuzzleStore, loc *time.Location) *Index {
	if loc == nil {
		loc = time.Local
	}
	return &Index{store: st, loc: loc, logger: log.Logger}
}

// WithLogger returns a copy of the index using l.
func (x *Index) WithLogger(l zerolog.Logger) *Index {
	c := *x
	c.logger = l
	return &c
}

// ListCompletedDates returns every won or lost day, most recent first.
// Records whose key does not parse as a date are skipped.
func (x *Index) ListCompletedDates() []Entry {
	out := lo.FilterMap(x.store.Records(), func(r store.Record, _ int) (Entry, bool) {
		if !store.IsTerminal(r.Status) {
			return Entry{}, false
		}
		d, err := daily.ParseDateKey(r.DateKey, x.loc)
		if err != nil {
			x.logger.Debug().Err(err).Str("key", r.DateKey).Msg("archive: skipping unparsable key")
			return Entry{}, false
		}
		return Entry{DateKey: r.DateKey, Date: d, Won: r.Status == store.StatusWon, Guesses: len(r.Guesses)}, true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// HasPlayed reports whether any record exists for dateKey, finished or not.
func (x *Index) HasPlayed(dateKey string) bool {
	return x.store.HasRecord(dateKey)
}

// Stats computes play counts, win streaks and the guess distribution.
// A streak is a run of wins on consecutive calendar days; a loss or a missing
// day ends it. CurrentStreak is the run ending at the most recent finished day.
func (x *Index) Stats() Stats {
	entries := x.ListCompletedDates()
	st := Stats{Played: len(entries), Distribution: map[int]int{}}

	run := 0
	var prev time.Time
	for i := len(entries) - 1; i >= 0; i-- { // oldest first
		e := entries[i]
		switch {
		case !e.Won:
			run = 0
		case run > 0 && daily.DaysBetween(prev, e.Date) == 1:
			run++
		default:
			run = 1
		}
		if e.Won {
			st.Won++
			st.Distribution[e.Guesses]++
		}
		st.MaxStreak = max(st.MaxStreak, run)
		prev = e.Date
	}
	st.CurrentStreak = run
	return st
}

// internal/leaderboard/leaderboard.go
//
// Leaderboard service for daily puzzle wins.
// Responsibilities:
//   - Validate and store score submissions (one row per submission).
//   - Assign each submission a random Adjective+Noun display name.
//   - Rank a day's scores by guesses, then time, then submission order.
//
// Storage is pluggable (memory for tests, SQLite in production).

package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/robalobadob/dailyword/internal/daily"
)

const (
	// DefaultLimit is the number of entries returned when no limit is given.
	DefaultLimit = 5
	// MaxLimit caps the number of entries per query.
	MaxLimit = 10
)

// ErrInvalidScore wraps every submission validation failure.
var ErrInvalidScore = errors.New("invalid score")

var adjectives = []string{
	"Swift", "Brave", "Clever", "Mighty", "Noble",
	"Bold", "Quick", "Sharp", "Bright", "Keen",
	"Agile", "Fierce", "Lucky", "Calm", "Wise",
	"Golden", "Silver", "Cosmic", "Epic", "Grand",
	"Royal", "Mystic", "Ancient", "Stellar", "Thunder",
}

var nouns = []string{
	"Falcon", "Otter", "Wolf", "Eagle", "Bear",
	"Tiger", "Lion", "Hawk", "Fox", "Deer",
	"Panda", "Koala", "Shark", "Dragon", "Phoenix",
	"Mustang", "Aggie", "Knight", "Warrior", "Champion",
	"Legend", "Pioneer", "Voyager", "Ranger", "Scout",
}

// Score is one stored submission.
type Score struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Guesses     int       `json:"guesses"`
	TimeSeconds int       `json:"time_seconds"`
	PuzzleDate  string    `json:"puzzle_date"`
	CreatedAt   time.Time `json:"-"`
}

// Entry is a ranked row of a day's leaderboard.
type Entry struct {
	Rank           int    `json:"rank"`
	Username       string `json:"username"`
	Guesses        int    `json:"guesses"`
	GuessesDisplay string `json:"guesses_display"`
	TimeSeconds    int    `json:"time_seconds"`
}

// Store persists scores. ListByDate must return scores already ranked.
type Store interface {
	Insert(ctx context.Context, s Score) error
	ListByDate(ctx context.Context, date string, limit int) ([]Score, error)
	DeleteDate(ctx context.Context, date string) (int64, error)
	Dates(ctx context.Context) ([]string, error)
}

// Service validates, names and ranks scores.
type Service struct {
	store Store
	now   func() time.Time
	pick  func(n int) int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithPicker overrides the random index source used for display names.
func WithPicker(pick func(n int) int) Option { return func(s *Service) { s.pick = pick } }

// NewService returns a Service over st.
func NewService(st Store, opts ...Option) *Service {
	s := &Service{store: st, now: time.Now, pick: rand.Intn}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GenerateUsername returns a random Adjective+Noun name such as "SwiftFalcon".
func (s *Service) GenerateUsername() string {
	return adjectives[s.pick(len(adjectives))] + nouns[s.pick(len(nouns))]
}

// Submit validates and stores a score.
//   - guesses must be 1..MaxGuesses
//   - seconds must be >= 0
//   - date must be a YYYY-MM-DD key
func (s *Service) Submit(ctx context.Context, guesses, seconds int, date string) (Score, error) {
	if guesses < 1 || guesses > daily.MaxGuesses {
		return Score{}, fmt.Errorf("%w: guesses must be between 1 and %d", ErrInvalidScore, daily.MaxGuesses)
	}
	if seconds < 0 {
		return Score{}, fmt.Errorf("%w: time_seconds must be a non-negative integer", ErrInvalidScore)
	}
	if _, err := daily.ParseDateKey(date, time.UTC); err != nil {
		return Score{}, fmt.Errorf("%w: puzzle_date must be in YYYY-MM-DD format", ErrInvalidScore)
	}

	sc := Score{
		ID:          uuid.NewString(),
		Username:    s.GenerateUsername(),
		Guesses:     guesses,
		TimeSeconds: seconds,
		PuzzleDate:  date,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Insert(ctx, sc); err != nil {
		return Score{}, fmt.Errorf("insert score: %w", err)
	}
	return sc, nil
}

// Top returns up to limit ranked entries for date. limit is clamped to 1..MaxLimit.
func (s *Service) Top(ctx context.Context, date string, limit int) ([]Entry, error) {
	scores, err := s.store.ListByDate(ctx, date, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list scores %s: %w", date, err)
	}
	return lo.Map(scores, func(sc Score, i int) Entry {
		return Entry{
			Rank:           i + 1,
			Username:       sc.Username,
			Guesses:        sc.Guesses,
			GuessesDisplay: GuessesDisplay(sc.Guesses),
			TimeSeconds:    sc.TimeSeconds,
		}
	}), nil
}

// Clear deletes every score for date and reports how many were removed.
func (s *Service) Clear(ctx context.Context, date string) (int64, error) {
	n, err := s.store.DeleteDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("clear scores %s: %w", date, err)
	}
	return n, nil
}

// Dates lists every date with at least one score.
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	return s.store.Dates(ctx)
}

// ClampLimit bounds n to 1..MaxLimit.
func ClampLimit(n int) int {
	return min(max(1, n), MaxLimit)
}

// GuessesDisplay renders a guess count as green squares.
func GuessesDisplay(guesses int) string {
	return strings.Repeat("🟩", max(0, guesses))
}

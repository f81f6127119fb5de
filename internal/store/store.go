// internal/store/store.go
//
// PuzzleStore persists one record per calendar day (keyed by YYYY-MM-DD).
//
// Characteristics:
//   - All records live in a single map that is serialized as one JSON blob and
//     written whole on every mutation (no partial or delta writes).
//   - The blob is read once at Open; reads afterwards are served from memory.
//   - A blob that fails to parse is treated as an empty store. The parse error is
//     kept for diagnostics (Corrupt) and overwritten by the next successful save.
//   - Single writer: PuzzleStore holds no locks. Callers serialize mutation
//     through one game.Engine per process.
//
// Wire format:
//
//	{"2026-10-17": {"guesses": ["crane", "level"], "status": "won"}, ...}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// StorageKey is the single key the record map is stored under.
const StorageKey = "daily_puzzle_records"

// Record statuses as they appear on the wire.
const (
	StatusPlaying = "playing"
	StatusWon     = "won"
	StatusLost    = "lost"
)

var (
	// ErrNoData is returned by a Backend that has never been written.
	ErrNoData = errors.New("store: no data")

	// ErrCorrupt wraps the parse failure of a stored blob.
	ErrCorrupt = errors.New("store: corrupt record blob")
)

// IsTerminal reports whether status is won or lost.
func IsTerminal(status string) bool {
	return status == StatusWon || status == StatusLost
}

// Record is the durable projection of one day's session.
type Record struct {
	DateKey string   `json:"-"`
	Guesses []string `json:"guesses"`
	Status  string   `json:"status"`
}

// Backend reads and writes the serialized record map under one storage key.
// Implementations may be backed by memory, a file, SQLite or Badger.
type Backend interface {
	// Read returns the stored blob, or ErrNoData if nothing was ever written.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored blob.
	Write(ctx context.Context, blob []byte) error
}

// PuzzleStore is the single source of truth for resuming and browsing past days.
type PuzzleStore struct {
	backend Backend
	records map[string]Record
	corrupt error
	logger  zerolog.Logger
}

// Option configures a PuzzleStore.
type Option func(*PuzzleStore)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *PuzzleStore) { s.logger = l }
}

// Open reads the record map from b. Backend I/O failures are returned; a blob
// that cannot be parsed yields an empty store with Corrupt set.
func Open(ctx context.Context, b Backend, opts ...Option) (*PuzzleStore, error) {
	s := &PuzzleStore{backend: b, records: map[string]Record{}, logger: log.Logger}
	for _, o := range opts {
		o(s)
	}

	blob, err := b.Read(ctx)
	switch {
	case errors.Is(err, ErrNoData):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read puzzle records: %w", err)
	}
	if len(blob) == 0 {
		return s, nil
	}

	var wire map[string]Record
	if err := json.Unmarshal(blob, &wire); err != nil {
		s.corrupt = fmt.Errorf("%w: %v", ErrCorrupt, err)
		s.logger.Warn().Err(err).Int("bytes", len(blob)).Msg("puzzle records unreadable; starting empty")
		return s, nil
	}
	for k, r := range wire {
		r.DateKey = k
		s.records[k] = r
	}
	return s, nil
}

// Corrupt returns the parse error of the blob read at Open, or nil.
func (s *PuzzleStore) Corrupt() error { return s.corrupt }

// Save upserts the record for dateKey and persists the entire map.
// The in-memory map is updated even if the backend write fails.
func (s *PuzzleStore) Save(ctx context.Context, dateKey string, guesses []string, status string) error {
	s.records[dateKey] = Record{
		DateKey: dateKey,
		Guesses: append([]string(nil), guesses...),
		Status:  status,
	}
	return s.flush(ctx)
}

// Delete removes the record for dateKey and persists the entire map.
func (s *PuzzleStore) Delete(ctx context.Context, dateKey string) error {
	if _, ok := s.records[dateKey]; !ok {
		return nil
	}
	delete(s.records, dateKey)
	return s.flush(ctx)
}

// Load returns a copy of the record for dateKey.
func (s *PuzzleStore) Load(dateKey string) (Record, bool) {
	r, ok := s.records[dateKey]
	if !ok {
		return Record{}, false
	}
	r.Guesses = append([]string(nil), r.Guesses...)
	return r, true
}

// HasRecord reports whether any record exists for dateKey.
func (s *PuzzleStore) HasRecord(dateKey string) bool {
	_, ok := s.Load(dateKey)
	return ok
}

// IsComplete reports whether the record for dateKey is won or lost.
func (s *PuzzleStore) IsComplete(dateKey string) bool {
	r, ok := s.Load(dateKey)
	return ok && IsTerminal(r.Status)
}

// Records returns copies of all records ordered by date key.
func (s *PuzzleStore) Records() []Record {
	out := lo.MapToSlice(s.records, func(k string, r Record) Record {
		r.Guesses = append([]string(nil), r.Guesses...)
		return r
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DateKey < out[j].DateKey })
	return out
}

func (s *PuzzleStore) flush(ctx context.Context) error {
	blob, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("encode puzzle records: %w", err)
	}
	if err := s.backend.Write(ctx, blob); err != nil {
		return fmt.Errorf("write puzzle records: %w", err)
	}
	s.corrupt = nil
	return nil
}

// internal/leaderboard/memory.go
//
// In-memory Store. Concurrency-safe; state is lost on restart.

package leaderboard

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"
)

type memory struct {
	mu     sync.RWMutex       // guards scores
	scores map[string][]Score // keyed by puzzle date, in insertion order
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{scores: make(map[string][]Score)}
}

func (m *memory) Insert(ctx context.Context, s Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[s.PuzzleDate] = append(m.scores[s.PuzzleDate], s)
	return nil
}

func (m *memory) ListByDate(ctx context.Context, date string, limit int) ([]Score, error) {
	m.mu.RLock()
	out := append([]Score(nil), m.scores[date]...)
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Guesses != out[j].Guesses {
			return out[i].Guesses < out[j].Guesses
		}
		return out[i].TimeSeconds < out[j].TimeSeconds
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) DeleteDate(ctx context.Context, date string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.scores[date])
	delete(m.scores, date)
	return int64(n), nil
}

func (m *memory) Dates(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dates := lo.Keys(m.scores)
	sort.Strings(dates)
	return dates, nil
}

// internal/words/words.go
//
// Corpus holds the two word lists a daily puzzle family needs:
//   - answers: ordered daily solutions, indexed by the puzzle selector.
//   - accepted: every word a player may submit (always includes the answers).
//
// Words are normalized to lowercase and must be WordLength alphabetic letters;
// anything else is dropped at construction so lookups never need to re-validate.

package words

import (
	"strings"

	"github.com/samber/lo"
)

// WordLength is the number of letters in every answer and guess.
const WordLength = 5

// Corpus is an immutable answer list plus accepted-guess dictionary.
type Corpus struct {
	answers  []string
	accepted map[string]struct{}
}

// NewCorpus normalizes both lists and builds the accepted set (answers ∪ accepted).
func NewCorpus(answers, accepted []string) *Corpus {
	ans := normalizeAll(answers)
	set := lo.SliceToMap(normalizeAll(accepted), func(w string) (string, struct{}) {
		return w, struct{}{}
	})
	for _, w := range ans {
		set[w] = struct{}{}
	}
	return &Corpus{answers: ans, accepted: set}
}

// Answers returns the ordered answer list. Callers must not modify it.
func (c *Corpus) Answers() []string {
	if c == nil {
		return nil
	}
	return c.answers
}

// Len reports the number of answers.
func (c *Corpus) Len() int { return len(c.Answers()) }

// AcceptedCount reports the size of the accepted-guess dictionary.
func (c *Corpus) AcceptedCount() int {
	if c == nil {
		return 0
	}
	return len(c.accepted)
}

// IsAccepted reports whether w (any case) may be submitted as a guess.
func (c *Corpus) IsAccepted(w string) bool {
	if c == nil {
		return false
	}
	_, ok := c.accepted[Normalize(w)]
	return ok
}

// Normalize trims and lowercases a word.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Valid reports whether w is exactly WordLength lowercase ASCII letters.
func Valid(w string) bool {
	return len(w) == WordLength && isAlpha(w)
}

func normalizeAll(list []string) []string {
	return lo.Filter(lo.Map(list, func(w string, _ int) string { return Normalize(w) }),
		func(w string, _ int) bool { return Valid(w) })
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

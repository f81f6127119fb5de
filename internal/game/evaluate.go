// internal/game/evaluate.go
//
// Guess evaluation and keyboard hint aggregation.

package game

import (
	"fmt"
	"strings"
)

// Evaluate scores guess against target, case-insensitively.
//
// Pass 1 marks exact matches Correct and removes them from the target's letter
// counts. Pass 2 marks each remaining letter Present while unused copies of it
// remain, otherwise Absent. Resolving every exact match before any Present keeps
// repeated letters from being over-credited.
//
// guess and target must have the same length; otherwise Evaluate panics with a
// ContractViolation.
func Evaluate(guess, target string) []Outcome {
	g := []rune(strings.ToLower(guess))
	t := []rune(strings.ToLower(target))
	if len(g) != len(t) {
		panic(ContractViolation{
			Op:     "Evaluate",
			Detail: fmt.Sprintf("guess %q has %d letters, target has %d", guess, len(g), len(t)),
		})
	}

	counts := make(map[rune]int, len(t))
	for _, r := range t {
		counts[r]++
	}

	res := make([]Outcome, len(g))
	for i := range g {
		if g[i] == t[i] {
			res[i] = OutcomeCorrect
			counts[g[i]]--
		}
	}
	for i := range g {
		if res[i] == OutcomeCorrect {
			continue
		}
		if counts[g[i]] > 0 {
			res[i] = OutcomePresent
			counts[g[i]]--
		} else {
			res[i] = OutcomeAbsent
		}
	}
	return res
}

// AggregateKeyboardHint merges a new outcome for a letter into its existing hint.
// The stronger outcome wins, so a letter once Correct stays Correct.
func AggregateKeyboardHint(existing, outcome Outcome) Outcome {
	if outcome.rank() > existing.rank() {
		return outcome
	}
	return existing
}

// KeyboardHints is the best outcome seen so far for each guessed letter.
type KeyboardHints map[rune]Outcome

// Merge folds every letter of row into h.
func (h KeyboardHints) Merge(row GuessRow) {
	for i, r := range []rune(row.Letters) {
		h[r] = AggregateKeyboardHint(h[r], row.Outcomes[i])
	}
}

// Clone returns a copy of h.
func (h KeyboardHints) Clone() KeyboardHints {
	out := make(KeyboardHints, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// ShareGrid renders rows as emoji lines (🟩 correct, 🟨 present, ⬛ absent),
// one line per row.
func ShareGrid(rows []GuessRow) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, o := range row.Outcomes {
			switch o {
			case OutcomeCorrect:
				b.WriteString("🟩")
			case OutcomePresent:
				b.WriteString("🟨")
			default:
				b.WriteString("⬛")
			}
		}
	}
	return b.String()
}

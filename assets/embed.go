// assets/embed.go
//
// Embedded word lists used when no external word files are configured.
//   - answers.txt: daily answers, in selection order.
//   - allowed.txt: extra accepted guesses (answers are always accepted too).
//
// Blank lines and lines starting with '#' are ignored.

package assets

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

const (
	answersFile = "answers.txt"
	allowedFile = "allowed.txt"
)

// WordLists returns the embedded answers (file order) and extra accepted guesses.
func WordLists() (answers, allowed []string, err error) {
	if answers, err = words(answersFile); err != nil {
		return nil, nil, err
	}
	if allowed, err = words(allowedFile); err != nil {
		return nil, nil, err
	}
	return answers, allowed, nil
}

func words(name string) ([]string, error) {
	b, err := FS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", name, err)
	}
	return ParseWordList(string(b)), nil
}

// ParseWordList splits a newline separated list, dropping blanks and '#' comments.
func ParseWordList(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(line)
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	return out
}

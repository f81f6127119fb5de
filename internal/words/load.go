// internal/words/load.go
//
// Corpus loading for hosts. The engine itself never performs I/O; a host calls
// Load once at startup and passes the resulting *Corpus in.
//
// Source selection:
//  1. AnswersFile and AllowedFile both set: answers from the first, guesses from the second.
//  2. Only AllowedFile set: that file is used for both lists.
//  3. Neither set: the embedded lists in package assets.

package words

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailyword/assets"
)

// Source names the external word files; empty fields fall back to embedded lists.
type Source struct {
	AnswersFile string
	AllowedFile string
}

// Load builds a Corpus from src. An empty answer list is not an error: the
// selector falls back to a fixed word, so it is only logged.
func Load(src Source) (*Corpus, error) {
	var ansList, allowList []string
	var err error

	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
	case src.AllowedFile != "":
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList
	default:
		if ansList, allowList, err = assets.WordLists(); err != nil {
			return nil, err
		}
	}

	c := NewCorpus(ansList, allowList)
	if c.Len() == 0 {
		log.Warn().Str("answers_file", src.AnswersFile).Msg("word corpus has no answers; fallback puzzle will be used")
	}
	log.Debug().Int("answers", c.Len()).Int("accepted", c.AcceptedCount()).Msg("word corpus loaded")
	return c, nil
}

// readWordFile loads one word per line. Validation happens in NewCorpus.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file %s: %w", path, err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan word file %s: %w", path, err)
	}
	return out, nil
}

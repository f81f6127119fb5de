package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorpusNormalizes(t *testing.T) {
	c := NewCorpus([]string{" LEVEL", "crane", "toolong", "ab1de"}, []string{"Elver", "x"})

	assert.Equal(t, []string{"level", "crane"}, c.Answers())
	assert.True(t, c.IsAccepted("ELVER"))
	assert.True(t, c.IsAccepted("level"), "answers are always accepted")
	assert.False(t, c.IsAccepted("toolong"))
	assert.Equal(t, 3, c.AcceptedCount())
}

func TestNilCorpus(t *testing.T) {
	var c *Corpus
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.IsAccepted("crane"))
}

func TestLoadEmbedded(t *testing.T) {
	c, err := Load(Source{})
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)
	assert.True(t, c.IsAccepted("crane"))
	assert.True(t, c.IsAccepted("elver"))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	ans := filepath.Join(dir, "answers.txt")
	all := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(ans, []byte("House\nmouse\n"), 0o644))
	require.NoError(t, os.WriteFile(all, []byte("louse\n"), 0o644))

	c, err := Load(Source{AnswersFile: ans, AllowedFile: all})
	require.NoError(t, err)
	assert.Equal(t, []string{"house", "mouse"}, c.Answers())
	assert.True(t, c.IsAccepted("louse"))

	c, err = Load(Source{AllowedFile: all})
	require.NoError(t, err)
	assert.Equal(t, []string{"louse"}, c.Answers())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{AllowedFile: filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, err)
}

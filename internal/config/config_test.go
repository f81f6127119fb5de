package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, zerolog.InfoLevel, c.Level())
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, BackendFile, c.Engine.StoreBackend)

	sel, err := c.Engine.Selector()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC), sel.Epoch)
	assert.Equal(t, "crane", sel.Fallback)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("STORE_BACKEND", "badger")
	t.Setenv("PUZZLE_EPOCH", "2026-01-01")
	t.Setenv("LEADERBOARD_URL", "http://lb.local")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, zerolog.DebugLevel, c.Level())
	assert.InDelta(t, 2.5, c.RateLimitRPS, 1e-9)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
	assert.Equal(t, BackendBadger, c.Engine.StoreBackend)
	assert.Equal(t, "http://lb.local", c.Engine.LeaderboardURL)

	sel, err := c.Engine.Selector()
	require.NoError(t, err)
	assert.Equal(t, 2026, sel.Epoch.Year())
}

func TestLoadRejectsInvalid(t *testing.T) {
	chdir(t, t.TempDir())

	cases := map[string][2]string{
		"bad level":      {"LOG_LEVEL", "loud"},
		"bad backend":    {"STORE_BACKEND", "redis"},
		"bad epoch":      {"PUZZLE_EPOCH", "June 19"},
		"zero rps":       {"RATE_LIMIT_RPS", "0"},
		"short fallback": {"FALLBACK_WORD", "hi"},
		"digit fallback": {"FALLBACK_WORD", "cr4ne"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "lots")
	var c Config
	err := ParseEnv(&c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

// internal/config/config.go
//
// Environment-driven configuration.
// A .env file (if present) is loaded first, then variables are parsed into
// typed structs. Real environment variables win over .env entries.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/dailyword/internal/daily"
	"github.com/robalobadob/dailyword/internal/words"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the leaderboard server configuration plus the engine settings a
// host needs to build an Engine.
type Config struct {
	Port           string        `env:"PORT" envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	DBPath         string        `env:"DB_PATH" envDefault:"./data/leaderboard.db"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret      string        `env:"JWT_SECRET"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	Engine Engine
}

// Engine holds the settings used to assemble the puzzle engine.
type Engine struct {
	AnswersFile    string        `env:"WORDS_ANSWERS_FILE"`
	AllowedFile    string        `env:"WORDS_ALLOWED_FILE"`
	PuzzleEpoch    string        `env:"PUZZLE_EPOCH" envDefault:"2021-06-19"`
	FallbackWord   string        `env:"FALLBACK_WORD" envDefault:"crane"`
	LeaderboardURL string        `env:"LEADERBOARD_URL"`
	ReportTimeout  time.Duration `env:"REPORT_TIMEOUT" envDefault:"10s"`
	StoreBackend   string        `env:"STORE_BACKEND" envDefault:"file"`
	StorePath      string        `env:"STORE_PATH" envDefault:"./data/puzzles.json"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads .env (ignored when missing), parses the environment and validates.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := ParseEnv(&c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values env parsing cannot.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalid, c.LogLevel)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalid)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", ErrInvalid)
	}
	return c.Engine.Validate()
}

// Validate checks the engine settings.
func (e Engine) Validate() error {
	switch e.StoreBackend {
	case BackendMemory, BackendFile, BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("%w: STORE_BACKEND %q", ErrInvalid, e.StoreBackend)
	}
	if e.FallbackWord != "" && !words.Valid(words.Normalize(e.FallbackWord)) {
		return fmt.Errorf("%w: FALLBACK_WORD %q must be %d letters", ErrInvalid, e.FallbackWord, words.WordLength)
	}
	if _, err := e.Selector(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Selector builds the puzzle selector from PUZZLE_EPOCH and FALLBACK_WORD.
func (e Engine) Selector() (daily.Selector, error) {
	s := daily.NewSelector()
	if e.PuzzleEpoch != "" {
		epoch, err := daily.ParseDateKey(e.PuzzleEpoch, time.UTC)
		if err != nil {
			return daily.Selector{}, fmt.Errorf("%w: PUZZLE_EPOCH %q", ErrInvalid, e.PuzzleEpoch)
		}
		s.Epoch = epoch
	}
	if e.FallbackWord != "" {
		s.Fallback = e.FallbackWord
	}
	return s, nil
}

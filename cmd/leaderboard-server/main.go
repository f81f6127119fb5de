// cmd/leaderboard-server/main.go
//
// Entry point for the leaderboard service.
//   - Loads configuration (.env + environment).
//   - Opens SQLite and applies migrations.
//   - Serves the HTTP API until SIGINT/SIGTERM, then drains in-flight requests.
//
// With -admin-token it prints a signed admin JWT (valid for -admin-ttl) and exits.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailyword/internal/config"
	"github.com/robalobadob/dailyword/internal/httpserver"
	"github.com/robalobadob/dailyword/internal/leaderboard"
	"github.com/robalobadob/dailyword/internal/sqlitedb"
)

func main() {
	adminToken := flag.Bool("admin-token", false, "print an admin JWT and exit")
	adminTTL := flag.Duration("admin-ttl", 24*time.Hour, "lifetime of the token printed by -admin-token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *adminToken {
		tok, err := httpserver.SignAdminToken(cfg.JWTSecret, *adminTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("sign admin token")
		}
		fmt.Println(tok)
		return
	}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()

	svc := leaderboard.NewService(leaderboard.NewSQLStore(db))
	srv := httpserver.New(svc, httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		JWTSecret:      cfg.JWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		RequestTimeout: cfg.RequestTimeout,
	})
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET unset; admin endpoints disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("starting leaderboard server")
		errc <- srv.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

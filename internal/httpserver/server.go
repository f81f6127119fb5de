// internal/httpserver/server.go
//
// HTTP server wiring for the leaderboard service.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON, CORS,
//     per-client rate limiting, access logging, Prometheus metrics).
//   - Public endpoints: "/", "/metrics".
//   - Leaderboard endpoints under /api/leaderboard (see routes_leaderboard.go).
//
// Notes:
//   - CORS is origin-aware; credentials are only allowed for a concrete origin.
//   - Clearing a day's scores requires an admin JWT (see auth.go).

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailyword/internal/leaderboard"
)

const serviceName = "dailyword-leaderboard"

// Options tunes middleware. Zero values fall back to defaults.
type Options struct {
	ClientOrigin   string
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	Logger         *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.RateLimitRPS <= 0 {
		o.RateLimitRPS = 5
	}
	if o.RateLimitBurst <= 0 {
		o.RateLimitBurst = 10
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.Logger == nil {
		o.Logger = &log.Logger
	}
	return o
}

// Server bundles the router and the leaderboard service.
type Server struct {
	r        *chi.Mux
	svc      *leaderboard.Service
	opts     Options
	logger   zerolog.Logger
	limiters *clientLimiters
	http     *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *leaderboard.Service, opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{
		r:        chi.NewRouter(),
		svc:      svc,
		opts:     opts,
		logger:   *opts.Logger,
		limiters: newClientLimiters(opts.RateLimitRPS, opts.RateLimitBurst),
	}
	s.http = &http.Server{Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(s.instrument)                       // access log + metrics
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", s.handleIndex)
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.r.Route("/api/leaderboard", s.mountLeaderboard)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return s
}

// Start serves HTTP on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a server started with Start. Safe to call from
// another goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the router (useful for tests and embedding).
func (s *Server) Handler() http.Handler { return s.r }

type indexRes struct {
	Service   string            `json:"service"`
	Endpoints map[string]string `json:"endpoints"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexRes{
		Service: serviceName,
		Endpoints: map[string]string{
			"submit_score":    "POST /api/leaderboard/score",
			"get_leaderboard": "GET /api/leaderboard/{date}",
			"list_dates":      "GET /api/leaderboard/dates",
			"clear_date":      "DELETE /api/leaderboard/{date}",
			"health_check":    "GET /api/leaderboard/health",
			"metrics":         "GET /metrics",
		},
	})
}

// internal/httpserver/metrics.go
//
// Prometheus metrics for the leaderboard server, served at /metrics.
//   - HTTP request counts and latency per chi route pattern.
//   - Accepted and rejected score submissions.
//   - Requests refused by the per-client rate limiter.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts handled requests.
	// Labels: method, route (chi pattern), status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dailyword",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled by the leaderboard server",
	}, []string{"method", "route", "status"})

	// httpDuration measures handler latency.
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dailyword",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// scoresSubmitted counts stored scores.
	scoresSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dailyword",
		Subsystem: "leaderboard",
		Name:      "scores_submitted_total",
		Help:      "Scores accepted by the leaderboard",
	})

	// scoresRejected counts submissions that failed validation.
	scoresRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dailyword",
		Subsystem: "leaderboard",
		Name:      "scores_rejected_total",
		Help:      "Score submissions rejected as invalid",
	})

	// rateLimited counts requests refused with 429.
	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dailyword",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter",
	})
)

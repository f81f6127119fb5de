// internal/httpserver/routes_leaderboard.go
//
// HTTP routes for the daily leaderboard, mounted under /api/leaderboard:
//   - GET    /health  → liveness check (not rate limited)
//   - POST   /score   → submit a won game; returns the assigned username
//   - GET    /dates   → every date that has at least one score
//   - GET    /{date}  → ranked entries for a day (?limit=1..10, default 5)
//   - DELETE /{date}  → clear a day's scores (admin JWT)
//
// Errors are JSON: {"success": false, "error": "..."}.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/dailyword/internal/daily"
	"github.com/robalobadob/dailyword/internal/leaderboard"
)

const maxBodyBytes = 1 << 14

func (s *Server) mountLeaderboard(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/score", s.handleSubmitScore)
		r.Get("/dates", s.handleListDates)
		r.Get("/{date}", s.handleGetLeaderboard)
		r.With(s.requireAdmin).Delete("/{date}", s.handleClearDate)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": serviceName})
}

// -----------------------------------------------------------------------------
// POST /score

// submitReq uses pointers so missing fields can be told apart from zero.
type submitReq struct {
	Guesses     *int    `json:"guesses"`
	TimeSeconds *int    `json:"time_seconds"`
	PuzzleDate  *string `json:"puzzle_date"`
}

func (p submitReq) missing() []string {
	var out []string
	if p.Guesses == nil {
		out = append(out, "guesses")
	}
	if p.TimeSeconds == nil {
		out = append(out, "time_seconds")
	}
	if p.PuzzleDate == nil {
		out = append(out, "puzzle_date")
	}
	return out
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var p submitReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&p); err != nil {
		scoresRejected.Inc()
		writeError(w, http.StatusBadRequest, "Request body must be JSON with integer guesses and time_seconds")
		return
	}
	if m := p.missing(); len(m) > 0 {
		scoresRejected.Inc()
		writeError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(m, ", "))
		return
	}

	sc, err := s.svc.Submit(r.Context(), *p.Guesses, *p.TimeSeconds, *p.PuzzleDate)
	switch {
	case errors.Is(err, leaderboard.ErrInvalidScore):
		scoresRejected.Inc()
		writeError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), leaderboard.ErrInvalidScore.Error()+": "))
		return
	case err != nil:
		s.logger.Error().Err(err).Str("date", *p.PuzzleDate).Msg("submit score")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	scoresSubmitted.Inc()
	s.logger.Info().Str("date", sc.PuzzleDate).Int("guesses", sc.Guesses).Str("username", sc.Username).Msg("score submitted")
	writeJSON(w, http.StatusCreated, leaderboard.SubmitResponse{Success: true, Score: &sc})
}

// -----------------------------------------------------------------------------
// GET /dates

type datesRes struct {
	Success bool     `json:"success"`
	Dates   []string `json:"dates"`
}

func (s *Server) handleListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.svc.Dates(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list leaderboard dates")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, datesRes{Success: true, Dates: dates})
}

// -----------------------------------------------------------------------------
// GET /{date}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	limit := leaderboard.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	entries, err := s.svc.Top(r.Context(), date, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("get leaderboard")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, leaderboard.TopResponse{Success: true, PuzzleDate: date, Entries: entries})
}

// -----------------------------------------------------------------------------
// DELETE /{date}

type clearRes struct {
	Success    bool   `json:"success"`
	PuzzleDate string `json:"puzzle_date"`
	Deleted    int64  `json:"deleted"`
}

func (s *Server) handleClearDate(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	n, err := s.svc.Clear(r.Context(), date)
	if err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("clear leaderboard")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.logger.Warn().Str("date", date).Int64("deleted", n).Msg("leaderboard cleared")
	writeJSON(w, http.StatusOK, clearRes{Success: true, PuzzleDate: date, Deleted: n})
}

// -----------------------------------------------------------------------------
// helpers

// dateParam validates the {date} URL parameter, writing a 400 when malformed.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := chi.URLParam(r, "date")
	if _, err := daily.ParseDateKey(date, time.UTC); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return "", false
	}
	return date, true
}

type errorRes struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorRes{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

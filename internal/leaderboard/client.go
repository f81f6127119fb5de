// internal/leaderboard/client.go
//
// HTTP client for the leaderboard service. Client satisfies game.Reporter so
// an Engine can hand off won games without knowing about HTTP.

package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/dailyword/internal/game"
)

// ErrRejected is returned when the service answers with a non-success status.
var ErrRejected = errors.New("leaderboard rejected request")

// Client talks to a leaderboard server rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption { return func(c *Client) { c.http = hc } }

// NewClient returns a Client for baseURL (e.g. "https://lb.example.com").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SubmitRequest is the body of POST /api/leaderboard/score.
type SubmitRequest struct {
	Guesses     int    `json:"guesses"`
	TimeSeconds int    `json:"time_seconds"`
	PuzzleDate  string `json:"puzzle_date"`
}

// SubmitResponse is the body returned by POST /api/leaderboard/score.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Score   *Score `json:"score,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TopResponse is the body returned by GET /api/leaderboard/{date}.
type TopResponse struct {
	Success    bool    `json:"success"`
	PuzzleDate string  `json:"puzzle_date"`
	Entries    []Entry `json:"leaderboard"`
	Error      string  `json:"error,omitempty"`
}

// SubmitScore posts a won game and returns the assigned display name.
func (c *Client) SubmitScore(ctx context.Context, s game.Score) (string, error) {
	body, err := json.Marshal(SubmitRequest{
		Guesses:     s.GuessCount,
		TimeSeconds: s.ElapsedSeconds,
		PuzzleDate:  s.DateKey,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/leaderboard/score", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out SubmitResponse
	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return "", err
	}
	if !out.Success || out.Score == nil || out.Score.Username == "" {
		return "", fmt.Errorf("%w: %s", ErrRejected, out.Error)
	}
	return out.Score.Username, nil
}

// Top fetches the ranked entries for date. limit <= 0 uses the server default.
func (c *Client) Top(ctx context.Context, date string, limit int) ([]Entry, error) {
	u := c.baseURL + "/api/leaderboard/" + url.PathEscape(date)
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out TopResponse
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%w: %s %s: status %d %s", ErrRejected, req.Method, req.URL.Path, resp.StatusCode, e.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

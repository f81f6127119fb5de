// internal/httpserver/auth.go
//
// Admin authentication for destructive leaderboard endpoints.
// Tokens are HS256 JWTs signed with JWT_SECRET and carrying role=admin.
// Accepted from "Authorization: Bearer <token>".

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

// SignAdminToken issues an admin token valid for ttl.
func SignAdminToken(secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("empty JWT secret")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "leaderboard-admin",
		"role": adminRole,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// requireAdmin enforces a valid admin JWT. With no secret configured the
// admin API is disabled entirely.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	secret := []byte(s.opts.JWTSecret)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(secret) == 0 {
			writeError(w, http.StatusForbidden, "Admin API disabled")
			return
		}
		tok := bearerToken(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !t.Valid {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if role, _ := claims["role"].(string); role != adminRole {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

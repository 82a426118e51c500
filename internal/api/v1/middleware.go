package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/vmunix/reelfind/internal/session"
)

type contextKey string

const userKey contextKey = "user"

// requireAuth validates the bearer token and attaches the asserted
// identity to the request context. Malformed and expired tokens get
// the same 401; nothing distinguishes them.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
			return
		}

		user, err := s.sessions.Validate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// requestUser returns the identity requireAuth attached. Only valid on
// requests that passed through requireAuth.
func requestUser(r *http.Request) *session.User {
	user, _ := r.Context().Value(userKey).(*session.User)
	return user
}

package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// UserFromContext returns the display name the Gate attached to the
// request, or "" for unauthenticated requests.
func UserFromContext(ctx context.Context) string {
	name, _ := ctx.Value(userContextKey).(string)
	return name
}

// IsAuthFlowPath reports whether the path belongs to the sign-in or
// sign-up flow. Auth-flow paths are exempt from the signed-in
// requirement and are instead forbidden to signed-in users.
func IsAuthFlowPath(path string) bool {
	return path == "/sign-in" || path == "/sign-up" ||
		strings.HasPrefix(path, "/sign-in/") || strings.HasPrefix(path, "/sign-up/")
}

// Gate is the single authorization boundary. Every page route passes
// through it exactly once:
//
//   - unauthenticated request to a non-auth-flow path: redirect to /sign-in
//   - authenticated request to an auth-flow path: redirect to /
//
// Handlers behind the Gate never re-check authentication; they read the
// user from the request context.
func (s *Service) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := s.sessionUser(r)
		if name == "" {
			// Returning-user fallback: the persisted userName entry
			// outlives the cookie. Recognize the user and re-issue the
			// session before any redirect decision.
			if stored, err := s.kv.ReadUserName(r.Context()); err == nil && stored != "" {
				name = stored
				s.restoreSession(w, r, stored)
			}
		}
		authFlow := IsAuthFlowPath(r.URL.Path)

		if name == "" && !authFlow {
			http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
			return
		}
		if name != "" && authFlow {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

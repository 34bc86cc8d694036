package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/crew-app/crew/internal/core/ports"
)

type contextKey string

// UserIDKey is the request-context key under which the authenticated user
// id is stored by RequireAuth.
const UserIDKey contextKey = "userID"

// RequireAuth verifies the bearer access token and injects the user id into
// the request context. Requests with a missing, malformed, expired or
// type-mismatched token get a 401.
func RequireAuth(verifier ports.AccessTokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
				return
			}

			userID, err := verifier.VerifyAccessToken(strings.TrimSpace(token))
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id set by RequireAuth.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

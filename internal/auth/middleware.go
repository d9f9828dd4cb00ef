package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type ctxUserIDKey struct{}

// RequireAuth validates the bearer access token on the request and stores
// the authenticated user id in the request context.
func RequireAuth(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				writeError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}

			userID, err := tokens.VerifyAccessToken(strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					writeError(w, http.StatusUnauthorized, "access token expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a context carrying the given user id, the same way
// RequireAuth stores it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserIDKey{}, userID)
}

// UserIDFromContext returns the user id stored by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxUserIDKey{}).(string)
	return id, ok && id != ""
}

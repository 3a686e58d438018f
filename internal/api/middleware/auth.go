package middleware

import (
	"net/http"
	"strings"

	"github.com/zatekoja/hospitallocator/internal/infrastructure/auth"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present. Requests are never rejected here; operations that need a user
// check for one themselves.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyAccessToken(raw)
			if err != nil {
				observability.LoggerFromContext(r.Context()).Debug().
					Err(err).
					Msg("ignoring invalid access token")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), claims.UserID)))
		})
	}
}

package middleware

import (
	"net/http"
	"strings"

	"storea/internal/auth"
	"storea/internal/httputil"
)

// Paths served without authentication
var publicPaths = map[string]bool{
	"/health": true,
}

// AuthMiddleware validates the Bearer token on every request and stores the
// authenticated user ID in the request context. Unauthenticated requests to
// non-public paths are rejected with 401.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.Subject))
		})
	}
}

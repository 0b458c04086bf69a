package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"scrapbook/internal/auth"
	"scrapbook/internal/httputil"
)

// publicPaths are served without a bearer token
var publicPaths = map[string]bool{
	"/health": true,
}

// AuthMiddleware validates the bearer token of every request and stores the
// token subject as the user id. A nil verifier disables authentication.
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Pre-flight requests never carry credentials
			if r.Method == http.MethodOptions || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				logger.Debug("token rejected",
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
					"error", err,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

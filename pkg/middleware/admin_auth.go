package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
)

const AdminPasswordHeader = "X-Admin-Password"

// AdminAuth gates the admin surface behind the configured password. The check
// is a shared-secret comparison, not account-based auth; a mismatch maps to
// the same retryable unauthorized error the login form shows.
func AdminAuth(password string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminPasswordHeader)

			if password == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(password)) != 1 {
				log.Warn("Admin authentication failed",
					"request_id", requestID(r),
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Wrong password"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package admin

import (
	"net/http"
	"strings"

	"github.com/conectanegocios/conecta/internal/apperrors"
	"github.com/conectanegocios/conecta/internal/config"
	"github.com/rs/zerolog/log"
)

// AdminKeyHeader carries the shared secret on administrative requests.
const AdminKeyHeader = "X-Admin-Key"

// RequireAdmin guards administrative endpoints. A request passes when it
// presents the shared secret in the X-Admin-Key header, or a session token
// issued by HandleAuth as a bearer Authorization header.
func RequireAdmin(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get(AdminKeyHeader); key != "" {
				if VerifySecret(key, cfg.AdminKey) {
					next.ServeHTTP(w, r)
					return
				}

				log.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Msg("Admin key mismatch")
				apperrors.WriteUnauthorized(w, r, "Acesso não autorizado")
				return
			}

			if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
				tokenString := strings.TrimPrefix(authz, "Bearer ")
				if _, err := ValidateSessionToken(tokenString, cfg.JWTSecret); err == nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			apperrors.WriteUnauthorized(w, r, "Acesso não autorizado")
		})
	}
}

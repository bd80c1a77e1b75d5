package admin

import (
	"encoding/json"
	"net/http"

	"github.com/conectanegocios/conecta/internal/apperrors"
	"github.com/conectanegocios/conecta/internal/config"
	"github.com/rs/zerolog/log"
)

// AuthRequest is the payload for POST /admin/auth
type AuthRequest struct {
	Password string `json:"password"`
}

// AuthResponse carries the issued session token
type AuthResponse struct {
	Token string `json:"token"`
}

// HandleAuth handles POST /admin/auth: verifies the shared secret and issues
// a session token for subsequent administrative calls.
func HandleAuth(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Corpo da requisição inválido")
			return
		}

		if req.Password == "" {
			apperrors.WriteValidationError(w, r, "Senha é obrigatória", nil)
			return
		}

		if !VerifySecret(req.Password, cfg.AdminKey) {
			log.Warn().Str("remote_addr", r.RemoteAddr).Msg("Admin authentication failed")
			apperrors.WriteUnauthorized(w, r, "Senha incorreta")
			return
		}

		tokenString, err := CreateSessionToken(cfg.JWTSecret, cfg.SessionHours)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create admin session token")
			apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			return
		}

		apperrors.WriteSuccessMessage(w, r, http.StatusOK, AuthResponse{Token: tokenString},
			"Autenticação realizada com sucesso")
	}
}

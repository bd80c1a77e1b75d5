package members

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/conectanegocios/conecta/internal/apperrors"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// HandleComplete handles POST /members: completes a registration using the
// single-use invitation token carried in the body.
func HandleComplete(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Corpo da requisição inválido")
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			apperrors.WriteValidationError(w, r, "Dados inválidos", errs.Details())
			return
		}

		member, err := service.Complete(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenNotFound):
				apperrors.WriteNotFound(w, r, "Token inválido")
			case errors.Is(err, ErrTokenUsed):
				apperrors.WriteBadRequest(w, r, "Este token já foi utilizado")
			default:
				log.Error().Err(err).Msg("Failed to complete registration")
				apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			}
			return
		}

		apperrors.WriteSuccessMessage(w, r, http.StatusOK, member,
			"Cadastro completado com sucesso! Bem-vindo ao grupo.")
	}
}

// HandleInspectToken handles GET /members/{token}
func HandleInspectToken(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inspection, err := service.InspectToken(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			switch {
			case errors.Is(err, ErrMalformedToken):
				apperrors.WriteBadRequest(w, r, "Token inválido")
			case errors.Is(err, ErrTokenNotFound):
				apperrors.WriteNotFound(w, r, "Token não encontrado ou inválido")
			case errors.Is(err, ErrTokenUsed):
				apperrors.WriteBadRequest(w, r, "Este token já foi utilizado")
			default:
				log.Error().Err(err).Msg("Failed to inspect token")
				apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			}
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, inspection)
	}
}

// HandleLookup handles GET /members. With an email query parameter it is the
// passwordless member login; without one it is the admin listing of active
// members, so the admin gate applies only on that branch.
func HandleLookup(service *Service, requireAdmin func(http.Handler) http.Handler) http.HandlerFunc {
	list := requireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		members, err := service.ListActive(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to list members")
			apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			return
		}

		if members == nil {
			members = []ActiveMember{}
		}
		apperrors.WriteSuccess(w, r, http.StatusOK, members)
	}))

	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			list.ServeHTTP(w, r)
			return
		}

		profile, err := service.GetByEmail(r.Context(), email)
		if err != nil {
			switch {
			case errors.Is(err, ErrMemberNotFound):
				apperrors.WriteNotFound(w, r, "Membro não encontrado")
			case errors.Is(err, ErrRegistrationIncomplete):
				apperrors.WriteBadRequest(w, r, "Você ainda não completou seu cadastro")
			default:
				log.Error().Err(err).Msg("Failed to look up member")
				apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			}
			return
		}

		apperrors.WriteSuccessMessage(w, r, http.StatusOK, profile, "Membro encontrado")
	}
}

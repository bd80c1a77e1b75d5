package referrals

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/conectanegocios/conecta/internal/apperrors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// HandleCreate handles POST /referrals
func HandleCreate(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Corpo da requisição inválido")
			return
		}

		indicadorID, indicadoID, errs := req.Validate()
		if len(errs) > 0 {
			apperrors.WriteValidationError(w, r, "Dados inválidos", errs.Details())
			return
		}

		referral, err := service.Create(r.Context(), indicadorID, indicadoID, req)
		if err != nil {
			if errors.Is(err, ErrMemberNotFound) {
				apperrors.WriteNotFound(w, r, "Um ou ambos os membros não foram encontrados")
				return
			}
			log.Error().Err(err).Msg("Failed to create referral")
			apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			return
		}

		apperrors.WriteSuccessMessage(w, r, http.StatusCreated, referral,
			"Indicação criada com sucesso!")
	}
}

// HandleList handles GET /referrals?membroId=&tipo=&status=
func HandleList(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberIDStr := r.URL.Query().Get("membroId")
		role := r.URL.Query().Get("tipo")
		if memberIDStr == "" || role == "" {
			apperrors.WriteBadRequest(w, r, "Parâmetros membroId e tipo são obrigatórios")
			return
		}

		memberID, err := uuid.Parse(memberIDStr)
		if err != nil {
			apperrors.WriteBadRequest(w, r, "Parâmetro membroId inválido")
			return
		}

		status := Status(r.URL.Query().Get("status"))
		if status != "" && !status.IsValid() {
			apperrors.WriteBadRequest(w, r, "Status inválido")
			return
		}

		referrals, err := service.List(r.Context(), memberID, role, status)
		if err != nil {
			if errors.Is(err, ErrInvalidRole) {
				apperrors.WriteBadRequest(w, r, `Tipo deve ser "made" ou "received"`)
				return
			}
			log.Error().Err(err).Msg("Failed to list referrals")
			apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			return
		}

		if referrals == nil {
			referrals = []Referral{}
		}
		apperrors.WriteSuccess(w, r, http.StatusOK, referrals)
	}
}

// HandleSetStatus handles PATCH /referrals/{id}
func HandleSetStatus(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			apperrors.WriteNotFound(w, r, "Indicação não encontrada")
			return
		}

		var req SetStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Corpo da requisição inválido")
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			apperrors.WriteValidationError(w, r, "Dados inválidos", errs.Details())
			return
		}

		update, err := service.SetStatus(r.Context(), id, Status(req.Status))
		if err != nil {
			if errors.Is(err, ErrReferralNotFound) {
				apperrors.WriteNotFound(w, r, "Indicação não encontrada")
				return
			}
			log.Error().Err(err).Str("referral_id", id.String()).Msg("Failed to update referral status")
			apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			return
		}

		apperrors.WriteSuccessMessage(w, r, http.StatusOK, update,
			"Status da indicação atualizado com sucesso!")
	}
}

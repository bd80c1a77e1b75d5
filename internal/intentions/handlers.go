package intentions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/conectanegocios/conecta/internal/apperrors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// HandleSubmit handles POST /intentions
func HandleSubmit(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Corpo da requisição inválido")
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			apperrors.WriteValidationError(w, r, "Dados inválidos", errs.Details())
			return
		}

		intention, err := service.Submit(r.Context(), req)
		if err != nil {
			if errors.Is(err, ErrEmailConflict) {
				apperrors.WriteConflict(w, r, "Este email já possui uma intenção cadastrada")
				return
			}
			log.Error().Err(err).Msg("Failed to create intention")
			apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			return
		}

		apperrors.WriteSuccessMessage(w, r, http.StatusCreated, intention,
			"Intenção de participação registrada com sucesso!")
	}
}

// HandleList handles GET /intentions
func HandleList(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := Status(r.URL.Query().Get("status"))
		if status != "" && !status.IsValid() {
			apperrors.WriteBadRequest(w, r, "Status inválido")
			return
		}

		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 10)

		intentions, err := service.List(r.Context(), status, page, limit)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list intentions")
			apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			return
		}

		if intentions == nil {
			intentions = []Intention{}
		}
		apperrors.WriteSuccess(w, r, http.StatusOK, intentions)
	}
}

// HandleDecide handles PATCH /intentions/{id}
func HandleDecide(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			apperrors.WriteNotFound(w, r, "Intenção não encontrada")
			return
		}

		var req DecideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Corpo da requisição inválido")
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			apperrors.WriteValidationError(w, r, "Dados inválidos", errs.Details())
			return
		}

		result, err := service.Decide(r.Context(), id, Status(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, ErrIntentionNotFound):
				apperrors.WriteNotFound(w, r, "Intenção não encontrada")
			case errors.Is(err, ErrAlreadyDecided):
				apperrors.WriteConflict(w, r, "Esta intenção já foi decidida")
			case errors.Is(err, ErrEmailConflict):
				apperrors.WriteConflict(w, r, "Já existe um membro com este email")
			default:
				log.Error().Err(err).Str("intention_id", id.String()).Msg("Failed to decide intention")
				apperrors.WriteInternalError(w, r, "Erro interno do servidor")
			}
			return
		}

		message := "Status da intenção atualizado com sucesso!"
		if result.Membro != nil {
			message = "Intenção aprovada! Convite gerado com sucesso."
		}

		apperrors.WriteSuccessMessage(w, r, http.StatusOK, result, message)
	}
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

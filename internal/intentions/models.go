package intentions

import (
	"time"

	"github.com/conectanegocios/conecta/internal/validation"
	"github.com/google/uuid"
)

// Status is the lifecycle state of an intention.
type Status string

const (
	StatusPendente Status = "PENDENTE"
	StatusAprovado Status = "APROVADO"
	StatusRecusado Status = "RECUSADO"
)

// IsValid returns true for one of the three enumerated statuses.
func (s Status) IsValid() bool {
	return s == StatusPendente || s == StatusAprovado || s == StatusRecusado
}

// IsDecided returns true once the intention reached a terminal status.
func (s Status) IsDecided() bool {
	return s == StatusAprovado || s == StatusRecusado
}

// Intention is a prospective member's request to join the group.
type Intention struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Empresa   string    `json:"empresa"`
	Motivacao string    `json:"motivacao"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitRequest is the payload for POST /intentions
type SubmitRequest struct {
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Empresa   string `json:"empresa"`
	Motivacao string `json:"motivacao"`
}

// Validate checks the submission payload and returns field-level violations.
func (r *SubmitRequest) Validate() validation.Errors {
	var errs validation.Errors
	validation.StringLength(&errs, "nome", "Nome", r.Nome, 3, 100)
	validation.Email(&errs, "email", r.Email, 100)
	validation.StringLength(&errs, "empresa", "Empresa", r.Empresa, 2, 100)
	validation.StringLength(&errs, "motivacao", "Motivação", r.Motivacao, 20, 500)
	return errs
}

// DecideRequest is the payload for PATCH /intentions/{id}
type DecideRequest struct {
	Status string `json:"status"`
}

// Validate checks the decision payload.
func (r *DecideRequest) Validate() validation.Errors {
	var errs validation.Errors
	validation.OneOf(&errs, "status", r.Status,
		string(StatusPendente), string(StatusAprovado), string(StatusRecusado))
	return errs
}

// ProvisionedMember is the member summary returned to the administrator when
// an approval creates a member. It includes the plaintext invitation token so
// the registration link can be shared out of band.
type ProvisionedMember struct {
	ID         uuid.UUID `json:"id"`
	Nome       string    `json:"nome"`
	Email      string    `json:"email"`
	Token      string    `json:"token"`
	TokenUsado bool      `json:"tokenUsado"`
}

// DecisionResult is the outcome of deciding an intention. Membro and
// ConviteLink are only set when the decision is an approval.
type DecisionResult struct {
	Intencao    *Intention         `json:"intencao"`
	Membro      *ProvisionedMember `json:"membro,omitempty"`
	ConviteLink string             `json:"conviteLink,omitempty"`
}

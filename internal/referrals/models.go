package referrals

import (
	"time"

	"github.com/conectanegocios/conecta/internal/validation"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a referral, driven by the receiving member.
type Status string

const (
	StatusNova      Status = "NOVA"
	StatusEmContato Status = "EM_CONTATO"
	StatusFechada   Status = "FECHADA"
	StatusRecusada  Status = "RECUSADA"
)

// IsValid returns true for one of the four enumerated statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNova, StatusEmContato, StatusFechada, StatusRecusada:
		return true
	}
	return false
}

// Listing roles: "made" selects referrals where the member is the referrer,
// "received" those where the member is the referee.
const (
	RoleMade     = "made"
	RoleReceived = "received"
)

// MemberSummary is the compact member view embedded in referral responses.
type MemberSummary struct {
	ID      uuid.UUID `json:"id"`
	Nome    string    `json:"nome"`
	Empresa string    `json:"empresa"`
}

// Referral is an introduction of a business opportunity from the referrer
// (indicador) to the referee (indicado).
type Referral struct {
	ID             uuid.UUID     `json:"id"`
	IndicadorID    uuid.UUID     `json:"indicadorId"`
	IndicadoID     uuid.UUID     `json:"indicadoId"`
	EmpresaContato string        `json:"empresaContato"`
	Descricao      string        `json:"descricao"`
	Status         Status        `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Indicador      MemberSummary `json:"indicador"`
	Indicado       MemberSummary `json:"indicado"`
}

// CreateRequest is the payload for POST /referrals
type CreateRequest struct {
	IndicadorID    string `json:"indicadorId"`
	IndicadoID     string `json:"indicadoId"`
	EmpresaContato string `json:"empresaContato"`
	Descricao      string `json:"descricao"`
}

// Validate checks the creation payload. A self-referral is attributed to the
// indicadoId field.
func (r *CreateRequest) Validate() (indicadorID, indicadoID uuid.UUID, errs validation.Errors) {
	indicadorID = validation.UUIDField(&errs, "indicadorId", "ID do indicador", r.IndicadorID)
	indicadoID = validation.UUIDField(&errs, "indicadoId", "ID do indicado", r.IndicadoID)
	validation.StringLength(&errs, "empresaContato", "Empresa/Contato", r.EmpresaContato, 2, 100)
	validation.StringLength(&errs, "descricao", "Descrição", r.Descricao, 20, 500)

	if indicadorID != uuid.Nil && indicadorID == indicadoID {
		errs.Add("indicadoId", "Um membro não pode criar uma indicação para si mesmo")
	}
	return indicadorID, indicadoID, errs
}

// SetStatusRequest is the payload for PATCH /referrals/{id}
type SetStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks the status payload.
func (r *SetStatusRequest) Validate() validation.Errors {
	var errs validation.Errors
	validation.OneOf(&errs, "status", r.Status,
		string(StatusNova), string(StatusEmContato), string(StatusFechada), string(StatusRecusada))
	return errs
}

// StatusUpdate is the response for a successful status change.
type StatusUpdate struct {
	ID        uuid.UUID `json:"id"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

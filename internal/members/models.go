package members

import (
	"time"

	"github.com/conectanegocios/conecta/internal/token"
	"github.com/conectanegocios/conecta/internal/validation"
	"github.com/google/uuid"
)

// Member is an activated (or provisioned) participant.
type Member struct {
	ID         uuid.UUID `json:"id"`
	Nome       string    `json:"nome"`
	Email      string    `json:"email"`
	Empresa    string    `json:"empresa"`
	Telefone   *string   `json:"telefone"`
	Cargo      *string   `json:"cargo"`
	TokenUsado bool      `json:"tokenUsado"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TokenInspection is the identity revealed when a registration token is
// looked up before completion.
type TokenInspection struct {
	ID         uuid.UUID `json:"id"`
	Nome       string    `json:"nome"`
	Email      string    `json:"email"`
	Empresa    string    `json:"empresa"`
	TokenUsado bool      `json:"tokenUsado"`
}

// Profile is the member view returned on login by email.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Nome       string    `json:"nome"`
	Email      string    `json:"email"`
	Empresa    string    `json:"empresa"`
	Telefone   *string   `json:"telefone"`
	Cargo      *string   `json:"cargo"`
	TokenUsado bool      `json:"tokenUsado"`
}

// ActiveMember is the listing view of an activated member.
type ActiveMember struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Empresa   string    `json:"empresa"`
	Cargo     *string   `json:"cargo"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompleteRequest is the payload for POST /members
type CompleteRequest struct {
	Token    string  `json:"token"`
	Telefone *string `json:"telefone"`
	Cargo    *string `json:"cargo"`
}

// Validate checks the registration-completion payload.
func (r *CompleteRequest) Validate() validation.Errors {
	var errs validation.Errors
	if !token.IsWellFormed(r.Token) {
		errs.Add("token", "Token inválido")
	}
	validation.OptionalStringLength(&errs, "telefone", "Telefone", r.Telefone, 10, 20)
	validation.OptionalStringLength(&errs, "cargo", "Cargo", r.Cargo, 3, 100)
	return errs
}

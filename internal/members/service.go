package members

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conectanegocios/conecta/internal/token"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrMalformedToken is returned for strings that are not 32 lowercase hex
	ErrMalformedToken = errors.New("malformed registration token")

	// ErrTokenNotFound is returned when no member holds the token
	ErrTokenNotFound = errors.New("registration token not found")

	// ErrTokenUsed is returned when the token has already been consumed
	ErrTokenUsed = errors.New("registration token already used")

	// ErrMemberNotFound is returned when an email lookup matches no member
	ErrMemberNotFound = errors.New("member not found")

	// ErrRegistrationIncomplete is returned when a provisioned member tries
	// to log in before completing registration
	ErrRegistrationIncomplete = errors.New("member registration not completed")
)

// Service provides registration and member lookup operations
type Service struct {
	pool *pgxpool.Pool
}

// NewService creates a new member service
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// InspectToken validates a registration token and reveals the pre-filled
// member identity it belongs to. The token stays unconsumed.
func (s *Service) InspectToken(ctx context.Context, tok string) (*TokenInspection, error) {
	if !token.IsWellFormed(tok) {
		return nil, ErrMalformedToken
	}

	var m TokenInspection
	err := s.pool.QueryRow(ctx, `
		SELECT id, nome, email, empresa, token_usado
		FROM membros
		WHERE token = $1
	`, tok).Scan(&m.ID, &m.Nome, &m.Email, &m.Empresa, &m.TokenUsado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to load member by token: %w", err)
	}

	if m.TokenUsado {
		return nil, ErrTokenUsed
	}

	return &m, nil
}

// Complete consumes a registration token: sets the supplementary fields and
// flips token_usado. The row lock guarantees a second call with the same
// token fails with ErrTokenUsed, never silently succeeds.
func (s *Service) Complete(ctx context.Context, req CompleteRequest) (*Member, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var m Member
	err = tx.QueryRow(ctx, `
		SELECT id, nome, email, empresa, telefone, cargo, token_usado, created_at, updated_at
		FROM membros
		WHERE token = $1
		FOR UPDATE
	`, req.Token).Scan(
		&m.ID, &m.Nome, &m.Email, &m.Empresa, &m.Telefone, &m.Cargo,
		&m.TokenUsado, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to load member by token: %w", err)
	}

	if m.TokenUsado {
		return nil, ErrTokenUsed
	}

	err = tx.QueryRow(ctx, `
		UPDATE membros
		SET telefone = $2, cargo = $3, token_usado = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING telefone, cargo, token_usado, updated_at
	`, m.ID, trimOptional(req.Telefone), trimOptional(req.Cargo)).Scan(
		&m.Telefone, &m.Cargo, &m.TokenUsado, &m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to complete registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &m, nil
}

// GetByEmail looks up an activated member for login.
func (s *Service) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := s.pool.QueryRow(ctx, `
		SELECT id, nome, email, empresa, telefone, cargo, token_usado
		FROM membros
		WHERE email = $1
	`, strings.TrimSpace(email)).Scan(
		&p.ID, &p.Nome, &p.Email, &p.Empresa, &p.Telefone, &p.Cargo, &p.TokenUsado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member by email: %w", err)
	}

	if !p.TokenUsado {
		return nil, ErrRegistrationIncomplete
	}

	return &p, nil
}

// ListActive returns members that completed registration, newest first.
func (s *Service) ListActive(ctx context.Context) ([]ActiveMember, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, nome, email, empresa, cargo, created_at
		FROM membros
		WHERE token_usado = TRUE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var list []ActiveMember
	for rows.Next() {
		var m ActiveMember
		if err := rows.Scan(&m.ID, &m.Nome, &m.Email, &m.Empresa, &m.Cargo, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return list, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

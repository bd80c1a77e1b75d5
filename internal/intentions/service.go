package intentions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conectanegocios/conecta/internal/notify"
	"github.com/conectanegocios/conecta/internal/token"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	// ErrIntentionNotFound is returned when an intention id is unknown
	ErrIntentionNotFound = errors.New("intention not found")

	// ErrEmailConflict is returned when an intention already exists for an email
	ErrEmailConflict = errors.New("an intention already exists for this email")

	// ErrAlreadyDecided is returned when deciding an intention that already
	// reached a terminal status
	ErrAlreadyDecided = errors.New("intention has already been decided")
)

// Service provides intention workflow operations
type Service struct {
	pool     *pgxpool.Pool
	baseURL  string
	notifier notify.Notifier
}

// NewService creates a new intention service
func NewService(pool *pgxpool.Pool, baseURL string, notifier notify.Notifier) *Service {
	return &Service{pool: pool, baseURL: baseURL, notifier: notifier}
}

// Submit creates a new PENDENTE intention. At most one intention may ever
// exist per email.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Intention, error) {
	intention := &Intention{
		Nome:      strings.TrimSpace(req.Nome),
		Email:     strings.TrimSpace(req.Email),
		Empresa:   strings.TrimSpace(req.Empresa),
		Motivacao: strings.TrimSpace(req.Motivacao),
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO intencoes (nome, email, empresa, motivacao)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`, intention.Nome, intention.Email, intention.Empresa, intention.Motivacao).Scan(
		&intention.ID,
		&intention.Status,
		&intention.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailConflict
		}
		return nil, fmt.Errorf("failed to create intention: %w", err)
	}

	return intention, nil
}

// List returns intentions newest first, optionally filtered by status.
// Page numbering starts at 1.
func (s *Service) List(ctx context.Context, status Status, page, limit int) ([]Intention, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, nome, email, empresa, motivacao, status, created_at
		FROM intencoes
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list intentions: %w", err)
	}
	defer rows.Close()

	var intentions []Intention
	for rows.Next() {
		var in Intention
		if err := rows.Scan(&in.ID, &in.Nome, &in.Email, &in.Empresa, &in.Motivacao, &in.Status, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan intention: %w", err)
		}
		intentions = append(intentions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intentions: %w", err)
	}

	return intentions, nil
}

// Decide transitions an intention out of PENDENTE. An approval provisions a
// member with a fresh invitation token in the same transaction, so an
// intention is never APROVADO without its member or vice versa. The
// invitation notification is emitted after the transaction commits.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, newStatus Status) (*DecisionResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var intention Intention
	err = tx.QueryRow(ctx, `
		SELECT id, nome, email, empresa, motivacao, status, created_at
		FROM intencoes
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&intention.ID,
		&intention.Nome,
		&intention.Email,
		&intention.Empresa,
		&intention.Motivacao,
		&intention.Status,
		&intention.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIntentionNotFound
		}
		return nil, fmt.Errorf("failed to load intention: %w", err)
	}

	if intention.Status.IsDecided() {
		return nil, ErrAlreadyDecided
	}

	if _, err := tx.Exec(ctx, `UPDATE intencoes SET status = $2 WHERE id = $1`, id, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update intention status: %w", err)
	}
	intention.Status = newStatus

	result := &DecisionResult{Intencao: &intention}

	if newStatus == StatusAprovado {
		member, err := s.provisionMember(ctx, tx, &intention)
		if err != nil {
			return nil, err
		}
		result.Membro = member
		result.ConviteLink = fmt.Sprintf("%s/cadastro/%s", s.baseURL, member.Token)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if result.Membro != nil {
		if err := s.notifier.SendInvitation(ctx, notify.Invitation{
			Nome:        result.Membro.Nome,
			Email:       result.Membro.Email,
			ConviteLink: result.ConviteLink,
		}); err != nil {
			// Delivery is best effort; the admin still receives the link.
			log.Warn().Err(err).Str("email", result.Membro.Email).Msg("Failed to send invitation")
		}
	}

	return result, nil
}

// provisionMember inserts the member row for an approved intention. The
// token unique constraint makes a collision retryable; a duplicate member
// email surfaces as ErrEmailConflict.
func (s *Service) provisionMember(ctx context.Context, tx pgx.Tx, intention *Intention) (*ProvisionedMember, error) {
	for attempt := 0; attempt < 3; attempt++ {
		inviteToken, err := token.Generate()
		if err != nil {
			return nil, err
		}

		member := &ProvisionedMember{
			Nome:  intention.Nome,
			Email: intention.Email,
			Token: inviteToken,
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO membros (nome, email, empresa, token)
			VALUES ($1, $2, $3, $4)
			RETURNING id, token_usado
		`, intention.Nome, intention.Email, intention.Empresa, inviteToken).Scan(
			&member.ID,
			&member.TokenUsado,
		)
		if err == nil {
			return member, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "membros_token_key" {
				// Token collision (extremely unlikely); retry.
				continue
			}
			return nil, ErrEmailConflict
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return nil, fmt.Errorf("failed to create member: token collision retry exhausted")
}

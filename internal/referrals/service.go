package referrals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrReferralNotFound is returned when a referral id is unknown
	ErrReferralNotFound = errors.New("referral not found")

	// ErrMemberNotFound is returned when a referral names a member id that
	// does not resolve to an activated member
	ErrMemberNotFound = errors.New("one or both members were not found")

	// ErrInvalidRole is returned for listing roles other than made/received
	ErrInvalidRole = errors.New("invalid listing role")
)

// Service provides referral workflow operations
type Service struct {
	pool *pgxpool.Pool
}

// NewService creates a new referral service
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// Create records a referral from indicador to indicado. Both ids must
// resolve to members that completed registration.
func (s *Service) Create(ctx context.Context, indicadorID, indicadoID uuid.UUID, req CreateRequest) (*Referral, error) {
	ref := &Referral{
		IndicadorID:    indicadorID,
		IndicadoID:     indicadoID,
		EmpresaContato: strings.TrimSpace(req.EmpresaContato),
		Descricao:      strings.TrimSpace(req.Descricao),
	}

	var activeCount int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM membros
		WHERE id = ANY($1) AND token_usado = TRUE
	`, []uuid.UUID{indicadorID, indicadoID}).Scan(&activeCount)
	if err != nil {
		return nil, fmt.Errorf("failed to check members: %w", err)
	}
	if activeCount != 2 {
		return nil, ErrMemberNotFound
	}

	err = s.pool.QueryRow(ctx, `
		INSERT INTO indicacoes (indicador_id, indicado_id, empresa_contato, descricao)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`, indicadorID, indicadoID, ref.EmpresaContato, ref.Descricao).Scan(
		&ref.ID, &ref.Status, &ref.CreatedAt, &ref.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	if err := s.loadMemberSummaries(ctx, ref); err != nil {
		return nil, err
	}

	return ref, nil
}

// List returns the referrals a member made or received, newest first, with
// both member summaries embedded. The optional status narrows the result.
func (s *Service) List(ctx context.Context, memberID uuid.UUID, role string, status Status) ([]Referral, error) {
	var roleColumn string
	switch role {
	case RoleMade:
		roleColumn = "i.indicador_id"
	case RoleReceived:
		roleColumn = "i.indicado_id"
	default:
		return nil, ErrInvalidRole
	}

	query := fmt.Sprintf(`
		SELECT
		  i.id, i.indicador_id, i.indicado_id, i.empresa_contato, i.descricao,
		  i.status, i.created_at, i.updated_at,
		  mr.nome, mr.empresa,
		  md.nome, md.empresa
		FROM indicacoes i
		INNER JOIN membros mr ON mr.id = i.indicador_id
		INNER JOIN membros md ON md.id = i.indicado_id
		WHERE %s = $1
	`, roleColumn)
	args := []any{memberID}

	if status != "" {
		query += ` AND i.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	defer rows.Close()

	var referrals []Referral
	for rows.Next() {
		var ref Referral
		if err := rows.Scan(
			&ref.ID, &ref.IndicadorID, &ref.IndicadoID, &ref.EmpresaContato, &ref.Descricao,
			&ref.Status, &ref.CreatedAt, &ref.UpdatedAt,
			&ref.Indicador.Nome, &ref.Indicador.Empresa,
			&ref.Indicado.Nome, &ref.Indicado.Empresa,
		); err != nil {
			return nil, fmt.Errorf("failed to scan referral: %w", err)
		}
		ref.Indicador.ID = ref.IndicadorID
		ref.Indicado.ID = ref.IndicadoID
		referrals = append(referrals, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating referrals: %w", err)
	}

	return referrals, nil
}

// SetStatus updates a referral's status. Transitions are not guarded: the
// receiving member may set any enumerated value at any time.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, newStatus Status) (*StatusUpdate, error) {
	update := &StatusUpdate{ID: id}
	err := s.pool.QueryRow(ctx, `
		UPDATE indicacoes
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING status, updated_at
	`, id, newStatus).Scan(&update.Status, &update.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, fmt.Errorf("failed to update referral status: %w", err)
	}

	return update, nil
}

func (s *Service) loadMemberSummaries(ctx context.Context, ref *Referral) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, nome, empresa
		FROM membros
		WHERE id = ANY($1)
	`, []uuid.UUID{ref.IndicadorID, ref.IndicadoID})
	if err != nil {
		return fmt.Errorf("failed to load member summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var summary MemberSummary
		if err := rows.Scan(&summary.ID, &summary.Nome, &summary.Empresa); err != nil {
			return fmt.Errorf("failed to scan member summary: %w", err)
		}
		switch summary.ID {
		case ref.IndicadorID:
			ref.Indicador = summary
		case ref.IndicadoID:
			ref.Indicado = summary
		}
	}
	return rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

var _ repository.SecurityRepository = (*SecurityRepo)(nil)

// SecurityRepo implementación del puerto SecurityRepository sobre PostgreSQL (usable con pool o tx).
type SecurityRepo struct {
	q Querier
}

// NewSecurityRepository construye el adaptador de persistencia del catálogo de acciones.
func NewSecurityRepository(q Querier) *SecurityRepo {
	return &SecurityRepo{q: q}
}

func (r *SecurityRepo) Create(ctx context.Context, sec *entity.Security) error {
	query := `
		INSERT INTO securities (id, symbol, name, face_value, blocked_for_trading, blocked_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sec.ID, sec.Symbol, sec.Name, sec.FaceValue,
		sec.BlockedForTrading, sec.BlockedReason, sec.CreatedAt, sec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert security: %w", err)
	}
	return nil
}

func (r *SecurityRepo) GetByID(ctx context.Context, id string) (*entity.Security, error) {
	return r.getBy(ctx, "id", id)
}

func (r *SecurityRepo) GetBySymbol(ctx context.Context, symbol string) (*entity.Security, error) {
	return r.getBy(ctx, "symbol", symbol)
}

func (r *SecurityRepo) getBy(ctx context.Context, column, value string) (*entity.Security, error) {
	query := fmt.Sprintf(`
		SELECT id, symbol, name, face_value, blocked_for_trading, blocked_reason, created_at, updated_at
		FROM securities WHERE %s = $1`, column)
	var s entity.Security
	err := r.q.QueryRow(ctx, query, value).Scan(
		&s.ID, &s.Symbol, &s.Name, &s.FaceValue,
		&s.BlockedForTrading, &s.BlockedReason, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get security: %w", err)
	}
	return &s, nil
}

func (r *SecurityRepo) List(ctx context.Context, limit, offset int) ([]*entity.Security, error) {
	query := `
		SELECT id, symbol, name, face_value, blocked_for_trading, blocked_reason, created_at, updated_at
		FROM securities ORDER BY symbol LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list securities: %w", err)
	}
	defer rows.Close()

	var out []*entity.Security
	for rows.Next() {
		var s entity.Security
		if err := rows.Scan(
			&s.ID, &s.Symbol, &s.Name, &s.FaceValue,
			&s.BlockedForTrading, &s.BlockedReason, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan security: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SecurityRepo) Update(ctx context.Context, sec *entity.Security) error {
	query := `
		UPDATE securities
		SET name = $2, face_value = $3, blocked_for_trading = $4, blocked_reason = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		sec.ID, sec.Name, sec.FaceValue, sec.BlockedForTrading, sec.BlockedReason, sec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update security: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

var _ repository.PurchaseLotRepository = (*PurchaseLotRepo)(nil)

// PurchaseLotRepo implementación del libro de compras sobre PostgreSQL.
// La tabla es append-only: no hay UPDATE ni DELETE.
type PurchaseLotRepo struct {
	q Querier
}

// NewPurchaseLotRepository construye el adaptador del libro de compras.
func NewPurchaseLotRepository(q Querier) *PurchaseLotRepo {
	return &PurchaseLotRepo{q: q}
}

func (r *PurchaseLotRepo) Create(ctx context.Context, lot *entity.PurchaseLot) error {
	query := `
		INSERT INTO purchase_lots (id, number, security_id, vendor_id, quantity, unit_price, acquired_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.Number, lot.SecurityID, lot.VendorID,
		lot.Quantity, lot.UnitPrice, lot.AcquiredAt, lot.CreatedAt, lot.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase lot: %w", err)
	}
	return nil
}

func (r *PurchaseLotRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseLot, error) {
	query := `
		SELECT id, number, security_id, vendor_id, quantity, unit_price, acquired_at, created_at, created_by
		FROM purchase_lots WHERE id = $1`
	var l entity.PurchaseLot
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Number, &l.SecurityID, &l.VendorID,
		&l.Quantity, &l.UnitPrice, &l.AcquiredAt, &l.CreatedAt, &l.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase lot: %w", err)
	}
	return &l, nil
}

func (r *PurchaseLotRepo) ListBySecurity(ctx context.Context, securityID string, limit, offset int) ([]*entity.PurchaseLot, error) {
	query := `
		SELECT id, number, security_id, vendor_id, quantity, unit_price, acquired_at, created_at, created_by
		FROM purchase_lots WHERE security_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, securityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase lots: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseLot
	for rows.Next() {
		var l entity.PurchaseLot
		if err := rows.Scan(
			&l.ID, &l.Number, &l.SecurityID, &l.VendorID,
			&l.Quantity, &l.UnitPrice, &l.AcquiredAt, &l.CreatedAt, &l.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan purchase lot: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// TotalsBySecurity agrega el historial completo de lotes: Σ cantidad y Σ cantidad*precio.
// El promedio ponderado se deriva siempre de estos totales, nunca de un acumulado.
func (r *PurchaseLotRepo) TotalsBySecurity(ctx context.Context, securityID string) (int64, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * unit_price), 0)
		FROM purchase_lots WHERE security_id = $1`
	var quantity int64
	var totalCost decimal.Decimal
	if err := r.q.QueryRow(ctx, query, securityID).Scan(&quantity, &totalCost); err != nil {
		return 0, decimal.Zero, fmt.Errorf("totals by security: %w", err)
	}
	return quantity, totalCost, nil
}

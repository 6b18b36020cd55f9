package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// PurchaseLotRepository define el puerto del libro de compras (append-only).
// No existe Update ni Delete: los lotes nunca mutan después de insertados.
type PurchaseLotRepository interface {
	Create(ctx context.Context, lot *entity.PurchaseLot) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseLot, error)
	ListBySecurity(ctx context.Context, securityID string, limit, offset int) ([]*entity.PurchaseLot, error)
	// TotalsBySecurity devuelve la cantidad total adquirida y el costo total
	// (Σ cantidad, Σ cantidad*precio) sobre el historial completo de lotes.
	TotalsBySecurity(ctx context.Context, securityID string) (quantity int64, totalCost decimal.Decimal, err error)
}

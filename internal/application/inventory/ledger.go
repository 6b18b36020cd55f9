package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kabidey/privity-sub000/internal/application/sequence"
	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

// Ledger registra lotes de compra en el libro append-only y dispara la
// reconstrucción del snapshot para que la cantidad nueva sea reservable.
type Ledger struct {
	lots       repository.PurchaseLotRepository
	securities repository.SecurityRepository
	vendors    repository.VendorRepository
	seq        *sequence.Generator
	projector  *Projector
}

// NewLedger construye el caso de uso del libro de compras.
func NewLedger(
	lots repository.PurchaseLotRepository,
	securities repository.SecurityRepository,
	vendors repository.VendorRepository,
	seq *sequence.Generator,
	projector *Projector,
) *Ledger {
	return &Ledger{lots: lots, securities: securities, vendors: vendors, seq: seq, projector: projector}
}

// RegisterLotInput entrada para registrar un lote de compra.
type RegisterLotInput struct {
	SecurityID string
	VendorID   string
	Quantity   int64
	UnitPrice  decimal.Decimal
	AcquiredAt time.Time
	CreatedBy  string
}

// RegisterLot valida acción y vendedor, emite la orden de compra y persiste el lote.
// El lote nunca muta después: correcciones se registran como lotes nuevos.
func (lg *Ledger) RegisterLot(ctx context.Context, in RegisterLotInput) (*entity.PurchaseLot, error) {
	if in.Quantity <= 0 || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	sec, err := lg.securities.GetByID(ctx, in.SecurityID)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, domain.ErrNotFound
	}

	vendor, err := lg.vendors.GetByID(ctx, in.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	if !vendor.Active() {
		return nil, domain.ErrVendorIneligible
	}

	now := time.Now()
	acquiredAt := in.AcquiredAt
	if acquiredAt.IsZero() {
		acquiredAt = now
	}
	number, err := lg.seq.NextPurchaseOrderNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	lot := &entity.PurchaseLot{
		ID:         uuid.New().String(),
		Number:     number,
		SecurityID: in.SecurityID,
		VendorID:   in.VendorID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		AcquiredAt: acquiredAt,
		CreatedAt:  now,
		CreatedBy:  in.CreatedBy,
	}
	if err := lg.lots.Create(ctx, lot); err != nil {
		return nil, err
	}

	// La cantidad nueva solo es reservable después de reconstruir la proyección.
	if _, err := lg.projector.Rebuild(ctx, in.SecurityID); err != nil {
		return nil, err
	}
	return lot, nil
}

// ListBySecurity devuelve los lotes de una acción, paginados.
func (lg *Ledger) ListBySecurity(ctx context.Context, securityID string, limit, offset int) ([]*entity.PurchaseLot, error) {
	return lg.lots.ListBySecurity(ctx, securityID, limit, offset)
}

package inventory

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de reservas: la mutación del
// snapshot y la del booking se confirman o revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bookingRepo repository.BookingRepository,
		snapshotRepo repository.SnapshotRepository,
		lotRepo repository.PurchaseLotRepository,
		paymentRepo repository.PaymentRepository,
		refundRepo repository.RefundRequestRepository,
	) error) error
}

// SnapshotCache cache de lectura para snapshots de inventario (Redis u otro).
// Se invalida al insertar lotes o al cambiar flags de aprobación/anulación/transferencia.
type SnapshotCache interface {
	Get(ctx context.Context, securityID string) (*entity.InventorySnapshot, bool, error)
	Set(ctx context.Context, snap *entity.InventorySnapshot) error
	Invalidate(ctx context.Context, securityID string) error
}

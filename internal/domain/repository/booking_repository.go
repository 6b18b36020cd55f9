package repository

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// BookingRepository define el puerto de persistencia de bookings.
// Delete existe solo para bookings en aprobación pendiente; el caso de uso
// rechaza el borrado en cualquier otro estado.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	// GetForUpdate bloquea la fila del booking (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Booking, error)
	Update(ctx context.Context, b *entity.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	ListBySecurity(ctx context.Context, securityID string, limit, offset int) ([]*entity.Booking, error)
	// BlockedQuantity suma las cantidades de bookings que bloquean inventario
	// (aprobados, no anulados, no transferidos, sin rechazo de puerta de pérdida).
	BlockedQuantity(ctx context.Context, securityID string) (int64, error)
	// TransferredQuantity suma las cantidades de bookings transferidos.
	TransferredQuantity(ctx context.Context, securityID string) (int64, error)
}

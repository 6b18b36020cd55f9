package repository

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// RefundRequestRepository define el puerto de solicitudes de reembolso
// (consumidas por un colaborador externo de tesorería).
type RefundRequestRepository interface {
	Create(ctx context.Context, r *entity.RefundRequest) error
	ListByBooking(ctx context.Context, bookingID string) ([]*entity.RefundRequest, error)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// PaymentRepository define el puerto del libro de pagos (append-only por booking).
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	ListByBooking(ctx context.Context, bookingID string) ([]*entity.Payment, error)
	// SumByBooking devuelve la suma de pagos registrados del booking.
	SumByBooking(ctx context.Context, bookingID string) (decimal.Decimal, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment es una entrada append-only del libro de pagos de un booking.
// El ciclo de vida solo lee la suma para decidir pago completo; el registro
// de pagos pertenece a un colaborador externo.
type Payment struct {
	ID        string
	BookingID string
	Amount    decimal.Decimal // > 0
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundRequest se genera al anular o rechazar un booking con pagos registrados.
// El monto es la suma de los pagos; la gestión del reembolso es de un colaborador externo.
type RefundRequest struct {
	ID        string
	BookingID string
	Amount    decimal.Decimal
	Reason    string
	CreatedAt time.Time
}

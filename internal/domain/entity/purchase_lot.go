package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLot representa un lote de compra a un vendedor (registro append-only).
// Nunca se modifica después de insertado: el costo promedio se deriva siempre
// del historial completo de lotes, no de un acumulado.
type PurchaseLot struct {
	ID         string
	Number     string // número de orden de compra legible (PO/2026/000045)
	SecurityID string
	VendorID   string
	Quantity   int64           // > 0
	UnitPrice  decimal.Decimal // >= 0
	AcquiredAt time.Time
	CreatedAt  time.Time
	CreatedBy  string
}

// TotalCost devuelve quantity * unitPrice.
func (l *PurchaseLot) TotalCost() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
}

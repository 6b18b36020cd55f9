package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySnapshot es la proyección materializada del inventario por acción.
// No es fuente de verdad: siempre debe poder reconstruirse desde PurchaseLot + Booking.
// Toda mutación pasa por las operaciones atómicas del coordinador de reservas
// o por la reconstrucción del proyector; nunca por escritura directa.
type InventorySnapshot struct {
	SecurityID       string
	Acquired         int64 // suma de cantidades de lotes de compra
	Transferred      int64 // suma de cantidades de bookings transferidos
	Blocked          int64 // suma de cantidades de bookings que bloquean
	WeightedAvgPrice decimal.Decimal
	Version          int64 // guarda optimista para la reconstrucción
	UpdatedAt        time.Time
}

// Available devuelve la cantidad disponible: adquirida - transferida - bloqueada.
// Puede ser negativa si hay un bug de integridad; el proyector la reporta como
// violación de consistencia en vez de recortarla.
func (s *InventorySnapshot) Available() int64 {
	return s.Acquired - s.Transferred - s.Blocked
}

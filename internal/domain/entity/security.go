package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Security representa una acción no listada negociada por la corredora.
// Nunca se elimina mientras existan lotes o bookings que la referencien.
type Security struct {
	ID                string
	Symbol            string // código único (ej. "NSEIT")
	Name              string
	FaceValue         decimal.Decimal
	BlockedForTrading bool // bloqueada por IPO/RTA: rechaza bookings nuevos
	BlockedReason     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Tradable indica si la acción admite bookings nuevos.
func (s *Security) Tradable() bool {
	return !s.BlockedForTrading
}

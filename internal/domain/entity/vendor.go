package entity

import "time"

// Vendor representa un vendedor que suministra lotes de acciones.
type Vendor struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	PAN       string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active indica si el vendedor puede originar lotes de compra nuevos.
func (v *Vendor) Active() bool {
	return v.Status == PartyStatusActive
}

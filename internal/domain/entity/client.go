package entity

import "time"

// Estados del directorio de clientes/vendedores.
const (
	PartyStatusActive    = "active"
	PartyStatusSuspended = "suspended"
	PartyStatusInactive  = "inactive"
)

// Client representa un cliente comprador del directorio.
// La creación de bookings exige cliente aprobado, activo y no suspendido.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	PAN       string // identificación tributaria
	Approved  bool
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Eligible indica si el cliente puede abrir bookings nuevos.
func (c *Client) Eligible() bool {
	return c.Approved && c.Status == PartyStatusActive
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de aprobación interna (mesa).
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Estados de la puerta de aprobación de pérdida (solo bookings con precio de venta
// por debajo del costo promedio).
const (
	LossApprovalNotRequired = "NOT_REQUIRED"
	LossApprovalPending     = "PENDING"
	LossApprovalApproved    = "APPROVED"
	LossApprovalRejected    = "REJECTED"
)

// Estados de confirmación del cliente.
const (
	ConfirmationPending  = "PENDING"
	ConfirmationAccepted = "ACCEPTED"
	ConfirmationDenied   = "DENIED"
)

// Estados de pago derivados de la suma de pagos registrados.
const (
	PaymentPending  = "PENDING"
	PaymentPartial  = "PARTIAL"
	PaymentComplete = "COMPLETE"
)

// Booking representa una venta reservada de acciones a un cliente.
// Se crea en aprobación pendiente y solo muta a través de las transiciones
// del ciclo de vida; una vez transferido es inmutable y no puede borrarse.
type Booking struct {
	ID         string
	Number     string // número legible emitido por el generador de secuencias (PVT/2026/000123)
	ClientID   string
	SecurityID string
	Quantity   int64 // > 0

	CostPrice    decimal.Decimal // costo promedio al momento de aprobar, o override
	CostOverride *decimal.Decimal
	SalePrice    decimal.Decimal

	ApprovalStatus     string // PENDING | APPROVED | REJECTED
	IsLossBooking      bool   // SalePrice < CostPrice al aprobar
	LossApprovalStatus string // NOT_REQUIRED | PENDING | APPROVED | REJECTED
	Confirmation       string // PENDING | ACCEPTED | DENIED
	PaymentStatus      string // PENDING | PARTIAL | COMPLETE

	Voided     bool
	VoidReason string
	VoidedAt   *time.Time

	Transferred   bool
	TransferredAt *time.Time

	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
}

// SaleConsideration devuelve el valor total de la venta (cantidad * precio de venta).
func (b *Booking) SaleConsideration() decimal.Decimal {
	return decimal.NewFromInt(b.Quantity).Mul(b.SalePrice)
}

// Blocking indica si el booking mantiene cantidad bloqueada en inventario:
// aprobado, sin anular, sin transferir, sin rechazo de la puerta de pérdida
// y sin negación del cliente. Esta es la regla "la aprobación bloquea" del
// motor de reservas; todo estado terminal que liberó la reserva queda fuera.
func (b *Booking) Blocking() bool {
	return b.ApprovalStatus == ApprovalApproved &&
		!b.Voided && !b.Transferred &&
		b.LossApprovalStatus != LossApprovalRejected &&
		b.Confirmation != ConfirmationDenied
}

// Terminal indica si el booking alcanzó un estado final (no admite más transiciones).
func (b *Booking) Terminal() bool {
	return b.Transferred || b.Voided ||
		b.ApprovalStatus == ApprovalRejected ||
		b.LossApprovalStatus == LossApprovalRejected ||
		b.Confirmation == ConfirmationDenied
}

// ConfirmationAllowed indica si puede solicitarse/registrar la confirmación del cliente:
// requiere aprobación de mesa y, si es booking a pérdida, la puerta de pérdida aprobada.
func (b *Booking) ConfirmationAllowed() bool {
	if b.ApprovalStatus != ApprovalApproved || b.Terminal() {
		return false
	}
	if b.IsLossBooking && b.LossApprovalStatus != LossApprovalApproved {
		return false
	}
	return true
}

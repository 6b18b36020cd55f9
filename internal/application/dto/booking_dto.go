package dto

import "github.com/shopspring/decimal"

// CreateBookingRequest alta de un booking (queda en aprobación pendiente).
type CreateBookingRequest struct {
	ClientID     string           `json:"client_id"`
	SecurityID   string           `json:"security_id"`
	Quantity     int64            `json:"quantity"`
	SalePrice    decimal.Decimal  `json:"sale_price"`
	CostOverride *decimal.Decimal `json:"cost_override,omitempty"`
}

// VoidBookingRequest anulación con motivo obligatorio.
type VoidBookingRequest struct {
	Reason string `json:"reason"`
}

// ConfirmationRequest registra la respuesta del cliente: "accept" o "deny".
type ConfirmationRequest struct {
	Decision string `json:"decision"`
}

// LossApprovalRequest resuelve la puerta de pérdida: "approve" o "reject".
type LossApprovalRequest struct {
	Decision string `json:"decision"`
}

// AddPaymentRequest pago recibido contra un booking aceptado.
type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"` // RFC3339, opcional (default: ahora)
}

// BookingResponse representación HTTP de un booking.
type BookingResponse struct {
	ID                 string          `json:"id"`
	Number             string          `json:"number"`
	ClientID           string          `json:"client_id"`
	SecurityID         string          `json:"security_id"`
	Quantity           int64           `json:"quantity"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	SalePrice          decimal.Decimal `json:"sale_price"`
	ApprovalStatus     string          `json:"approval_status"`
	IsLossBooking      bool            `json:"is_loss_booking"`
	LossApprovalStatus string          `json:"loss_approval_status"`
	Confirmation       string          `json:"confirmation"`
	PaymentStatus      string          `json:"payment_status"`
	Voided             bool            `json:"voided"`
	VoidReason         string          `json:"void_reason,omitempty"`
	Transferred        bool            `json:"transferred"`
	TransferredAt      *string         `json:"transferred_at,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

package booking

import (
	"context"
	"time"
)

// Tipos de evento emitidos por el ciclo de vida y el coordinador de reservas.
// Los consumidores (notificaciones, auditoría) se suscriben vía el publisher;
// el motor nunca bloquea esperando la entrega.
const (
	EventBookingApproved         = "booking.approved"
	EventReservationInsufficient = "reservation.insufficient"
	EventBookingVoided           = "booking.voided"
	EventBookingTransferred      = "booking.transferred"
	EventRefundRequested         = "refund.requested"
)

// Event carga mínima de un evento de dominio para colaboradores externos.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	SecurityID string    `json:"security_id,omitempty"`
	Quantity   int64     `json:"quantity,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher puerto de publicación de eventos (RabbitMQ en producción,
// log o memoria en desarrollo y pruebas).
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

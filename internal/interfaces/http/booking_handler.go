package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kabidey/privity-sub000/internal/application/booking"
	"github.com/kabidey/privity-sub000/internal/application/dto"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// BookingHandler expone el ciclo de vida de bookings. Cada transición es un
// endpoint propio: el estado solo muta a través de las operaciones del motor.
type BookingHandler struct {
	lifecycle *booking.Lifecycle
}

// NewBookingHandler construye el handler.
func NewBookingHandler(lifecycle *booking.Lifecycle) *BookingHandler {
	return &BookingHandler{lifecycle: lifecycle}
}

// Create alta de booking en aprobación pendiente.
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.lifecycle.Create(c.Context(), booking.CreateInput{
		ClientID:     in.ClientID,
		SecurityID:   in.SecurityID,
		Quantity:     in.Quantity,
		SalePrice:    in.SalePrice,
		CostOverride: in.CostOverride,
		CreatedBy:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBookingResponse(b))
}

// GetByID devuelve un booking.
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.lifecycle.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// List devuelve bookings paginados.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	bookings, err := h.lifecycle.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return c.JSON(out)
}

// Approve ejecuta pending-approval → approved (reserva inventario).
func (h *BookingHandler) Approve(c *fiber.Ctx) error {
	b, err := h.lifecycle.Approve(c.Context(), c.Params("id"), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// Reject ejecuta pending-approval → rejected (terminal).
func (h *BookingHandler) Reject(c *fiber.Ctx) error {
	b, err := h.lifecycle.Reject(c.Context(), c.Params("id"), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// ResolveLossApproval resuelve la puerta de pérdida ("approve" / "reject").
func (h *BookingHandler) ResolveLossApproval(c *fiber.Ctx) error {
	var in dto.LossApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Decision != "approve" && in.Decision != "reject" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "decision debe ser approve o reject"})
	}
	b, err := h.lifecycle.ResolveLossApproval(c.Context(), c.Params("id"), in.Decision == "approve", GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// RecordConfirmation registra la respuesta del cliente ("accept" / "deny").
func (h *BookingHandler) RecordConfirmation(c *fiber.Ctx) error {
	var in dto.ConfirmationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Decision != "accept" && in.Decision != "deny" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "decision debe ser accept o deny"})
	}
	b, err := h.lifecycle.RecordConfirmation(c.Context(), c.Params("id"), in.Decision == "accept")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// AddPayment registra un pago contra un booking aceptado.
func (h *BookingHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.AddPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date := time.Now()
	if in.Date != "" {
		t, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser RFC3339"})
		}
		date = t
	}
	b, err := h.lifecycle.AddPayment(c.Context(), c.Params("id"), in.Amount, date, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// Void anula el booking (motivo obligatorio, terminal).
func (h *BookingHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.lifecycle.Void(c.Context(), c.Params("id"), in.Reason, GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// ConfirmTransfer ejecuta payment-complete → transferred (terminal exitoso).
func (h *BookingHandler) ConfirmTransfer(c *fiber.Ctx) error {
	b, err := h.lifecycle.ConfirmTransfer(c.Context(), c.Params("id"), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBookingResponse(b))
}

// Delete borra un booking solo si sigue en aprobación pendiente.
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	if err := h.lifecycle.Delete(c.Context(), c.Params("id"), GetRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toBookingResponse(b *entity.Booking) dto.BookingResponse {
	out := dto.BookingResponse{
		ID:                 b.ID,
		Number:             b.Number,
		ClientID:           b.ClientID,
		SecurityID:         b.SecurityID,
		Quantity:           b.Quantity,
		CostPrice:          b.CostPrice,
		SalePrice:          b.SalePrice,
		ApprovalStatus:     b.ApprovalStatus,
		IsLossBooking:      b.IsLossBooking,
		LossApprovalStatus: b.LossApprovalStatus,
		Confirmation:       b.Confirmation,
		PaymentStatus:      b.PaymentStatus,
		Voided:             b.Voided,
		VoidReason:         b.VoidReason,
		Transferred:        b.Transferred,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}
	if b.TransferredAt != nil {
		s := b.TransferredAt.Format(time.RFC3339)
		out.TransferredAt = &s
	}
	return out
}

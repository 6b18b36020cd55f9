package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kabidey/privity-sub000/internal/application/dto"
	"github.com/kabidey/privity-sub000/internal/application/usecase"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// SecurityHandler maneja el catálogo de acciones.
type SecurityHandler struct {
	uc *usecase.SecurityUseCase
}

// NewSecurityHandler construye el handler.
func NewSecurityHandler(uc *usecase.SecurityUseCase) *SecurityHandler {
	return &SecurityHandler{uc: uc}
}

// Create da de alta una acción.
func (h *SecurityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSecurityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sec, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSecurityResponse(sec))
}

// GetByID devuelve una acción.
func (h *SecurityHandler) GetByID(c *fiber.Ctx) error {
	sec, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSecurityResponse(sec))
}

// List devuelve acciones paginadas.
func (h *SecurityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	secs, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SecurityResponse, 0, len(secs))
	for _, s := range secs {
		out = append(out, toSecurityResponse(s))
	}
	return c.JSON(out)
}

// Update aplica ediciones administrativas, incluido el bloqueo por IPO/RTA.
func (h *SecurityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSecurityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sec, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSecurityResponse(sec))
}

func toSecurityResponse(s *entity.Security) dto.SecurityResponse {
	return dto.SecurityResponse{
		ID:                s.ID,
		Symbol:            s.Symbol,
		Name:              s.Name,
		FaceValue:         s.FaceValue,
		BlockedForTrading: s.BlockedForTrading,
		BlockedReason:     s.BlockedReason,
	}
}

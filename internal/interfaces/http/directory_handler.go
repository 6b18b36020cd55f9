package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kabidey/privity-sub000/internal/application/dto"
	"github.com/kabidey/privity-sub000/internal/application/usecase"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// DirectoryHandler maneja el directorio de clientes y vendedores.
type DirectoryHandler struct {
	uc *usecase.DirectoryUseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *usecase.DirectoryUseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// CreateClient da de alta un cliente.
func (h *DirectoryHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.CreateClient(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toClientResponse(client))
}

// ListClients devuelve clientes paginados.
func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	clients, err := h.uc.ListClients(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResponse(cl))
	}
	return c.JSON(out)
}

// CreateVendor da de alta un vendedor.
func (h *DirectoryHandler) CreateVendor(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	vendor, err := h.uc.CreateVendor(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVendorResponse(vendor))
}

// ListVendors devuelve vendedores paginados.
func (h *DirectoryHandler) ListVendors(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	vendors, err := h.uc.ListVendors(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, toVendorResponse(v))
	}
	return c.JSON(out)
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		PAN:      c.PAN,
		Approved: c.Approved,
		Status:   c.Status,
	}
}

func toVendorResponse(v *entity.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		ID:     v.ID,
		Name:   v.Name,
		Email:  v.Email,
		Phone:  v.Phone,
		PAN:    v.PAN,
		Status: v.Status,
	}
}

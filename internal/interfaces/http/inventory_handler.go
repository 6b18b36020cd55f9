package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kabidey/privity-sub000/internal/application/dto"
	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// InventoryHandler maneja lotes de compra y snapshots de inventario.
type InventoryHandler struct {
	ledger    *inventory.Ledger
	projector *inventory.Projector
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, projector *inventory.Projector) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, projector: projector}
}

// CreateLot registra un lote de compra en el libro append-only.
func (h *InventoryHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var acquiredAt time.Time
	if in.AcquiredAt != "" {
		t, err := time.Parse(time.RFC3339, in.AcquiredAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "acquired_at debe ser RFC3339"})
		}
		acquiredAt = t
	}
	lot, err := h.ledger.RegisterLot(c.Context(), inventory.RegisterLotInput{
		SecurityID: in.SecurityID,
		VendorID:   in.VendorID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		AcquiredAt: acquiredAt,
		CreatedBy:  GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLotResponse(lot))
}

// ListLots devuelve los lotes de una acción.
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	lots, err := h.ledger.ListBySecurity(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, toLotResponse(l))
	}
	return c.JSON(out)
}

// GetSnapshot devuelve la proyección de inventario de una acción.
// Available negativo se recorta a cero solo en la respuesta.
func (h *InventoryHandler) GetSnapshot(c *fiber.Ctx) error {
	snap, err := h.projector.Snapshot(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	available := snap.Available()
	if available < 0 {
		available = 0
	}
	return c.JSON(dto.SnapshotResponse{
		SecurityID:       snap.SecurityID,
		Available:        available,
		Blocked:          snap.Blocked,
		Transferred:      snap.Transferred,
		Acquired:         snap.Acquired,
		WeightedAvgPrice: snap.WeightedAvgPrice,
	})
}

// RebuildSnapshot fuerza la reconstrucción de la proyección desde las fuentes de verdad.
func (h *InventoryHandler) RebuildSnapshot(c *fiber.Ctx) error {
	snap, err := h.projector.Rebuild(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	available := snap.Available()
	if available < 0 {
		available = 0
	}
	return c.JSON(dto.SnapshotResponse{
		SecurityID:       snap.SecurityID,
		Available:        available,
		Blocked:          snap.Blocked,
		Transferred:      snap.Transferred,
		Acquired:         snap.Acquired,
		WeightedAvgPrice: snap.WeightedAvgPrice,
	})
}

func toLotResponse(l *entity.PurchaseLot) dto.LotResponse {
	return dto.LotResponse{
		ID:         l.ID,
		Number:     l.Number,
		SecurityID: l.SecurityID,
		VendorID:   l.VendorID,
		Quantity:   l.Quantity,
		UnitPrice:  l.UnitPrice,
		AcquiredAt: l.AcquiredAt.Format(time.RFC3339),
	}
}

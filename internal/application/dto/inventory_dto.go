package dto

import "github.com/shopspring/decimal"

// SnapshotResponse proyección de inventario por acción.
// Available se recorta a cero solo para presentación; un valor negativo interno
// se reporta como violación de consistencia, no se muestra.
type SnapshotResponse struct {
	SecurityID       string          `json:"security_id"`
	Available        int64           `json:"available"`
	Blocked          int64           `json:"blocked"`
	Transferred      int64           `json:"transferred"`
	Acquired         int64           `json:"acquired"`
	WeightedAvgPrice decimal.Decimal `json:"weighted_avg_price"`
}

// CreateLotRequest alta de un lote de compra (append-only).
type CreateLotRequest struct {
	SecurityID string          `json:"security_id"`
	VendorID   string          `json:"vendor_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	AcquiredAt string          `json:"acquired_at"` // RFC3339, opcional (default: ahora)
}

// LotResponse lote de compra persistido.
type LotResponse struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	SecurityID string          `json:"security_id"`
	VendorID   string          `json:"vendor_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	AcquiredAt string          `json:"acquired_at"`
}

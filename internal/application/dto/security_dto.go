package dto

import "github.com/shopspring/decimal"

// CreateSecurityRequest alta de una acción en el catálogo.
type CreateSecurityRequest struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	FaceValue decimal.Decimal `json:"face_value"`
}

// UpdateSecurityRequest edición administrativa (incluye bloqueo por IPO/RTA).
type UpdateSecurityRequest struct {
	Name              *string          `json:"name,omitempty"`
	FaceValue         *decimal.Decimal `json:"face_value,omitempty"`
	BlockedForTrading *bool            `json:"blocked_for_trading,omitempty"`
	BlockedReason     *string          `json:"blocked_reason,omitempty"`
}

// SecurityResponse acción del catálogo.
type SecurityResponse struct {
	ID                string          `json:"id"`
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	FaceValue         decimal.Decimal `json:"face_value"`
	BlockedForTrading bool            `json:"blocked_for_trading"`
	BlockedReason     string          `json:"blocked_reason,omitempty"`
}

package booking

import "github.com/kabidey/privity-sub000/internal/domain/entity"

// Capabilities abstrae las verificaciones de permisos del ciclo de vida,
// en lugar de condicionales de rol dispersos por los endpoints. Permite probar
// el ciclo de vida con cualquier enumeración de roles.
type Capabilities interface {
	CanApprove(role string) bool
	CanVoid(role string) bool
	CanTransfer(role string) bool
	CanApproveLoss(role string) bool
}

// RoleCapabilities implementación por mapa de roles del back-office.
type RoleCapabilities struct {
	approve  map[string]bool
	void     map[string]bool
	transfer map[string]bool
	loss     map[string]bool
}

// DefaultCapabilities reglas de la corredora: admin hace todo; dealer aprueba y
// anula; ops ejecuta transferencias; la puerta de pérdida es solo de admin.
func DefaultCapabilities() *RoleCapabilities {
	return &RoleCapabilities{
		approve:  map[string]bool{entity.RoleAdmin: true, entity.RoleDealer: true},
		void:     map[string]bool{entity.RoleAdmin: true, entity.RoleDealer: true},
		transfer: map[string]bool{entity.RoleAdmin: true, entity.RoleOps: true},
		loss:     map[string]bool{entity.RoleAdmin: true},
	}
}

func (c *RoleCapabilities) CanApprove(role string) bool     { return c.approve[role] }
func (c *RoleCapabilities) CanVoid(role string) bool        { return c.void[role] }
func (c *RoleCapabilities) CanTransfer(role string) bool    { return c.transfer[role] }
func (c *RoleCapabilities) CanApproveLoss(role string) bool { return c.loss[role] }

package entity

import "time"

// Roles válidos para User (back-office).
const (
	RoleAdmin  = "admin"
	RoleDealer = "dealer"
	RoleOps    = "ops"
)

// User representa un usuario interno del back-office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, dealer, ops
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

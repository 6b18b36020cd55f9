package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")

	// Inventario y reservas.
	ErrInsufficientInventory  = errors.New("inventario insuficiente para la cantidad solicitada")
	ErrConcurrentModification = errors.New("conflicto de concurrencia, reintentar la operación")
	ErrConsistencyViolation   = errors.New("violación de consistencia del inventario")
	ErrSecurityBlocked        = errors.New("la acción está bloqueada para negociación")

	// Ciclo de vida del booking.
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrAlreadyProcessed   = errors.New("el booking ya fue procesado")
	ErrAlreadyVoided      = errors.New("el booking ya fue anulado")
	ErrAlreadyTransferred = errors.New("el booking ya fue transferido")
	ErrNotPaymentComplete = errors.New("el pago del booking no está completo")
	ErrClientIneligible   = errors.New("el cliente no está aprobado o está suspendido")
	ErrVendorIneligible   = errors.New("el vendedor no está activo")
)

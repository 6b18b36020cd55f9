package entity

import "time"

// Counter es el registro de secuencia por clave lógica (ej. "booking-2026", "po-2026").
// Solo muta vía incremento atómico increment-and-return; nunca read-then-write.
type Counter struct {
	Key       string
	Value     int64
	UpdatedAt time.Time
}

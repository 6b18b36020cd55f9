package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

// Claves lógicas de secuencia. Una por año calendario: la unicidad es por clave,
// independiente entre claves.
const (
	KeyBooking       = "booking"
	KeyPurchaseOrder = "po"
)

// Generator emite enteros estrictamente crecientes y únicos por clave de secuencia.
// Tolera huecos (un incremento confirmado cuyo caller falla después deja un hueco),
// pero nunca duplica: el incremento es atómico en el store. El formateo a número
// legible es un paso de presentación fuera de la operación atómica.
type Generator struct {
	counters repository.CounterRepository
}

// NewGenerator construye el generador.
func NewGenerator(counters repository.CounterRepository) *Generator {
	return &Generator{counters: counters}
}

// Next devuelve el siguiente valor de la secuencia key-año (ej. "booking-2026").
func (g *Generator) Next(ctx context.Context, key string, at time.Time) (int64, error) {
	n, err := g.counters.Increment(ctx, yearKey(key, at))
	if err != nil {
		return 0, fmt.Errorf("increment sequence %s: %w", key, err)
	}
	return n, nil
}

// NextBookingNumber emite el siguiente número legible de booking (PVT/2026/000123).
func (g *Generator) NextBookingNumber(ctx context.Context, at time.Time) (string, error) {
	n, err := g.Next(ctx, KeyBooking, at)
	if err != nil {
		return "", err
	}
	return FormatBookingNumber(at.Year(), n), nil
}

// NextPurchaseOrderNumber emite el siguiente número legible de orden de compra (PO/2026/000045).
func (g *Generator) NextPurchaseOrderNumber(ctx context.Context, at time.Time) (string, error) {
	n, err := g.Next(ctx, KeyPurchaseOrder, at)
	if err != nil {
		return "", err
	}
	return FormatPurchaseOrderNumber(at.Year(), n), nil
}

// FormatBookingNumber da formato de presentación al consecutivo de booking.
func FormatBookingNumber(year int, n int64) string {
	return fmt.Sprintf("PVT/%d/%06d", year, n)
}

// FormatPurchaseOrderNumber da formato de presentación al consecutivo de orden de compra.
func FormatPurchaseOrderNumber(year int, n int64) string {
	return fmt.Sprintf("PO/%d/%06d", year, n)
}

func yearKey(key string, at time.Time) string {
	return fmt.Sprintf("%s-%d", key, at.Year())
}

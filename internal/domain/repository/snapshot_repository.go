package repository

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// SnapshotRepository define el puerto de la proyección materializada de inventario.
// Las operaciones TryReserve/Release/CommitTransfer son updates condicionales
// atómicos en el store: el chequeo y la mutación ocurren en una sola sentencia,
// eliminando la ventana read-then-write bajo concurrencia.
type SnapshotRepository interface {
	Get(ctx context.Context, securityID string) (*entity.InventorySnapshot, error)
	// GetForUpdate bloquea la fila del snapshot dentro de una tx (reconstrucción del proyector).
	GetForUpdate(ctx context.Context, securityID string) (*entity.InventorySnapshot, error)
	Upsert(ctx context.Context, snap *entity.InventorySnapshot) error

	// TryReserve incrementa blocked en qty solo si available >= qty.
	// Devuelve false (sin error) cuando la cantidad disponible no alcanza.
	TryReserve(ctx context.Context, securityID string, qty int64) (bool, error)
	// Release decrementa blocked en qty solo si blocked >= qty.
	// false indica un release sin reserva correspondiente (violación de consistencia).
	Release(ctx context.Context, securityID string, qty int64) (bool, error)
	// CommitTransfer mueve qty de blocked a transferred solo si blocked >= qty.
	CommitTransfer(ctx context.Context, securityID string, qty int64) (bool, error)
}

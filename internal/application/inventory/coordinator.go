package inventory

import (
	"context"
	"errors"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
	"github.com/kabidey/privity-sub000/pkg/logger"
)

// maxReserveRetries reintentos locales ante conflicto de concurrencia antes de
// reportar la falla como transitoria.
const maxReserveRetries = 3

// Coordinator es la única autoridad de admisión contra inventario finito.
// El chequeo "available >= qty" y la reserva son una sola sentencia condicional
// atómica en el store, de modo que dos reservas concurrentes por la misma acción
// jamás pueden exceder juntas lo disponible. Construirlo sobre los repositorios
// atados a una tx hace la reserva atómica con el resto de la transición.
type Coordinator struct {
	snapshots repository.SnapshotRepository
	log       *logger.Logger
}

// NewCoordinator construye el coordinador sobre un SnapshotRepository
// (pool para operaciones sueltas, tx para transiciones del ciclo de vida).
func NewCoordinator(snapshots repository.SnapshotRepository, log *logger.Logger) *Coordinator {
	return &Coordinator{snapshots: snapshots, log: log.Component("coordinator")}
}

// Reserve bloquea qty unidades de la acción si hay disponibilidad.
// Devuelve ErrInsufficientInventory cuando la cantidad disponible no alcanza y
// ErrConcurrentModification si se agotan los reintentos por contención.
func (c *Coordinator) Reserve(ctx context.Context, securityID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	ok, err := c.withRetry(ctx, func() (bool, error) {
		return c.snapshots.TryReserve(ctx, securityID, qty)
	})
	if err != nil {
		return err
	}
	if !ok {
		c.log.Info().
			Str("security_id", securityID).
			Int64("quantity", qty).
			Msg("reserva rechazada: inventario insuficiente")
		return domain.ErrInsufficientInventory
	}
	return nil
}

// Release devuelve qty unidades bloqueadas al disponible (anulación o rechazo).
// Un release sin reserva correspondiente es una violación de consistencia:
// se reporta, nunca se corrige en silencio.
func (c *Coordinator) Release(ctx context.Context, securityID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	ok, err := c.withRetry(ctx, func() (bool, error) {
		return c.snapshots.Release(ctx, securityID, qty)
	})
	if err != nil {
		return err
	}
	if !ok {
		c.log.Error().
			Str("event", "consistency_violation").
			Str("security_id", securityID).
			Int64("quantity", qty).
			Msg("release sin cantidad bloqueada suficiente")
		return domain.ErrConsistencyViolation
	}
	return nil
}

// Commit convierte qty unidades bloqueadas en transferidas de forma permanente
// (liquidación). No pasa por Release: el movimiento blocked→transferred es una
// sola sentencia atómica.
func (c *Coordinator) Commit(ctx context.Context, securityID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	ok, err := c.withRetry(ctx, func() (bool, error) {
		return c.snapshots.CommitTransfer(ctx, securityID, qty)
	})
	if err != nil {
		return err
	}
	if !ok {
		c.log.Error().
			Str("event", "consistency_violation").
			Str("security_id", securityID).
			Int64("quantity", qty).
			Msg("commit de transferencia sin cantidad bloqueada suficiente")
		return domain.ErrConsistencyViolation
	}
	return nil
}

// withRetry reintenta la operación ante ErrConcurrentModification hasta
// maxReserveRetries veces; después la reporta como falla transitoria.
func (c *Coordinator) withRetry(ctx context.Context, op func() (bool, error)) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < maxReserveRetries; attempt++ {
		ok, err := op()
		if err == nil {
			return ok, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return false, err
		}
		lastErr = err
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
	}
	return false, lastErr
}

package inventory

import (
	"context"
	"time"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	domaininv "github.com/kabidey/privity-sub000/internal/domain/inventory"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
	"github.com/kabidey/privity-sub000/pkg/logger"
)

// Projector deriva el snapshot de inventario por acción desde el libro de compras
// y los bookings activos. El snapshot es una vista materializada reconstruible;
// el promedio ponderado se recalcula siempre desde el historial completo de lotes.
type Projector struct {
	lots      repository.PurchaseLotRepository
	bookings  repository.BookingRepository
	snapshots repository.SnapshotRepository
	txRunner  TxRunner
	cache     SnapshotCache // opcional, nil = sin cache
	log       *logger.Logger
}

// NewProjector construye el proyector. cache puede ser nil.
func NewProjector(
	lots repository.PurchaseLotRepository,
	bookings repository.BookingRepository,
	snapshots repository.SnapshotRepository,
	txRunner TxRunner,
	cache SnapshotCache,
	log *logger.Logger,
) *Projector {
	return &Projector{
		lots:      lots,
		bookings:  bookings,
		snapshots: snapshots,
		txRunner:  txRunner,
		cache:     cache,
		log:       log.Component("projector"),
	}
}

// Snapshot devuelve la proyección de la acción: cache → fila materializada → reconstrucción.
// Una cantidad disponible negativa se reporta como violación de consistencia en el log
// (no se recorta en la proyección almacenada); el recorte a cero es solo de presentación.
func (p *Projector) Snapshot(ctx context.Context, securityID string) (*entity.InventorySnapshot, error) {
	if p.cache != nil {
		if snap, ok, err := p.cache.Get(ctx, securityID); err == nil && ok {
			return snap, nil
		}
	}

	snap, err := p.snapshots.Get(ctx, securityID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		snap, err = p.Rebuild(ctx, securityID)
		if err != nil {
			return nil, err
		}
	}

	p.checkConsistency(snap)

	if p.cache != nil {
		if err := p.cache.Set(ctx, snap); err != nil {
			p.log.Warn().Err(err).Str("security_id", securityID).Msg("no se pudo cachear snapshot")
		}
	}
	return snap, nil
}

// Rebuild recalcula la proyección desde las fuentes de verdad dentro de una transacción:
// bloquea la fila del snapshot, agrega lotes y bookings en la misma tx y persiste.
// El bloqueo de fila evita que una reconstrucción pise una reserva concurrente.
func (p *Projector) Rebuild(ctx context.Context, securityID string) (*entity.InventorySnapshot, error) {
	var rebuilt *entity.InventorySnapshot
	err := p.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		snapshotRepo repository.SnapshotRepository,
		lotRepo repository.PurchaseLotRepository,
		_ repository.PaymentRepository,
		_ repository.RefundRequestRepository,
	) error {
		current, err := snapshotRepo.GetForUpdate(ctx, securityID)
		if err != nil {
			return err
		}

		acquired, totalCost, err := lotRepo.TotalsBySecurity(ctx, securityID)
		if err != nil {
			return err
		}
		blocked, err := bookingRepo.BlockedQuantity(ctx, securityID)
		if err != nil {
			return err
		}
		transferred, err := bookingRepo.TransferredQuantity(ctx, securityID)
		if err != nil {
			return err
		}

		snap := &entity.InventorySnapshot{
			SecurityID:       securityID,
			Acquired:         acquired,
			Transferred:      transferred,
			Blocked:          blocked,
			WeightedAvgPrice: domaininv.WeightedAveragePrice(acquired, totalCost),
			UpdatedAt:        time.Now(),
		}
		if current != nil {
			snap.Version = current.Version + 1
		} else {
			snap.Version = 1
		}
		if err := snapshotRepo.Upsert(ctx, snap); err != nil {
			return err
		}
		rebuilt = snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.checkConsistency(rebuilt)
	p.invalidate(ctx, securityID)
	return rebuilt, nil
}

// Invalidate descarta la entrada de cache de la acción. Se invoca tras insertar
// lotes o cambiar flags de bookings (aprobación, anulación, transferencia).
func (p *Projector) Invalidate(ctx context.Context, securityID string) {
	p.invalidate(ctx, securityID)
}

func (p *Projector) invalidate(ctx context.Context, securityID string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Invalidate(ctx, securityID); err != nil {
		p.log.Warn().Err(err).Str("security_id", securityID).Msg("no se pudo invalidar cache de snapshot")
	}
}

// checkConsistency registra una violación de consistencia si la proyección quedó
// negativa. No se autocorrige: ocultarla podría enmascarar una sobreventa real.
func (p *Projector) checkConsistency(snap *entity.InventorySnapshot) {
	if snap == nil {
		return
	}
	if snap.Available() < 0 || snap.Blocked < 0 {
		p.log.Error().
			Str("event", "consistency_violation").
			Str("security_id", snap.SecurityID).
			Int64("acquired", snap.Acquired).
			Int64("transferred", snap.Transferred).
			Int64("blocked", snap.Blocked).
			Msg("proyección de inventario negativa: requiere reconciliación manual")
	}
}

// VerifyConservation valida la identidad contable adquirido == transferido + bloqueado + disponible
// contra las fuentes de verdad. Devuelve ErrConsistencyViolation si la proyección
// almacenada difiere de la recalculada.
func (p *Projector) VerifyConservation(ctx context.Context, securityID string) error {
	stored, err := p.snapshots.Get(ctx, securityID)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}
	acquired, _, err := p.lots.TotalsBySecurity(ctx, securityID)
	if err != nil {
		return err
	}
	blocked, err := p.bookings.BlockedQuantity(ctx, securityID)
	if err != nil {
		return err
	}
	transferred, err := p.bookings.TransferredQuantity(ctx, securityID)
	if err != nil {
		return err
	}
	if stored.Acquired != acquired || stored.Blocked != blocked || stored.Transferred != transferred {
		p.log.Error().
			Str("event", "consistency_violation").
			Str("security_id", securityID).
			Int64("stored_blocked", stored.Blocked).
			Int64("derived_blocked", blocked).
			Msg("snapshot almacenado difiere de las fuentes de verdad")
		return domain.ErrConsistencyViolation
	}
	return nil
}

package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/application/sequence"
	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
	"github.com/kabidey/privity-sub000/pkg/logger"
)

// Lifecycle gobierna la máquina de estados del booking: creación, aprobación,
// puerta de pérdida, confirmación del cliente, pagos, anulación y transferencia.
// Las transiciones que mutan inventario corren dentro de una transacción junto
// con la operación atómica del coordinador: o se confirman juntas o ninguna.
type Lifecycle struct {
	txRunner   inventory.TxRunner
	securities repository.SecurityRepository
	clients    repository.ClientRepository
	bookings   repository.BookingRepository
	payments   repository.PaymentRepository
	seq        *sequence.Generator
	projector  *inventory.Projector
	caps       Capabilities
	events     EventPublisher
	log        *logger.Logger
}

// NewLifecycle construye el ciclo de vida. events puede ser nil (sin publicación).
func NewLifecycle(
	txRunner inventory.TxRunner,
	securities repository.SecurityRepository,
	clients repository.ClientRepository,
	bookings repository.BookingRepository,
	payments repository.PaymentRepository,
	seq *sequence.Generator,
	projector *inventory.Projector,
	caps Capabilities,
	events EventPublisher,
	log *logger.Logger,
) *Lifecycle {
	return &Lifecycle{
		txRunner:   txRunner,
		securities: securities,
		clients:    clients,
		bookings:   bookings,
		payments:   payments,
		seq:        seq,
		projector:  projector,
		caps:       caps,
		events:     events,
		log:        log.Component("lifecycle"),
	}
}

// CreateInput entrada para crear un booking.
type CreateInput struct {
	ClientID     string
	SecurityID   string
	Quantity     int64
	SalePrice    decimal.Decimal
	CostOverride *decimal.Decimal
	CreatedBy    string
}

// Create valida elegibilidad del cliente y negociabilidad de la acción, emite el
// número de booking y persiste en aprobación pendiente. No reserva inventario:
// la admisión real ocurre al aprobar. El chequeo de disponibilidad aquí es
// consultivo, para rechazar temprano pedidos imposibles.
// Si la persistencia falla después de emitir el número, queda un hueco en la
// secuencia (permitido); nunca queda una reserva sin booking.
func (l *Lifecycle) Create(ctx context.Context, in CreateInput) (*entity.Booking, error) {
	if in.Quantity <= 0 || in.SalePrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	client, err := l.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if !client.Eligible() {
		return nil, domain.ErrClientIneligible
	}

	sec, err := l.securities.GetByID(ctx, in.SecurityID)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, domain.ErrNotFound
	}
	if !sec.Tradable() {
		return nil, domain.ErrSecurityBlocked
	}

	snap, err := l.projector.Snapshot(ctx, in.SecurityID)
	if err != nil {
		return nil, err
	}
	available := snap.Available()
	if available < 0 {
		available = 0
	}
	if in.Quantity > available {
		return nil, domain.ErrInsufficientInventory
	}

	now := time.Now()
	number, err := l.seq.NextBookingNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	b := &entity.Booking{
		ID:                 uuid.New().String(),
		Number:             number,
		ClientID:           in.ClientID,
		SecurityID:         in.SecurityID,
		Quantity:           in.Quantity,
		SalePrice:          in.SalePrice,
		CostOverride:       in.CostOverride,
		ApprovalStatus:     entity.ApprovalPending,
		LossApprovalStatus: entity.LossApprovalNotRequired,
		Confirmation:       entity.ConfirmationPending,
		PaymentStatus:      entity.PaymentPending,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          in.CreatedBy,
	}
	if err := l.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Approve ejecuta pending-approval → approved. Dentro de la transacción bloquea
// la fila del booking, reserva atómicamente contra el snapshot y fija el costo
// promedio del momento (o el override). Si la reserva falla el booking permanece
// en aprobación pendiente.
func (l *Lifecycle) Approve(ctx context.Context, bookingID, role string) (*entity.Booking, error) {
	if !l.caps.CanApprove(role) {
		return nil, domain.ErrForbidden
	}

	var approved *entity.Booking
	var insufficient *entity.Booking
	err := l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		snapshotRepo repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		_ repository.PaymentRepository,
		_ repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.Voided {
			return domain.ErrAlreadyVoided
		}
		if b.ApprovalStatus != entity.ApprovalPending {
			return domain.ErrAlreadyProcessed
		}

		coord := inventory.NewCoordinator(snapshotRepo, l.log)
		if err := coord.Reserve(ctx, b.SecurityID, b.Quantity); err != nil {
			if err == domain.ErrInsufficientInventory {
				insufficient = b
			}
			return err
		}

		snap, err := snapshotRepo.Get(ctx, b.SecurityID)
		if err != nil {
			return err
		}
		if snap == nil {
			return domain.ErrConsistencyViolation
		}

		now := time.Now()
		b.CostPrice = snap.WeightedAvgPrice
		if b.CostOverride != nil {
			b.CostPrice = *b.CostOverride
		}
		b.IsLossBooking = b.SalePrice.LessThan(b.CostPrice)
		if b.IsLossBooking {
			b.LossApprovalStatus = entity.LossApprovalPending
		} else {
			b.LossApprovalStatus = entity.LossApprovalNotRequired
		}
		b.ApprovalStatus = entity.ApprovalApproved
		b.ApprovedAt = &now
		b.UpdatedAt = now
		if err := bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		approved = b
		return nil
	})
	if err != nil {
		if insufficient != nil {
			l.publish(ctx, Event{
				Type:       EventReservationInsufficient,
				BookingID:  insufficient.ID,
				SecurityID: insufficient.SecurityID,
				Quantity:   insufficient.Quantity,
				OccurredAt: time.Now(),
			})
		}
		return nil, err
	}

	l.projector.Invalidate(ctx, approved.SecurityID)
	l.publish(ctx, Event{
		Type:       EventBookingApproved,
		BookingID:  approved.ID,
		SecurityID: approved.SecurityID,
		Quantity:   approved.Quantity,
		OccurredAt: time.Now(),
	})
	return approved, nil
}

// Reject ejecuta pending-approval → rejected (terminal). No existe reserva aún,
// así que no hay nada que liberar.
func (l *Lifecycle) Reject(ctx context.Context, bookingID, role string) (*entity.Booking, error) {
	if !l.caps.CanApprove(role) {
		return nil, domain.ErrForbidden
	}
	var rejected *entity.Booking
	err := l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		_ repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		_ repository.PaymentRepository,
		_ repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.Voided {
			return domain.ErrAlreadyVoided
		}
		if b.ApprovalStatus != entity.ApprovalPending {
			return domain.ErrAlreadyProcessed
		}
		b.ApprovalStatus = entity.ApprovalRejected
		b.UpdatedAt = time.Now()
		if err := bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		rejected = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// ResolveLossApproval resuelve la puerta de pérdida de un booking aprobado cuyo
// precio de venta quedó por debajo del costo. El rechazo equivale a un rechazo
// del booking: libera la reserva y deja el estado terminal.
func (l *Lifecycle) ResolveLossApproval(ctx context.Context, bookingID string, approve bool, role string) (*entity.Booking, error) {
	if !l.caps.CanApproveLoss(role) {
		return nil, domain.ErrForbidden
	}
	var resolved *entity.Booking
	err := l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		snapshotRepo repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		paymentRepo repository.PaymentRepository,
		refundRepo repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.Voided {
			return domain.ErrAlreadyVoided
		}
		if !b.IsLossBooking || b.LossApprovalStatus != entity.LossApprovalPending {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		if approve {
			b.LossApprovalStatus = entity.LossApprovalApproved
		} else {
			b.LossApprovalStatus = entity.LossApprovalRejected
			coord := inventory.NewCoordinator(snapshotRepo, l.log)
			if err := coord.Release(ctx, b.SecurityID, b.Quantity); err != nil {
				return err
			}
			if err := l.refundIfPaid(ctx, b, "rechazo de aprobación de pérdida", paymentRepo, refundRepo); err != nil {
				return err
			}
		}
		b.UpdatedAt = now
		if err := bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		resolved = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	if resolved.LossApprovalStatus == entity.LossApprovalRejected {
		l.projector.Invalidate(ctx, resolved.SecurityID)
	}
	return resolved, nil
}

// RecordConfirmation registra la respuesta del cliente (accept/deny). Solo
// procede con la aprobación de mesa dada y, si es booking a pérdida, con la
// puerta de pérdida aprobada. La negación es terminal y libera la reserva.
func (l *Lifecycle) RecordConfirmation(ctx context.Context, bookingID string, accept bool) (*entity.Booking, error) {
	var confirmed *entity.Booking
	err := l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		snapshotRepo repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		paymentRepo repository.PaymentRepository,
		refundRepo repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.Voided {
			return domain.ErrAlreadyVoided
		}
		if !b.ConfirmationAllowed() || b.Confirmation != entity.ConfirmationPending {
			return domain.ErrInvalidTransition
		}

		if accept {
			b.Confirmation = entity.ConfirmationAccepted
		} else {
			b.Confirmation = entity.ConfirmationDenied
			coord := inventory.NewCoordinator(snapshotRepo, l.log)
			if err := coord.Release(ctx, b.SecurityID, b.Quantity); err != nil {
				return err
			}
			if err := l.refundIfPaid(ctx, b, "cliente negó la confirmación", paymentRepo, refundRepo); err != nil {
				return err
			}
		}
		b.UpdatedAt = time.Now()
		if err := bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		confirmed = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	if confirmed.Confirmation == entity.ConfirmationDenied {
		l.projector.Invalidate(ctx, confirmed.SecurityID)
	}
	return confirmed, nil
}

// AddPayment registra un pago contra un booking aceptado y deriva el estado de
// pago (pending/partial/complete) de la suma de pagos vs. el valor de la venta.
func (l *Lifecycle) AddPayment(ctx context.Context, bookingID string, amount decimal.Decimal, date time.Time, actorID string) (*entity.Booking, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Booking
	err := l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		_ repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.Voided {
			return domain.ErrAlreadyVoided
		}
		if b.Confirmation != entity.ConfirmationAccepted {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		p := &entity.Payment{
			ID:        uuid.New().String(),
			BookingID: b.ID,
			Amount:    amount,
			Date:      date,
			CreatedAt: now,
			CreatedBy: actorID,
		}
		if err := paymentRepo.Create(ctx, p); err != nil {
			return err
		}
		paid, err := paymentRepo.SumByBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		b.PaymentStatus = derivePaymentStatus(paid, b.SaleConsideration())
		b.UpdatedAt = now
		if err := bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Void ejecuta approved|pending → voided (terminal). Libera la reserva si el
// booking bloqueaba inventario y genera solicitud de reembolso si hay pagos.
// Un booking transferido jamás se anula.
func (l *Lifecycle) Void(ctx context.Context, bookingID, reason, role string) (*entity.Booking, error) {
	if !l.caps.CanVoid(role) {
		return nil, domain.ErrForbidden
	}
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var voided *entity.Booking
	var refunded *entity.RefundRequest
	err := l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		snapshotRepo repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		paymentRepo repository.PaymentRepository,
		refundRepo repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.Voided {
			return domain.ErrAlreadyVoided
		}
		if b.ApprovalStatus == entity.ApprovalRejected ||
			b.LossApprovalStatus == entity.LossApprovalRejected ||
			b.Confirmation == entity.ConfirmationDenied {
			return domain.ErrInvalidTransition
		}

		if b.Blocking() {
			coord := inventory.NewCoordinator(snapshotRepo, l.log)
			if err := coord.Release(ctx, b.SecurityID, b.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		paid, err := paymentRepo.SumByBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		if paid.GreaterThan(decimal.Zero) {
			r := &entity.RefundRequest{
				ID:        uuid.New().String(),
				BookingID: b.ID,
				Amount:    paid,
				Reason:    reason,
				CreatedAt: now,
			}
			if err := refundRepo.Create(ctx, r); err != nil {
				return err
			}
			refunded = r
		}

		b.Voided = true
		b.VoidReason = reason
		b.VoidedAt = &now
		b.UpdatedAt = now
		if err := bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		voided = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.projector.Invalidate(ctx, voided.SecurityID)
	l.publish(ctx, Event{
		Type:       EventBookingVoided,
		BookingID:  voided.ID,
		SecurityID: voided.SecurityID,
		Quantity:   voided.Quantity,
		Detail:     reason,
		OccurredAt: time.Now(),
	})
	if refunded != nil {
		l.publish(ctx, Event{
			Type:       EventRefundRequested,
			BookingID:  voided.ID,
			Detail:     refunded.Amount.String(),
			OccurredAt: time.Now(),
		})
	}
	return voided, nil
}

// ConfirmTransfer ejecuta payment-complete → transferred (terminal exitoso).
// Es un commit: no libera la reserva sino que la convierte permanentemente en
// cantidad transferida, en una sola sentencia atómica.
func (l *Lifecycle) ConfirmTransfer(ctx context.Context, bookingID, role string) (*entity.Booking, error) {
	if !l.caps.CanTransfer(role) {
		return nil, domain.ErrForbidden
	}

	var transferred *entity.Booking
	err := l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		snapshotRepo repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		_ repository.PaymentRepository,
		_ repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.Voided {
			return domain.ErrAlreadyVoided
		}
		if b.Confirmation != entity.ConfirmationAccepted {
			return domain.ErrInvalidTransition
		}
		if b.PaymentStatus != entity.PaymentComplete {
			return domain.ErrNotPaymentComplete
		}

		coord := inventory.NewCoordinator(snapshotRepo, l.log)
		if err := coord.Commit(ctx, b.SecurityID, b.Quantity); err != nil {
			return err
		}

		now := time.Now()
		b.Transferred = true
		b.TransferredAt = &now
		b.UpdatedAt = now
		if err := bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		transferred = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.projector.Invalidate(ctx, transferred.SecurityID)
	l.publish(ctx, Event{
		Type:       EventBookingTransferred,
		BookingID:  transferred.ID,
		SecurityID: transferred.SecurityID,
		Quantity:   transferred.Quantity,
		OccurredAt: time.Now(),
	})
	return transferred, nil
}

// Delete elimina un booking solo si sigue en aprobación pendiente.
// Un booking transferido nunca se borra; cualquier otro estado se rechaza.
func (l *Lifecycle) Delete(ctx context.Context, bookingID, role string) error {
	if !l.caps.CanVoid(role) {
		return domain.ErrForbidden
	}
	return l.txRunner.Run(ctx, func(
		bookingRepo repository.BookingRepository,
		_ repository.SnapshotRepository,
		_ repository.PurchaseLotRepository,
		_ repository.PaymentRepository,
		_ repository.RefundRequestRepository,
	) error {
		b, err := bookingRepo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Transferred {
			return domain.ErrAlreadyTransferred
		}
		if b.ApprovalStatus != entity.ApprovalPending || b.Voided {
			return domain.ErrInvalidTransition
		}
		return bookingRepo.Delete(ctx, b.ID)
	})
}

// GetByID devuelve un booking por id.
func (l *Lifecycle) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	b, err := l.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// List devuelve bookings paginados.
func (l *Lifecycle) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	return l.bookings.List(ctx, limit, offset)
}

// refundIfPaid genera la solicitud de reembolso si el booking tiene pagos registrados.
func (l *Lifecycle) refundIfPaid(ctx context.Context, b *entity.Booking, reason string, paymentRepo repository.PaymentRepository, refundRepo repository.RefundRequestRepository) error {
	paid, err := paymentRepo.SumByBooking(ctx, b.ID)
	if err != nil {
		return err
	}
	if paid.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return refundRepo.Create(ctx, &entity.RefundRequest{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		Amount:    paid,
		Reason:    reason,
		CreatedAt: time.Now(),
	})
}

// publish emite el evento sin bloquear el flujo: un error de publicación solo se registra.
func (l *Lifecycle) publish(ctx context.Context, ev Event) {
	if l.events == nil {
		return
	}
	if err := l.events.Publish(ctx, ev); err != nil {
		l.log.Warn().Err(err).Str("event", ev.Type).Str("booking_id", ev.BookingID).Msg("no se pudo publicar evento")
	}
}

// derivePaymentStatus deriva el estado de pago de la suma de pagos contra el total.
func derivePaymentStatus(paid, total decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return entity.PaymentPending
	case paid.LessThan(total):
		return entity.PaymentPartial
	default:
		return entity.PaymentComplete
	}
}

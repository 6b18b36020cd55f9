package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

const bookingColumns = `
	id, number, client_id, security_id, quantity,
	cost_price, cost_override, sale_price,
	approval_status, is_loss_booking, loss_approval_status, confirmation, payment_status,
	voided, void_reason, voided_at,
	transferred, transferred_at,
	approved_at, created_at, updated_at, created_by`

// BookingRepo implementación del puerto BookingRepository sobre PostgreSQL.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador de persistencia de bookings.
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Number, b.ClientID, b.SecurityID, b.Quantity,
		b.CostPrice, b.CostOverride, b.SalePrice,
		b.ApprovalStatus, b.IsLossBooking, b.LossApprovalStatus, b.Confirmation, b.PaymentStatus,
		b.Voided, b.VoidReason, b.VoidedAt,
		b.Transferred, b.TransferredAt,
		b.ApprovedAt, b.CreatedAt, b.UpdatedAt, b.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate bloquea la fila del booking dentro de la transacción actual.
// Las transiciones del ciclo de vida serializan sobre este lock.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

func (r *BookingRepo) scanOne(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.Number, &b.ClientID, &b.SecurityID, &b.Quantity,
		&b.CostPrice, &b.CostOverride, &b.SalePrice,
		&b.ApprovalStatus, &b.IsLossBooking, &b.LossApprovalStatus, &b.Confirmation, &b.PaymentStatus,
		&b.Voided, &b.VoidReason, &b.VoidedAt,
		&b.Transferred, &b.TransferredAt,
		&b.ApprovedAt, &b.CreatedAt, &b.UpdatedAt, &b.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	query := `
		UPDATE bookings SET
			cost_price = $2, cost_override = $3, sale_price = $4,
			approval_status = $5, is_loss_booking = $6, loss_approval_status = $7,
			confirmation = $8, payment_status = $9,
			voided = $10, void_reason = $11, voided_at = $12,
			transferred = $13, transferred_at = $14,
			approved_at = $15, updated_at = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.CostPrice, b.CostOverride, b.SalePrice,
		b.ApprovalStatus, b.IsLossBooking, b.LossApprovalStatus,
		b.Confirmation, b.PaymentStatus,
		b.Voided, b.VoidReason, b.VoidedAt,
		b.Transferred, b.TransferredAt,
		b.ApprovedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return r.scanMany(rows)
}

func (r *BookingRepo) ListBySecurity(ctx context.Context, securityID string, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE security_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, securityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings by security: %w", err)
	}
	return r.scanMany(rows)
}

func (r *BookingRepo) scanMany(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()
	var out []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(
			&b.ID, &b.Number, &b.ClientID, &b.SecurityID, &b.Quantity,
			&b.CostPrice, &b.CostOverride, &b.SalePrice,
			&b.ApprovalStatus, &b.IsLossBooking, &b.LossApprovalStatus, &b.Confirmation, &b.PaymentStatus,
			&b.Voided, &b.VoidReason, &b.VoidedAt,
			&b.Transferred, &b.TransferredAt,
			&b.ApprovedAt, &b.CreatedAt, &b.UpdatedAt, &b.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// BlockedQuantity agrega las cantidades de bookings que bloquean inventario.
// El predicado SQL refleja exactamente Booking.Blocking(): aprobado, sin anular,
// sin transferir, sin rechazo de la puerta de pérdida y sin negación del cliente.
func (r *BookingRepo) BlockedQuantity(ctx context.Context, securityID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM bookings
		WHERE security_id = $1
		  AND approval_status = 'APPROVED'
		  AND NOT voided
		  AND NOT transferred
		  AND loss_approval_status <> 'REJECTED'
		  AND confirmation <> 'DENIED'`
	var total int64
	if err := r.q.QueryRow(ctx, query, securityID).Scan(&total); err != nil {
		return 0, fmt.Errorf("blocked quantity: %w", err)
	}
	return total, nil
}

func (r *BookingRepo) TransferredQuantity(ctx context.Context, securityID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE security_id = $1 AND transferred`
	var total int64
	if err := r.q.QueryRow(ctx, query, securityID).Scan(&total); err != nil {
		return 0, fmt.Errorf("transferred quantity: %w", err)
	}
	return total, nil
}

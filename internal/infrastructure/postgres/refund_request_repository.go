package postgres

import (
	"context"
	"fmt"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

var _ repository.RefundRequestRepository = (*RefundRequestRepo)(nil)

// RefundRequestRepo solicitudes de reembolso sobre PostgreSQL.
type RefundRequestRepo struct {
	q Querier
}

// NewRefundRequestRepository construye el adaptador de solicitudes de reembolso.
func NewRefundRequestRepository(q Querier) *RefundRequestRepo {
	return &RefundRequestRepo{q: q}
}

func (r *RefundRequestRepo) Create(ctx context.Context, req *entity.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (id, booking_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, req.ID, req.BookingID, req.Amount, req.Reason, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert refund request: %w", err)
	}
	return nil
}

func (r *RefundRequestRepo) ListByBooking(ctx context.Context, bookingID string) ([]*entity.RefundRequest, error) {
	query := `
		SELECT id, booking_id, amount, reason, created_at
		FROM refund_requests WHERE booking_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list refund requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.RefundRequest
	for rows.Next() {
		var req entity.RefundRequest
		if err := rows.Scan(&req.ID, &req.BookingID, &req.Amount, &req.Reason, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan refund request: %w", err)
		}
		out = append(out, &req)
	}
	return out, rows.Err()
}

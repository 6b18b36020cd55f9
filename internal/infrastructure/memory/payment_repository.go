package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// PaymentRepository implementación en memoria del libro de pagos.
type PaymentRepository struct {
	store *Store
}

// NewPaymentRepository construye el repositorio.
func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{store: store}
}

func (r *PaymentRepository) Create(_ context.Context, p *entity.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.payments[p.ID] = copyPayment(p)
	r.store.paymentOrder = append(r.store.paymentOrder, p.ID)
	return nil
}

func (r *PaymentRepository) ListByBooking(_ context.Context, bookingID string) ([]*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.Payment
	for _, id := range r.store.paymentOrder {
		p := r.store.payments[id]
		if p.BookingID == bookingID {
			all = append(all, copyPayment(p))
		}
	}
	return all, nil
}

func (r *PaymentRepository) SumByBooking(_ context.Context, bookingID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.store.payments {
		if p.BookingID == bookingID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

// RefundRequestRepository implementación en memoria de solicitudes de reembolso.
type RefundRequestRepository struct {
	store *Store
}

// NewRefundRequestRepository construye el repositorio.
func NewRefundRequestRepository(store *Store) *RefundRequestRepository {
	return &RefundRequestRepository{store: store}
}

func (r *RefundRequestRepository) Create(_ context.Context, req *entity.RefundRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.refunds[req.ID] = copyRefund(req)
	r.store.refundOrder = append(r.store.refundOrder, req.ID)
	return nil
}

func (r *RefundRequestRepository) ListByBooking(_ context.Context, bookingID string) ([]*entity.RefundRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.RefundRequest
	for _, id := range r.store.refundOrder {
		req := r.store.refunds[id]
		if req.BookingID == bookingID {
			all = append(all, copyRefund(req))
		}
	}
	return all, nil
}

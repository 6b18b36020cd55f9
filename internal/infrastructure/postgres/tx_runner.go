package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	bookingRepo repository.BookingRepository,
	snapshotRepo repository.SnapshotRepository,
	lotRepo repository.PurchaseLotRepository,
	paymentRepo repository.PaymentRepository,
	refundRepo repository.RefundRequestRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bookingRepo := NewBookingRepository(tx)
	snapshotRepo := NewSnapshotRepository(tx)
	lotRepo := NewPurchaseLotRepository(tx)
	paymentRepo := NewPaymentRepository(tx)
	refundRepo := NewRefundRequestRepository(tx)

	if err := fn(bookingRepo, snapshotRepo, lotRepo, paymentRepo, refundRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

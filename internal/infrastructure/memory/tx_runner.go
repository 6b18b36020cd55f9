package memory

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

// TxRunner emula transacciones serializando cada Run bajo un mutex dedicado.
// No hay rollback: un fn que falla a mitad deja los cambios previos aplicados.
// Suficiente para pruebas, donde lo que se verifica es la semántica de
// admisión atómica, no la durabilidad.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store compartido.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (t *TxRunner) Run(_ context.Context, fn func(
	bookingRepo repository.BookingRepository,
	snapshotRepo repository.SnapshotRepository,
	lotRepo repository.PurchaseLotRepository,
	paymentRepo repository.PaymentRepository,
	refundRepo repository.RefundRequestRepository,
) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(
		NewBookingRepository(t.store),
		NewSnapshotRepository(t.store),
		NewPurchaseLotRepository(t.store),
		NewPaymentRepository(t.store),
		NewRefundRequestRepository(t.store),
	)
}

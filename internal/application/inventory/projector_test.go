package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/infrastructure/memory"
)

func newProjector(store *memory.Store) *inventory.Projector {
	return inventory.NewProjector(
		memory.NewPurchaseLotRepository(store),
		memory.NewBookingRepository(store),
		memory.NewSnapshotRepository(store),
		memory.NewTxRunner(store),
		nil,
		testLogger(),
	)
}

func addLot(t *testing.T, store *memory.Store, securityID string, qty int64, price int64) {
	t.Helper()
	err := memory.NewPurchaseLotRepository(store).Create(context.Background(), &entity.PurchaseLot{
		ID:         uuid.New().String(),
		SecurityID: securityID,
		VendorID:   "vendor-1",
		Quantity:   qty,
		UnitPrice:  decimal.NewFromInt(price),
		AcquiredAt: time.Now(),
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)
}

func TestProjector_RebuildDerivaPromedioPonderado(t *testing.T) {
	store := memory.NewStore()
	addLot(t, store, "sec-1", 100, 10)
	addLot(t, store, "sec-1", 300, 14)

	snap, err := newProjector(store).Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)

	// (100*10 + 300*14) / 400 = 13
	assert.Equal(t, int64(400), snap.Acquired)
	assert.True(t, snap.WeightedAvgPrice.Equal(decimal.NewFromInt(13)),
		"promedio debe ser 13, fue %s", snap.WeightedAvgPrice)
	assert.Equal(t, int64(400), snap.Available())
}

func TestProjector_RebuildIncluyeBookingsActivos(t *testing.T) {
	store := memory.NewStore()
	addLot(t, store, "sec-1", 1000, 10)

	bookings := memory.NewBookingRepository(store)
	// aprobado y bloqueando
	require.NoError(t, bookings.Create(context.Background(), &entity.Booking{
		ID: uuid.New().String(), SecurityID: "sec-1", Quantity: 200,
		ApprovalStatus:     entity.ApprovalApproved,
		LossApprovalStatus: entity.LossApprovalNotRequired,
	}))
	// transferido: no bloquea, cuenta como transferido
	require.NoError(t, bookings.Create(context.Background(), &entity.Booking{
		ID: uuid.New().String(), SecurityID: "sec-1", Quantity: 300,
		ApprovalStatus:     entity.ApprovalApproved,
		LossApprovalStatus: entity.LossApprovalNotRequired,
		Transferred:        true,
	}))
	// anulado: no cuenta
	require.NoError(t, bookings.Create(context.Background(), &entity.Booking{
		ID: uuid.New().String(), SecurityID: "sec-1", Quantity: 150,
		ApprovalStatus:     entity.ApprovalApproved,
		LossApprovalStatus: entity.LossApprovalNotRequired,
		Voided:             true,
	}))
	// puerta de pérdida rechazada: no bloquea
	require.NoError(t, bookings.Create(context.Background(), &entity.Booking{
		ID: uuid.New().String(), SecurityID: "sec-1", Quantity: 50,
		ApprovalStatus:     entity.ApprovalApproved,
		IsLossBooking:      true,
		LossApprovalStatus: entity.LossApprovalRejected,
	}))

	snap, err := newProjector(store).Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)

	assert.Equal(t, int64(1000), snap.Acquired)
	assert.Equal(t, int64(200), snap.Blocked)
	assert.Equal(t, int64(300), snap.Transferred)
	assert.Equal(t, int64(500), snap.Available())
}

func TestProjector_SnapshotReconstruyeSiNoExiste(t *testing.T) {
	store := memory.NewStore()
	addLot(t, store, "sec-1", 500, 20)

	snap, err := newProjector(store).Snapshot(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), snap.Acquired)
	assert.True(t, snap.WeightedAvgPrice.Equal(decimal.NewFromInt(20)))
}

func TestProjector_DisponibleNegativoNoSeRecorta(t *testing.T) {
	store := memory.NewStore()
	addLot(t, store, "sec-1", 100, 10)
	// booking bloqueando más de lo adquirido: bug de integridad simulado
	require.NoError(t, memory.NewBookingRepository(store).Create(context.Background(), &entity.Booking{
		ID: uuid.New().String(), SecurityID: "sec-1", Quantity: 150,
		ApprovalStatus:     entity.ApprovalApproved,
		LossApprovalStatus: entity.LossApprovalNotRequired,
	}))

	snap, err := newProjector(store).Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)

	// La proyección almacenada conserva el negativo; el recorte es solo de presentación.
	assert.Equal(t, int64(-50), snap.Available())
}

func TestProjector_VerifyConservation(t *testing.T) {
	store := memory.NewStore()
	addLot(t, store, "sec-1", 1000, 10)
	p := newProjector(store)

	_, err := p.Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.NoError(t, p.VerifyConservation(context.Background(), "sec-1"))

	// Un lote nuevo sin reconstruir desalinea la proyección almacenada.
	addLot(t, store, "sec-1", 500, 10)
	assert.Error(t, p.VerifyConservation(context.Background(), "sec-1"))

	_, err = p.Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.NoError(t, p.VerifyConservation(context.Background(), "sec-1"))
}

func TestProjector_RebuildIncrementaVersion(t *testing.T) {
	store := memory.NewStore()
	addLot(t, store, "sec-1", 10, 1)
	p := newProjector(store)

	s1, err := p.Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)
	s2, err := p.Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.Greater(t, s2.Version, s1.Version)
}

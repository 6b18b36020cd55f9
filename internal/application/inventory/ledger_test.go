package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/application/sequence"
	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/infrastructure/memory"
)

func newLedger(store *memory.Store) (*inventory.Ledger, *inventory.Projector) {
	projector := newProjector(store)
	ledger := inventory.NewLedger(
		memory.NewPurchaseLotRepository(store),
		memory.NewSecurityRepository(store),
		memory.NewVendorRepository(store),
		sequence.NewGenerator(memory.NewCounterRepository(store)),
		projector,
	)
	return ledger, projector
}

func seedSecurity(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	err := memory.NewSecurityRepository(store).Create(context.Background(), &entity.Security{
		ID: id, Symbol: "SYM-" + id, Name: "Acción " + id,
		FaceValue: decimal.NewFromInt(1),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func seedVendor(t *testing.T, store *memory.Store, id, status string) {
	t.Helper()
	err := memory.NewVendorRepository(store).Create(context.Background(), &entity.Vendor{
		ID: id, Name: "Vendedor " + id, Status: status,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestLedger_RegisterLotActualizaProyeccion(t *testing.T) {
	store := memory.NewStore()
	seedSecurity(t, store, "sec-1")
	seedVendor(t, store, "vendor-1", entity.PartyStatusActive)
	ledger, projector := newLedger(store)

	lot, err := ledger.RegisterLot(context.Background(), inventory.RegisterLotInput{
		SecurityID: "sec-1",
		VendorID:   "vendor-1",
		Quantity:   500,
		UnitPrice:  decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, sequence.FormatPurchaseOrderNumber(time.Now().Year(), 1), lot.Number)

	// La cantidad nueva queda reservable inmediatamente.
	snap, err := projector.Snapshot(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), snap.Available())
	assert.True(t, snap.WeightedAvgPrice.Equal(decimal.NewFromInt(12)))
}

func TestLedger_RechazaVendedorInactivo(t *testing.T) {
	store := memory.NewStore()
	seedSecurity(t, store, "sec-1")
	seedVendor(t, store, "vendor-1", entity.PartyStatusSuspended)
	ledger, _ := newLedger(store)

	_, err := ledger.RegisterLot(context.Background(), inventory.RegisterLotInput{
		SecurityID: "sec-1",
		VendorID:   "vendor-1",
		Quantity:   100,
		UnitPrice:  decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrVendorIneligible)
}

func TestLedger_RechazaCantidadInvalida(t *testing.T) {
	store := memory.NewStore()
	seedSecurity(t, store, "sec-1")
	seedVendor(t, store, "vendor-1", entity.PartyStatusActive)
	ledger, _ := newLedger(store)

	_, err := ledger.RegisterLot(context.Background(), inventory.RegisterLotInput{
		SecurityID: "sec-1",
		VendorID:   "vendor-1",
		Quantity:   0,
		UnitPrice:  decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_LotesSucesivosPromedianCosto(t *testing.T) {
	store := memory.NewStore()
	seedSecurity(t, store, "sec-1")
	seedVendor(t, store, "vendor-1", entity.PartyStatusActive)
	ledger, projector := newLedger(store)

	_, err := ledger.RegisterLot(context.Background(), inventory.RegisterLotInput{
		SecurityID: "sec-1", VendorID: "vendor-1",
		Quantity: 100, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = ledger.RegisterLot(context.Background(), inventory.RegisterLotInput{
		SecurityID: "sec-1", VendorID: "vendor-1",
		Quantity: 300, UnitPrice: decimal.NewFromInt(14),
	})
	require.NoError(t, err)

	snap, err := projector.Snapshot(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.True(t, snap.WeightedAvgPrice.Equal(decimal.NewFromInt(13)),
		"promedio debe ser 13, fue %s", snap.WeightedAvgPrice)
}

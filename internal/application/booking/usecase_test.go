package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabidey/privity-sub000/internal/application/booking"
	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/application/sequence"
	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/infrastructure/memory"
	"github.com/kabidey/privity-sub000/pkg/logger"
)

// env entorno de prueba completo sobre el store en memoria.
type env struct {
	store     *memory.Store
	lifecycle *booking.Lifecycle
	ledger    *inventory.Ledger
	projector *inventory.Projector
	snapshots *memory.SnapshotRepository
	payments  *memory.PaymentRepository
	refunds   *memory.RefundRequestRepository
	events    *captureEvents
}

// captureEvents publisher en memoria para inspeccionar eventos emitidos.
type captureEvents struct {
	mu     sync.Mutex
	events []booking.Event
}

func (c *captureEvents) Publish(_ context.Context, ev booking.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *captureEvents) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Type)
	}
	return out
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	lots := memory.NewPurchaseLotRepository(store)
	bookings := memory.NewBookingRepository(store)
	snapshots := memory.NewSnapshotRepository(store)
	securities := memory.NewSecurityRepository(store)
	clients := memory.NewClientRepository(store)
	vendors := memory.NewVendorRepository(store)
	payments := memory.NewPaymentRepository(store)
	refunds := memory.NewRefundRequestRepository(store)
	txRunner := memory.NewTxRunner(store)
	seq := sequence.NewGenerator(memory.NewCounterRepository(store))
	events := &captureEvents{}

	projector := inventory.NewProjector(lots, bookings, snapshots, txRunner, nil, log)
	ledger := inventory.NewLedger(lots, securities, vendors, seq, projector)
	lifecycle := booking.NewLifecycle(
		txRunner, securities, clients, bookings, payments,
		seq, projector, booking.DefaultCapabilities(), events, log,
	)

	now := time.Now()
	require.NoError(t, securities.Create(context.Background(), &entity.Security{
		ID: "sec-1", Symbol: "NSEIT", Name: "NSE IT", FaceValue: decimal.NewFromInt(1),
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, clients.Create(context.Background(), &entity.Client{
		ID: "client-1", Name: "Cliente Uno", Approved: true, Status: entity.PartyStatusActive,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, vendors.Create(context.Background(), &entity.Vendor{
		ID: "vendor-1", Name: "Vendedor Uno", Status: entity.PartyStatusActive,
		CreatedAt: now, UpdatedAt: now,
	}))

	return &env{
		store:     store,
		lifecycle: lifecycle,
		ledger:    ledger,
		projector: projector,
		snapshots: snapshots,
		payments:  payments,
		refunds:   refunds,
		events:    events,
	}
}

// seedInventory registra un lote de 1000 unidades a costo 10.
func (e *env) seedInventory(t *testing.T) {
	t.Helper()
	_, err := e.ledger.RegisterLot(context.Background(), inventory.RegisterLotInput{
		SecurityID: "sec-1", VendorID: "vendor-1",
		Quantity: 1000, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
}

func (e *env) create(t *testing.T, qty int64, salePrice int64) *entity.Booking {
	t.Helper()
	b, err := e.lifecycle.Create(context.Background(), booking.CreateInput{
		ClientID:   "client-1",
		SecurityID: "sec-1",
		Quantity:   qty,
		SalePrice:  decimal.NewFromInt(salePrice),
		CreatedBy:  "user-1",
	})
	require.NoError(t, err)
	return b
}

func (e *env) snapshot(t *testing.T) *entity.InventorySnapshot {
	t.Helper()
	snap, err := e.snapshots.Get(context.Background(), "sec-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	return snap
}

// aceptaYPaga lleva un booking aprobado hasta pago completo.
func (e *env) aceptaYPaga(t *testing.T, id string, total int64) {
	t.Helper()
	_, err := e.lifecycle.RecordConfirmation(context.Background(), id, true)
	require.NoError(t, err)
	_, err = e.lifecycle.AddPayment(context.Background(), id, decimal.NewFromInt(total), time.Now(), "user-1")
	require.NoError(t, err)
}

func TestCreate_QuedaPendienteYNoReserva(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)

	b := e.create(t, 200, 15)

	assert.Equal(t, entity.ApprovalPending, b.ApprovalStatus)
	assert.Equal(t, entity.ConfirmationPending, b.Confirmation)
	assert.Equal(t, entity.PaymentPending, b.PaymentStatus)
	assert.NotEmpty(t, b.Number)

	// Crear no reserva: la admisión ocurre al aprobar.
	assert.Equal(t, int64(0), e.snapshot(t).Blocked)
}

func TestCreate_RechazaClienteInelegible(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	require.NoError(t, memory.NewClientRepository(e.store).Create(context.Background(), &entity.Client{
		ID: "client-2", Name: "Sin aprobar", Approved: false, Status: entity.PartyStatusActive,
	}))

	_, err := e.lifecycle.Create(context.Background(), booking.CreateInput{
		ClientID: "client-2", SecurityID: "sec-1", Quantity: 10, SalePrice: decimal.NewFromInt(15),
	})
	assert.ErrorIs(t, err, domain.ErrClientIneligible)
}

func TestCreate_RechazaAccionBloqueada(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	securities := memory.NewSecurityRepository(e.store)
	sec, err := securities.GetByID(context.Background(), "sec-1")
	require.NoError(t, err)
	sec.BlockedForTrading = true
	sec.BlockedReason = "IPO en curso"
	require.NoError(t, securities.Update(context.Background(), sec))

	_, err = e.lifecycle.Create(context.Background(), booking.CreateInput{
		ClientID: "client-1", SecurityID: "sec-1", Quantity: 10, SalePrice: decimal.NewFromInt(15),
	})
	assert.ErrorIs(t, err, domain.ErrSecurityBlocked)
}

func TestCreate_RechazaCantidadImposible(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)

	_, err := e.lifecycle.Create(context.Background(), booking.CreateInput{
		ClientID: "client-1", SecurityID: "sec-1", Quantity: 1001, SalePrice: decimal.NewFromInt(15),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestApprove_ReservaYFijaCosto(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 200, 15)

	approved, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleDealer)
	require.NoError(t, err)

	assert.Equal(t, entity.ApprovalApproved, approved.ApprovalStatus)
	assert.True(t, approved.CostPrice.Equal(decimal.NewFromInt(10)), "costo fijado al promedio del momento")
	assert.False(t, approved.IsLossBooking)
	assert.Equal(t, entity.LossApprovalNotRequired, approved.LossApprovalStatus)

	snap := e.snapshot(t)
	assert.Equal(t, int64(200), snap.Blocked)
	assert.Equal(t, int64(800), snap.Available())
	assert.Contains(t, e.events.types(), booking.EventBookingApproved)
}

func TestApprove_RolSinPermiso(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 10, 15)

	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleOps)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApprove_InsuficienteDejaPendiente(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b1 := e.create(t, 700, 15)
	b2 := e.create(t, 700, 15)

	_, err := e.lifecycle.Approve(context.Background(), b1.ID, entity.RoleAdmin)
	require.NoError(t, err)

	_, err = e.lifecycle.Approve(context.Background(), b2.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)

	// El booking perdedor sigue en pendiente; la proyección no cambió.
	got, err := e.lifecycle.GetByID(context.Background(), b2.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalPending, got.ApprovalStatus)
	assert.Equal(t, int64(700), e.snapshot(t).Blocked)
	assert.Contains(t, e.events.types(), booking.EventReservationInsufficient)
}

func TestApprove_ConcurrenciaNoSobrevende(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b1 := e.create(t, 700, 15)
	b2 := e.create(t, 700, 15)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{b1.ID, b2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = e.lifecycle.Approve(context.Background(), id, entity.RoleAdmin)
		}(i, id)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
		}
	}
	assert.Equal(t, 1, wins, "exactamente una aprobación debe ganar")
	assert.Equal(t, int64(700), e.snapshot(t).Blocked)
}

func TestApprove_DobleAprobacionFalla(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 15)

	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)
	_, err = e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	// La reserva no se duplica.
	assert.Equal(t, int64(100), e.snapshot(t).Blocked)
}

func TestApprove_VentaBajoCostoAbrePuertaDePerdida(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t) // costo promedio 10
	b := e.create(t, 100, 8)

	approved, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)

	assert.True(t, approved.IsLossBooking)
	assert.Equal(t, entity.LossApprovalPending, approved.LossApprovalStatus)
	// Reservado igual: la puerta gobierna la continuación, no la reserva.
	assert.Equal(t, int64(100), e.snapshot(t).Blocked)

	// La confirmación del cliente no procede con la puerta pendiente.
	_, err = e.lifecycle.RecordConfirmation(context.Background(), b.ID, true)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLossApproval_AprobarPermiteContinuar(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 8)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)

	resolved, err := e.lifecycle.ResolveLossApproval(context.Background(), b.ID, true, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.LossApprovalApproved, resolved.LossApprovalStatus)

	_, err = e.lifecycle.RecordConfirmation(context.Background(), b.ID, true)
	assert.NoError(t, err)
}

func TestLossApproval_RechazoLiberaYEsTerminal(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 8)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, int64(100), e.snapshot(t).Blocked)

	rejected, err := e.lifecycle.ResolveLossApproval(context.Background(), b.ID, false, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.LossApprovalRejected, rejected.LossApprovalStatus)
	assert.True(t, rejected.Terminal())

	// La reserva vuelve al disponible y la proyección derivada coincide.
	snap := e.snapshot(t)
	assert.Equal(t, int64(0), snap.Blocked)
	assert.Equal(t, int64(1000), snap.Available())
	assert.NoError(t, e.projector.VerifyConservation(context.Background(), "sec-1"))

	// Terminal: ninguna transición posterior procede.
	_, err = e.lifecycle.RecordConfirmation(context.Background(), b.ID, true)
	assert.Error(t, err)
	_, err = e.lifecycle.Void(context.Background(), b.ID, "tarde", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLossApproval_SoloAdmin(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 8)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)

	_, err = e.lifecycle.ResolveLossApproval(context.Background(), b.ID, true, entity.RoleDealer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConfirmation_NegacionLiberaYEsTerminal(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 300, 15)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)

	denied, err := e.lifecycle.RecordConfirmation(context.Background(), b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.ConfirmationDenied, denied.Confirmation)
	assert.True(t, denied.Terminal())

	snap := e.snapshot(t)
	assert.Equal(t, int64(0), snap.Blocked)
	assert.Equal(t, int64(1000), snap.Available())
	assert.NoError(t, e.projector.VerifyConservation(context.Background(), "sec-1"))
}

func TestConfirmation_NegacionNoRebloqueaTrasRebuild(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 700, 15)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, int64(700), e.snapshot(t).Blocked)

	_, err = e.lifecycle.RecordConfirmation(context.Background(), b.ID, false)
	require.NoError(t, err)
	require.Equal(t, int64(0), e.snapshot(t).Blocked)

	// Reconstruir la proyección no debe resucitar la reserva del booking negado.
	snap, err := e.projector.Rebuild(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), snap.Blocked)
	assert.Equal(t, int64(1000), snap.Available())
	assert.NoError(t, e.projector.VerifyConservation(context.Background(), "sec-1"))

	// Un lote nuevo dispara un rebuild; el disponible crece, el bloqueado sigue en cero.
	_, err = e.ledger.RegisterLot(context.Background(), inventory.RegisterLotInput{
		SecurityID: "sec-1", VendorID: "vendor-1",
		Quantity: 500, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	snap = e.snapshot(t)
	assert.Equal(t, int64(0), snap.Blocked)
	assert.Equal(t, int64(1500), snap.Available())
}

func TestPayments_DerivaEstadoYExigeAceptacion(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 15) // total 1500
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)

	// Sin confirmación aceptada no se registran pagos.
	_, err = e.lifecycle.AddPayment(context.Background(), b.ID, decimal.NewFromInt(500), time.Now(), "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = e.lifecycle.RecordConfirmation(context.Background(), b.ID, true)
	require.NoError(t, err)

	p1, err := e.lifecycle.AddPayment(context.Background(), b.ID, decimal.NewFromInt(500), time.Now(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPartial, p1.PaymentStatus)

	p2, err := e.lifecycle.AddPayment(context.Background(), b.ID, decimal.NewFromInt(1000), time.Now(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentComplete, p2.PaymentStatus)
}

func TestTransfer_ExigePagoCompleto(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 15)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)
	_, err = e.lifecycle.RecordConfirmation(context.Background(), b.ID, true)
	require.NoError(t, err)
	_, err = e.lifecycle.AddPayment(context.Background(), b.ID, decimal.NewFromInt(500), time.Now(), "user-1")
	require.NoError(t, err)

	_, err = e.lifecycle.ConfirmTransfer(context.Background(), b.ID, entity.RoleOps)
	assert.ErrorIs(t, err, domain.ErrNotPaymentComplete)
}

func TestTransfer_ConvierteReservaEnTransferido(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 15)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)
	e.aceptaYPaga(t, b.ID, 1500)

	transferred, err := e.lifecycle.ConfirmTransfer(context.Background(), b.ID, entity.RoleOps)
	require.NoError(t, err)
	assert.True(t, transferred.Transferred)
	assert.NotNil(t, transferred.TransferredAt)

	snap := e.snapshot(t)
	assert.Equal(t, int64(0), snap.Blocked)
	assert.Equal(t, int64(100), snap.Transferred)
	assert.Equal(t, int64(900), snap.Available())
	assert.Contains(t, e.events.types(), booking.EventBookingTransferred)

	// Transferido es inmutable.
	_, err = e.lifecycle.Void(context.Background(), b.ID, "tarde", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyTransferred)
	err = e.lifecycle.Delete(context.Background(), b.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyTransferred)
}

func TestTransfer_RolSinPermiso(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 100, 15)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)
	e.aceptaYPaga(t, b.ID, 1500)

	_, err = e.lifecycle.ConfirmTransfer(context.Background(), b.ID, entity.RoleDealer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVoid_LiberaReservaYGeneraReembolso(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 200, 15)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)
	e.aceptaYPaga(t, b.ID, 3000)

	voided, err := e.lifecycle.Void(context.Background(), b.ID, "cliente desistió", entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, voided.Voided)
	assert.Equal(t, "cliente desistió", voided.VoidReason)

	// Ida y vuelta: el disponible queda como antes de aprobar.
	snap := e.snapshot(t)
	assert.Equal(t, int64(0), snap.Blocked)
	assert.Equal(t, int64(1000), snap.Available())

	// Con pagos registrados se genera la solicitud de reembolso por el total pagado.
	refunds, err := e.refunds.ListByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.True(t, refunds[0].Amount.Equal(decimal.NewFromInt(3000)))
	assert.Contains(t, e.events.types(), booking.EventRefundRequested)
}

func TestVoid_PendienteSinReservaNoLibera(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 200, 15)

	voided, err := e.lifecycle.Void(context.Background(), b.ID, "error de captura", entity.RoleDealer)
	require.NoError(t, err)
	assert.True(t, voided.Voided)

	// Nunca hubo reserva: el snapshot no se toca.
	assert.Equal(t, int64(0), e.snapshot(t).Blocked)
	// Sin pagos no hay reembolso.
	refunds, err := e.refunds.ListByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, refunds)
}

func TestVoid_ExigeMotivo(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 10, 15)

	_, err := e.lifecycle.Void(context.Background(), b.ID, "", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVoid_DobleAnulacionFalla(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 200, 15)
	_, err := e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	require.NoError(t, err)

	_, err = e.lifecycle.Void(context.Background(), b.ID, "primera", entity.RoleAdmin)
	require.NoError(t, err)
	_, err = e.lifecycle.Void(context.Background(), b.ID, "segunda", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)

	// La liberación no se duplica.
	assert.Equal(t, int64(1000), e.snapshot(t).Available())
}

func TestDelete_SoloPendiente(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	pending := e.create(t, 10, 15)
	approved := e.create(t, 10, 15)
	_, err := e.lifecycle.Approve(context.Background(), approved.ID, entity.RoleAdmin)
	require.NoError(t, err)

	assert.NoError(t, e.lifecycle.Delete(context.Background(), pending.ID, entity.RoleAdmin))
	_, err = e.lifecycle.GetByID(context.Background(), pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, e.lifecycle.Delete(context.Background(), approved.ID, entity.RoleAdmin), domain.ErrInvalidTransition)
}

func TestReject_EsTerminal(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)
	b := e.create(t, 10, 15)

	rejected, err := e.lifecycle.Reject(context.Background(), b.ID, entity.RoleDealer)
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalRejected, rejected.ApprovalStatus)
	assert.True(t, rejected.Terminal())

	_, err = e.lifecycle.Approve(context.Background(), b.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

// Identidad de conservación después de un ciclo completo con varios bookings:
// adquirido == transferido + bloqueado + disponible, y la proyección almacenada
// coincide con las fuentes de verdad.
func TestConservacion_CicloCompleto(t *testing.T) {
	e := newEnv(t)
	e.seedInventory(t)

	transferido := e.create(t, 100, 15)
	_, err := e.lifecycle.Approve(context.Background(), transferido.ID, entity.RoleAdmin)
	require.NoError(t, err)
	e.aceptaYPaga(t, transferido.ID, 1500)
	_, err = e.lifecycle.ConfirmTransfer(context.Background(), transferido.ID, entity.RoleOps)
	require.NoError(t, err)

	bloqueado := e.create(t, 250, 15)
	_, err = e.lifecycle.Approve(context.Background(), bloqueado.ID, entity.RoleAdmin)
	require.NoError(t, err)

	anulado := e.create(t, 300, 15)
	_, err = e.lifecycle.Approve(context.Background(), anulado.ID, entity.RoleAdmin)
	require.NoError(t, err)
	_, err = e.lifecycle.Void(context.Background(), anulado.ID, "desistió", entity.RoleAdmin)
	require.NoError(t, err)

	snap := e.snapshot(t)
	assert.Equal(t, int64(1000), snap.Acquired)
	assert.Equal(t, int64(100), snap.Transferred)
	assert.Equal(t, int64(250), snap.Blocked)
	assert.Equal(t, int64(650), snap.Available())
	assert.Equal(t, snap.Acquired, snap.Transferred+snap.Blocked+snap.Available())

	assert.NoError(t, e.projector.VerifyConservation(context.Background(), "sec-1"))
}

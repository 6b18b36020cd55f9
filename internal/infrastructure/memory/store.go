// Package memory implementa los puertos de persistencia sobre mapas en memoria.
// Sirve para pruebas y desarrollo local sin Postgres. Las operaciones condicionales
// del snapshot (TryReserve/Release/CommitTransfer) mantienen la misma semántica
// atómica que el store real, protegidas por mutex.
package memory

import (
	"sync"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// Store contiene el estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	// txMu serializa transacciones completas del TxRunner.
	txMu sync.Mutex

	securities map[string]*entity.Security
	lots       map[string]*entity.PurchaseLot
	bookings   map[string]*entity.Booking
	snapshots  map[string]*entity.InventorySnapshot
	counters   map[string]int64
	clients    map[string]*entity.Client
	vendors    map[string]*entity.Vendor
	payments   map[string]*entity.Payment
	refunds    map[string]*entity.RefundRequest
	users      map[string]*entity.User

	// orden de inserción para listados deterministas
	lotOrder     []string
	bookingOrder []string
	paymentOrder []string
	refundOrder  []string
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		securities: make(map[string]*entity.Security),
		lots:       make(map[string]*entity.PurchaseLot),
		bookings:   make(map[string]*entity.Booking),
		snapshots:  make(map[string]*entity.InventorySnapshot),
		counters:   make(map[string]int64),
		clients:    make(map[string]*entity.Client),
		vendors:    make(map[string]*entity.Vendor),
		payments:   make(map[string]*entity.Payment),
		refunds:    make(map[string]*entity.RefundRequest),
		users:      make(map[string]*entity.User),
	}
}

func paginate(total, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return offset, end
}

func copySecurity(s *entity.Security) *entity.Security {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func copyLot(l *entity.PurchaseLot) *entity.PurchaseLot {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

func copyBooking(b *entity.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	cp := *b
	if b.CostOverride != nil {
		v := *b.CostOverride
		cp.CostOverride = &v
	}
	if b.VoidedAt != nil {
		t := *b.VoidedAt
		cp.VoidedAt = &t
	}
	if b.TransferredAt != nil {
		t := *b.TransferredAt
		cp.TransferredAt = &t
	}
	if b.ApprovedAt != nil {
		t := *b.ApprovedAt
		cp.ApprovedAt = &t
	}
	return &cp
}

func copySnapshot(s *entity.InventorySnapshot) *entity.InventorySnapshot {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func copyClient(c *entity.Client) *entity.Client {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func copyVendor(v *entity.Vendor) *entity.Vendor {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func copyPayment(p *entity.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func copyRefund(r *entity.RefundRequest) *entity.RefundRequest {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// PurchaseLotRepository implementación en memoria del libro de compras.
type PurchaseLotRepository struct {
	store *Store
}

// NewPurchaseLotRepository construye el repositorio.
func NewPurchaseLotRepository(store *Store) *PurchaseLotRepository {
	return &PurchaseLotRepository{store: store}
}

func (r *PurchaseLotRepository) Create(_ context.Context, lot *entity.PurchaseLot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lots[lot.ID] = copyLot(lot)
	r.store.lotOrder = append(r.store.lotOrder, lot.ID)
	return nil
}

func (r *PurchaseLotRepository) GetByID(_ context.Context, id string) (*entity.PurchaseLot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return copyLot(r.store.lots[id]), nil
}

func (r *PurchaseLotRepository) ListBySecurity(_ context.Context, securityID string, limit, offset int) ([]*entity.PurchaseLot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.PurchaseLot
	for _, id := range r.store.lotOrder {
		lot := r.store.lots[id]
		if lot.SecurityID == securityID {
			all = append(all, copyLot(lot))
		}
	}
	start, end := paginate(len(all), limit, offset)
	return all[start:end], nil
}

func (r *PurchaseLotRepository) TotalsBySecurity(_ context.Context, securityID string) (int64, decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var quantity int64
	totalCost := decimal.Zero
	for _, lot := range r.store.lots {
		if lot.SecurityID == securityID {
			quantity += lot.Quantity
			totalCost = totalCost.Add(lot.TotalCost())
		}
	}
	return quantity, totalCost, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// SecurityRepository implementación en memoria del catálogo de acciones.
type SecurityRepository struct {
	store *Store
}

// NewSecurityRepository construye el repositorio.
func NewSecurityRepository(store *Store) *SecurityRepository {
	return &SecurityRepository{store: store}
}

func (r *SecurityRepository) Create(_ context.Context, sec *entity.Security) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.securities {
		if existing.Symbol == sec.Symbol {
			return domain.ErrDuplicate
		}
	}
	r.store.securities[sec.ID] = copySecurity(sec)
	return nil
}

func (r *SecurityRepository) GetByID(_ context.Context, id string) (*entity.Security, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return copySecurity(r.store.securities[id]), nil
}

func (r *SecurityRepository) GetBySymbol(_ context.Context, symbol string) (*entity.Security, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, sec := range r.store.securities {
		if sec.Symbol == symbol {
			return copySecurity(sec), nil
		}
	}
	return nil, nil
}

func (r *SecurityRepository) List(_ context.Context, limit, offset int) ([]*entity.Security, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Security, 0, len(r.store.securities))
	for _, sec := range r.store.securities {
		all = append(all, copySecurity(sec))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Symbol < all[j].Symbol })
	start, end := paginate(len(all), limit, offset)
	return all[start:end], nil
}

func (r *SecurityRepository) Update(_ context.Context, sec *entity.Security) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.securities[sec.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.securities[sec.ID] = copySecurity(sec)
	return nil
}

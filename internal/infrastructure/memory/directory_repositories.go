package memory

import (
	"context"
	"sort"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// ClientRepository implementación en memoria del directorio de clientes.
type ClientRepository struct {
	store *Store
}

// NewClientRepository construye el repositorio.
func NewClientRepository(store *Store) *ClientRepository {
	return &ClientRepository{store: store}
}

func (r *ClientRepository) Create(_ context.Context, c *entity.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.clients[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.clients[c.ID] = copyClient(c)
	return nil
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return copyClient(r.store.clients[id]), nil
}

func (r *ClientRepository) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Client, 0, len(r.store.clients))
	for _, c := range r.store.clients {
		all = append(all, copyClient(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	start, end := paginate(len(all), limit, offset)
	return all[start:end], nil
}

// VendorRepository implementación en memoria del directorio de vendedores.
type VendorRepository struct {
	store *Store
}

// NewVendorRepository construye el repositorio.
func NewVendorRepository(store *Store) *VendorRepository {
	return &VendorRepository{store: store}
}

func (r *VendorRepository) Create(_ context.Context, v *entity.Vendor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.vendors[v.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.vendors[v.ID] = copyVendor(v)
	return nil
}

func (r *VendorRepository) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return copyVendor(r.store.vendors[id]), nil
}

func (r *VendorRepository) List(_ context.Context, limit, offset int) ([]*entity.Vendor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Vendor, 0, len(r.store.vendors))
	for _, v := range r.store.vendors {
		all = append(all, copyVendor(v))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	start, end := paginate(len(all), limit, offset)
	return all[start:end], nil
}

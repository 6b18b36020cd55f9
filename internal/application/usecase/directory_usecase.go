package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kabidey/privity-sub000/internal/application/dto"
	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

// DirectoryUseCase alta y consulta del directorio de clientes y vendedores.
// El motor de bookings solo lo consume en lectura (elegibilidad).
type DirectoryUseCase struct {
	clients repository.ClientRepository
	vendors repository.VendorRepository
}

// NewDirectoryUseCase construye el caso de uso del directorio.
func NewDirectoryUseCase(clients repository.ClientRepository, vendors repository.VendorRepository) *DirectoryUseCase {
	return &DirectoryUseCase{clients: clients, vendors: vendors}
}

// CreateClient da de alta un cliente.
func (uc *DirectoryUseCase) CreateClient(ctx context.Context, in dto.CreateClientRequest) (*entity.Client, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		PAN:       in.PAN,
		Approved:  in.Approved,
		Status:    entity.PartyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListClients devuelve clientes paginados.
func (uc *DirectoryUseCase) ListClients(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	return uc.clients.List(ctx, limit, offset)
}

// CreateVendor da de alta un vendedor.
func (uc *DirectoryUseCase) CreateVendor(ctx context.Context, in dto.CreateVendorRequest) (*entity.Vendor, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	v := &entity.Vendor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		PAN:       in.PAN,
		Status:    entity.PartyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.vendors.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ListVendors devuelve vendedores paginados.
func (uc *DirectoryUseCase) ListVendors(ctx context.Context, limit, offset int) ([]*entity.Vendor, error) {
	return uc.vendors.List(ctx, limit, offset)
}

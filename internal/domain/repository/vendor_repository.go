package repository

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// VendorRepository define el puerto del directorio de vendedores.
type VendorRepository interface {
	Create(ctx context.Context, v *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error)
}

package repository

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// SecurityRepository define el puerto de persistencia del catálogo de acciones.
type SecurityRepository interface {
	Create(ctx context.Context, sec *entity.Security) error
	GetByID(ctx context.Context, id string) (*entity.Security, error)
	GetBySymbol(ctx context.Context, symbol string) (*entity.Security, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Security, error)
	Update(ctx context.Context, sec *entity.Security) error
}

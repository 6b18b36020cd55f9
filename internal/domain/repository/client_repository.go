package repository

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// ClientRepository define el puerto del directorio de clientes (colaborador de solo lectura
// para el motor; el alta es administrativa).
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
}

package repository

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// UserRepository define el puerto de usuarios internos del back-office.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

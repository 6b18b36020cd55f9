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

// SecurityUseCase administración del catálogo de acciones.
// Las acciones nunca se eliminan mientras existan lotes o bookings que las referencien;
// el bloqueo por IPO/RTA se maneja como edición administrativa.
type SecurityUseCase struct {
	securities repository.SecurityRepository
}

// NewSecurityUseCase construye el caso de uso.
func NewSecurityUseCase(securities repository.SecurityRepository) *SecurityUseCase {
	return &SecurityUseCase{securities: securities}
}

// Create da de alta una acción. Symbol debe ser único.
func (uc *SecurityUseCase) Create(ctx context.Context, in dto.CreateSecurityRequest) (*entity.Security, error) {
	if in.Symbol == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.securities.GetBySymbol(ctx, in.Symbol)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	sec := &entity.Security{
		ID:        uuid.New().String(),
		Symbol:    in.Symbol,
		Name:      in.Name,
		FaceValue: in.FaceValue,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.securities.Create(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

// GetByID devuelve una acción por id.
func (uc *SecurityUseCase) GetByID(ctx context.Context, id string) (*entity.Security, error) {
	sec, err := uc.securities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, domain.ErrNotFound
	}
	return sec, nil
}

// List devuelve acciones paginadas.
func (uc *SecurityUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Security, error) {
	return uc.securities.List(ctx, limit, offset)
}

// Update aplica ediciones administrativas (nombre, valor nominal, bloqueo de negociación).
func (uc *SecurityUseCase) Update(ctx context.Context, id string, in dto.UpdateSecurityRequest) (*entity.Security, error) {
	sec, err := uc.securities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		sec.Name = *in.Name
	}
	if in.FaceValue != nil {
		sec.FaceValue = *in.FaceValue
	}
	if in.BlockedForTrading != nil {
		sec.BlockedForTrading = *in.BlockedForTrading
		if !sec.BlockedForTrading {
			sec.BlockedReason = ""
		}
	}
	if in.BlockedReason != nil {
		sec.BlockedReason = *in.BlockedReason
	}
	sec.UpdatedAt = time.Now()
	if err := uc.securities.Update(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

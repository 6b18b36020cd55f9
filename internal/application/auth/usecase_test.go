package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabidey/privity-sub000/internal/application/auth"
	"github.com/kabidey/privity-sub000/internal/application/dto"
	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/infrastructure/memory"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "privity-test"}

func newAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewUserRepository(memory.NewStore()), testJWT)
}

// failingUserRepo simula una caída del store de usuarios.
type failingUserRepo struct {
	err error
}

func (f *failingUserRepo) Create(context.Context, *entity.User) error { return f.err }
func (f *failingUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, f.err
}
func (f *failingUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, f.err
}

func TestRegisterUser_CreaConRolPorDefecto(t *testing.T) {
	uc := newAuthUC()

	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "mesa@corredora.test",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDealer, user.Role)
	assert.Equal(t, "mesa@corredora.test", user.Name)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "mesa@corredora.test", Password: "secreto123",
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "mesa@corredora.test", Password: "otra456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_PropagaErrorDelStore(t *testing.T) {
	storeErr := errors.New("conexión caída")
	uc := auth.NewAuthUseCase(&failingUserRepo{err: storeErr}, testJWT)

	// Un fallo al consultar el email no debe leerse como "email libre".
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "mesa@corredora.test", Password: "secreto123",
	})
	assert.ErrorIs(t, err, storeErr)
}

func TestLogin_EmiteTokenYRechazaPasswordIncorrecto(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "mesa@corredora.test", Password: "secreto123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "mesa@corredora.test", Password: "secreto123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "mesa@corredora.test", Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

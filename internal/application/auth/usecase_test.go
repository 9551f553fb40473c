package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/internal/application/auth"
	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/memory"
	"github.com/jhoicas/sucursales-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	branches := memory.NewBranchRepository(store)
	require.NoError(t, branches.Create(context.Background(), &entity.Branch{ID: "suc-1", Name: "Centro"}))
	require.NoError(t, branches.Create(context.Background(), &entity.Branch{ID: "suc-2", Name: "Norte"}))
	return auth.NewAuthUseCase(memory.NewUserRepository(store), branches,
		auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"})
}

var superAdmin = entity.Actor{UserID: "root", Role: entity.RoleSuperAdmin}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, superAdmin, dto.RegisterRequest{
		Email: "Caja@Example.com", Password: "secreta123", Role: entity.RoleCashier, BranchID: "suc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "caja@example.com", u.Email)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "caja@example.com", Password: "secreta123"})
	require.NoError(t, err)
	userID, branchID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "suc-1", branchID)
	assert.Equal(t, entity.RoleCashier, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caja@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	in := dto.RegisterRequest{Email: "a@example.com", Password: "secreta123", BranchID: "suc-1"}
	_, err := uc.RegisterUser(ctx, superAdmin, in)
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, superAdmin, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_PermisosDelAdministradorDeSucursal(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	admin := entity.Actor{UserID: "adm", Role: entity.RoleBranchAdmin, BranchID: "suc-1"}

	_, err := uc.RegisterUser(ctx, admin, dto.RegisterRequest{
		Email: "v@example.com", Password: "secreta123", Role: entity.RoleSeller, BranchID: "suc-2",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "otra sucursal")

	_, err = uc.RegisterUser(ctx, admin, dto.RegisterRequest{
		Email: "v@example.com", Password: "secreta123", Role: entity.RoleBranchAdmin, BranchID: "suc-1",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "no puede crear administradores")

	u, err := uc.RegisterUser(ctx, admin, dto.RegisterRequest{
		Email: "v@example.com", Password: "secreta123", BranchID: "suc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, u.Role, "rol por defecto")

	_, err = uc.RegisterUser(ctx, superAdmin, dto.RegisterRequest{
		Email: "x@example.com", Password: "secreta123", Role: entity.RoleCashier,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "personal sin sucursal")
}

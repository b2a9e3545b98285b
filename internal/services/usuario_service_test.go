package services

import (
	"context"
	"testing"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func newTestUsuarioService(store UsuarioStore, limiter *LoginLimiter) (*UsuarioService, *TokenService) {
	tokens := NewTokenService("test-secret", time.Hour)
	svc := NewUsuarioService(logging.Logger, store, tokens, limiter)
	svc.bcryptCost = bcrypt.MinCost
	return svc, tokens
}

func TestUsuarioService_RegistrarFirstAccountIsAdmin(t *testing.T) {
	svc, tokens := newTestUsuarioService(newMemoryUsuarioStore(), nil)

	token, usuario, err := svc.Registrar(context.Background(), models.RegistroRequest{Email: "Admin@Example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, usuario.Role)
	assert.Equal(t, "admin@example.com", usuario.Email)
	assert.NotEqual(t, "segredo1", usuario.Senha)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, usuario.ID.Hex(), claims.ID)
	assert.True(t, claims.IsAdmin())
}

func TestUsuarioService_RegistrarRoles(t *testing.T) {
	store := newMemoryUsuarioStore()
	svc, _ := newTestUsuarioService(store, nil)
	ctx := context.Background()

	_, admin, err := svc.Registrar(ctx, models.RegistroRequest{Email: "admin@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)
	adminClaims := &models.Claims{ID: admin.ID.Hex(), Role: models.RoleAdmin}

	_, padrao, err := svc.Registrar(ctx, models.RegistroRequest{Email: "op@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RolePadrao, padrao.Role)

	_, _, err = svc.Registrar(ctx, models.RegistroRequest{Email: "x@example.com", Senha: "segredo1", Role: models.RoleAdmin}, nil)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, granted, err := svc.Registrar(ctx, models.RegistroRequest{Email: "y@example.com", Senha: "segredo1", Role: models.RoleAdmin}, adminClaims)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, granted.Role)
}

func TestUsuarioService_RegistrarDuplicateAndInvalid(t *testing.T) {
	svc, _ := newTestUsuarioService(newMemoryUsuarioStore(), nil)
	ctx := context.Background()

	_, _, err := svc.Registrar(ctx, models.RegistroRequest{Email: "op@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)

	_, _, err = svc.Registrar(ctx, models.RegistroRequest{Email: " OP@example.com", Senha: "outro123"}, nil)
	assert.ErrorIs(t, err, models.ErrEmailInUse)

	_, _, err = svc.Registrar(ctx, models.RegistroRequest{Email: "nao-e-email", Senha: "123"}, nil)
	fields := invalidFields(t, err)
	assert.True(t, fields["email"])
	assert.True(t, fields["senha"])
}

func TestUsuarioService_Login(t *testing.T) {
	svc, tokens := newTestUsuarioService(newMemoryUsuarioStore(), nil)
	ctx := context.Background()

	_, usuario, err := svc.Registrar(ctx, models.RegistroRequest{Email: "op@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)

	token, err := svc.Login(ctx, models.LoginRequest{Email: "OP@example.com", Password: "segredo1"}, "10.0.0.1")
	require.NoError(t, err)
	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, usuario.ID.Hex(), claims.ID)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "op@example.com", Senha: "segredo1"}, "10.0.0.1")
	assert.NoError(t, err, "senha is accepted as the secret field")

	_, err = svc.Login(ctx, models.LoginRequest{Email: "op@example.com", Password: "errada"}, "10.0.0.1")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ninguem@example.com", Password: "segredo1"}, "10.0.0.1")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{}, "10.0.0.1")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUsuarioService_LoginThrottled(t *testing.T) {
	limiter := NewLoginLimiter(nil, 2, time.Hour, logging.Logger)
	defer limiter.Stop()
	svc, _ := newTestUsuarioService(newMemoryUsuarioStore(), limiter)
	ctx := context.Background()

	_, _, err := svc.Registrar(ctx, models.RegistroRequest{Email: "op@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = svc.Login(ctx, models.LoginRequest{Email: "op@example.com", Password: "errada"}, "10.0.0.1")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	}
	_, err = svc.Login(ctx, models.LoginRequest{Email: "op@example.com", Password: "segredo1"}, "10.0.0.1")
	assert.ErrorIs(t, err, models.ErrTooManyAttempts)

	// another client address has its own budget
	_, err = svc.Login(ctx, models.LoginRequest{Email: "op@example.com", Password: "segredo1"}, "10.0.0.2")
	assert.NoError(t, err)
}

func TestUsuarioService_Atualizar(t *testing.T) {
	store := newMemoryUsuarioStore()
	svc, _ := newTestUsuarioService(store, nil)
	ctx := context.Background()

	_, admin, err := svc.Registrar(ctx, models.RegistroRequest{Email: "admin@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)
	_, op, err := svc.Registrar(ctx, models.RegistroRequest{Email: "op@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)

	adminClaims := &models.Claims{ID: admin.ID.Hex(), Role: models.RoleAdmin}
	opClaims := &models.Claims{ID: op.ID.Hex(), Role: models.RolePadrao}
	str := func(s string) *string { return &s }

	t.Run("owner changes own password", func(t *testing.T) {
		_, err := svc.Atualizar(ctx, op.ID.Hex(), models.AtualizarUsuarioRequest{Senha: str("novasenha")}, opClaims)
		require.NoError(t, err)

		_, err = svc.Login(ctx, models.LoginRequest{Email: "op@example.com", Password: "novasenha"}, "10.0.0.1")
		assert.NoError(t, err)
	})

	t.Run("owner cannot promote self", func(t *testing.T) {
		_, err := svc.Atualizar(ctx, op.ID.Hex(), models.AtualizarUsuarioRequest{Role: str(models.RoleAdmin)}, opClaims)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("cannot update another account", func(t *testing.T) {
		_, err := svc.Atualizar(ctx, admin.ID.Hex(), models.AtualizarUsuarioRequest{Email: str("x@example.com")}, opClaims)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("admin changes role", func(t *testing.T) {
		updated, err := svc.Atualizar(ctx, op.ID.Hex(), models.AtualizarUsuarioRequest{Role: str(models.RoleAdmin)}, adminClaims)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("email already used", func(t *testing.T) {
		_, err := svc.Atualizar(ctx, op.ID.Hex(), models.AtualizarUsuarioRequest{Email: str("ADMIN@example.com")}, adminClaims)
		assert.ErrorIs(t, err, models.ErrEmailInUse)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := svc.Atualizar(ctx, op.ID.Hex(), models.AtualizarUsuarioRequest{Role: str("root")}, adminClaims)
		assert.True(t, invalidFields(t, err)["role"])
	})

	t.Run("unknown account", func(t *testing.T) {
		missing := primitive.NewObjectID().Hex()
		_, err := svc.Atualizar(ctx, missing, models.AtualizarUsuarioRequest{}, adminClaims)
		assert.ErrorIs(t, err, models.ErrUsuarioNotFound)
	})
}

func TestUsuarioService_Excluir(t *testing.T) {
	store := newMemoryUsuarioStore()
	svc, _ := newTestUsuarioService(store, nil)
	ctx := context.Background()

	_, usuario, err := svc.Registrar(ctx, models.RegistroRequest{Email: "op@example.com", Senha: "segredo1"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Excluir(ctx, usuario.ID.Hex()))
	assert.ErrorIs(t, svc.Excluir(ctx, usuario.ID.Hex()), models.ErrUsuarioNotFound)
	assert.ErrorIs(t, svc.Excluir(ctx, "abc"), models.ErrUsuarioNotFound)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UsuarioService handles operator accounts and login
type UsuarioService struct {
	logger     *logging.SafeLogger
	store      UsuarioStore
	tokens     *TokenService
	limiter    *LoginLimiter
	bcryptCost int
}

// NewUsuarioService creates a new account service. limiter may be nil.
func NewUsuarioService(logger *logging.SafeLogger, store UsuarioStore, tokens *TokenService, limiter *LoginLimiter) *UsuarioService {
	return &UsuarioService{
		logger:     logger,
		store:      store,
		tokens:     tokens,
		limiter:    limiter,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Registrar creates an account and returns a token for it. The first account
// becomes admin. Afterwards only an admin caller may grant the admin role.
func (s *UsuarioService) Registrar(ctx context.Context, req models.RegistroRequest, caller *models.Claims) (string, *models.Usuario, error) {
	req.Email = normalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return "", nil, err
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return "", nil, &models.PersistenceError{Op: "registrar", Index: -1, Err: err}
	}

	role := req.Role
	switch {
	case count == 0:
		role = models.RoleAdmin
	case role == "":
		role = models.RolePadrao
	case role == models.RoleAdmin && !caller.IsAdmin():
		return "", nil, models.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usuario := &models.Usuario{Email: req.Email, Senha: string(hash), Role: role}
	if err := s.store.Insert(ctx, usuario); err != nil {
		return "", nil, storeError("registrar", err)
	}

	token, err := s.tokens.Issue(usuario)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("usuario registered",
		zap.String("id", usuario.ID.Hex()),
		zap.String("email", observability.MaskEmail(usuario.Email)),
		zap.String("role", role))
	return token, usuario, nil
}

// Login checks the credentials and returns a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UsuarioService) Login(ctx context.Context, req models.LoginRequest, clientIP string) (string, error) {
	email := normalizeEmail(req.Email)
	key := LoginAttemptKey(email, clientIP)

	if !s.limiter.Allow(ctx, key) {
		observability.LoginAttempts.WithLabelValues("throttled").Inc()
		return "", models.ErrTooManyAttempts
	}

	secret := req.Secret()
	if email == "" || secret == "" {
		observability.LoginAttempts.WithLabelValues("invalid").Inc()
		return "", models.ErrInvalidCredentials
	}

	usuario, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUsuarioNotFound) {
			observability.LoginAttempts.WithLabelValues("invalid").Inc()
			return "", models.ErrInvalidCredentials
		}
		return "", &models.PersistenceError{Op: "login", Index: -1, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(secret)); err != nil {
		observability.LoginAttempts.WithLabelValues("invalid").Inc()
		s.logger.Debug("login rejected", zap.String("email", observability.MaskEmail(email)))
		return "", models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(usuario)
	if err != nil {
		return "", err
	}

	s.limiter.Reset(ctx, key)
	observability.LoginAttempts.WithLabelValues("success").Inc()
	return token, nil
}

// Atualizar changes email, password or role of an account. Callers may update
// their own account; admins may update any account and are the only ones who
// may change roles.
func (s *UsuarioService) Atualizar(ctx context.Context, id string, req models.AtualizarUsuarioRequest, caller *models.Claims) (*models.Usuario, error) {
	if caller == nil || (!caller.IsAdmin() && caller.ID != id) {
		return nil, models.ErrForbidden
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrUsuarioNotFound
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	usuario, err := s.store.FindByID(ctx, objectID)
	if err != nil {
		return nil, storeError("atualizar_usuario", err)
	}

	if req.Role != nil && *req.Role != usuario.Role {
		if !caller.IsAdmin() {
			return nil, models.ErrForbidden
		}
		usuario.Role = *req.Role
	}
	if req.Email != nil {
		usuario.Email = *req.Email
	}
	if req.Senha != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		usuario.Senha = string(hash)
	}

	if err := s.store.Replace(ctx, usuario); err != nil {
		return nil, storeError("atualizar_usuario", err)
	}

	s.logger.Info("usuario updated", zap.String("id", id), zap.String("by", caller.ID))
	return usuario, nil
}

// Excluir deletes an account
func (s *UsuarioService) Excluir(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrUsuarioNotFound
	}

	if err := s.store.Delete(ctx, objectID); err != nil {
		return storeError("excluir_usuario", err)
	}

	s.logger.Info("usuario deleted", zap.String("id", id))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

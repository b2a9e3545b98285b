package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/middleware"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
)

// UsuarioAccounts is the account operations the auth handlers need
type UsuarioAccounts interface {
	Registrar(ctx context.Context, req models.RegistroRequest, caller *models.Claims) (string, *models.Usuario, error)
	Login(ctx context.Context, req models.LoginRequest, clientIP string) (string, error)
	Atualizar(ctx context.Context, id string, req models.AtualizarUsuarioRequest, caller *models.Claims) (*models.Usuario, error)
	Excluir(ctx context.Context, id string) error
}

// AuthHandlers handles login and account maintenance
type AuthHandlers struct {
	logger   *logging.SafeLogger
	usuarios UsuarioAccounts
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(logger *logging.SafeLogger, usuarios UsuarioAccounts) *AuthHandlers {
	return &AuthHandlers{
		logger:   logger,
		usuarios: usuarios,
	}
}

// Login godoc
// @Summary Login
// @Description Autentica um operador e retorna um token de acesso válido por uma hora. Aceita a senha no campo password ou senha.
// @Tags auth
// @Accept json
// @Produce json
// @Param credenciais body models.LoginRequest true "Email e senha"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} ErrorResponse "Credenciais inválidas"
// @Failure 429 {object} ErrorResponse "Muitas tentativas"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.usuarios.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondError(c, h.logger, err, "Erro ao fazer login")
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}

// Registrar godoc
// @Summary Registrar operador
// @Description Cria uma conta de operador. A primeira conta criada é admin; depois disso apenas um admin autenticado pode criar outro admin.
// @Tags auth
// @Accept json
// @Produce json
// @Param usuario body models.RegistroRequest true "Dados da conta"
// @Success 201 {object} models.TokenResponse
// @Failure 400 {object} ErrorResponse "Dados inválidos ou email já em uso"
// @Failure 401 {object} ErrorResponse "Token inválido"
// @Failure 403 {object} ErrorResponse "Permissão insuficiente para o papel pedido"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/registrar [post]
func (h *AuthHandlers) Registrar(c *gin.Context) {
	var req models.RegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, _, err := h.usuarios.Registrar(c.Request.Context(), req, middleware.GetClaims(c))
	if err != nil {
		respondError(c, h.logger, err, "Erro ao registrar usuário")
		return
	}

	c.JSON(http.StatusCreated, models.TokenResponse{Token: token})
}

// AtualizarUsuario godoc
// @Summary Atualizar operador
// @Description Atualiza email, senha ou papel de uma conta. O próprio operador pode alterar sua conta; apenas admins alteram outras contas ou papéis.
// @Tags auth
// @Accept json
// @Produce json
// @Param id path string true "ID da conta"
// @Param usuario body models.AtualizarUsuarioRequest true "Campos a alterar"
// @Success 200 {object} models.UsuarioResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/atualizar-usuario/{id} [put]
func (h *AuthHandlers) AtualizarUsuario(c *gin.Context) {
	var req models.AtualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	usuario, err := h.usuarios.Atualizar(c.Request.Context(), c.Param("id"), req, middleware.GetClaims(c))
	if err != nil {
		respondError(c, h.logger, err, "Erro ao atualizar usuário")
		return
	}

	c.JSON(http.StatusOK, models.UsuarioResponse{Message: "Usuário atualizado com sucesso", Usuario: usuario})
}

// DeletarUsuario godoc
// @Summary Excluir operador
// @Description Exclui uma conta de operador (apenas administradores)
// @Tags auth
// @Produce json
// @Param id path string true "ID da conta"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/deletar-usuario/{id} [delete]
func (h *AuthHandlers) DeletarUsuario(c *gin.Context) {
	if err := h.usuarios.Excluir(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Erro ao excluir usuário")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Usuário excluído com sucesso"})
}

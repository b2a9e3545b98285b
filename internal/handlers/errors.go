package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/middleware"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error answer
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

// Client-facing messages
const (
	MsgDadosInvalidos        = "Dados inválidos."
	MsgEmailEmUso            = "Email já está em uso"
	MsgMembroNaoEncontrado   = "Membro não encontrado"
	MsgUsuarioNaoEncontrado  = "Usuário não encontrado"
	MsgCredenciaisInvalidas  = "Credenciais inválidas"
	MsgPermissaoInsuficiente = "Acesso negado. Permissão insuficiente."
	MsgMuitasTentativas      = "Muitas tentativas de login. Tente novamente mais tarde."
)

// statusFor maps a domain error to its status code and message. ok is false
// for unexpected errors.
func statusFor(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, models.ErrEmailInUse):
		return http.StatusBadRequest, MsgEmailEmUso, true
	case errors.Is(err, models.ErrMembroNotFound), errors.Is(err, models.ErrInvalidID):
		return http.StatusNotFound, MsgMembroNaoEncontrado, true
	case errors.Is(err, models.ErrUsuarioNotFound):
		return http.StatusNotFound, MsgUsuarioNaoEncontrado, true
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusBadRequest, MsgCredenciaisInvalidas, true
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, MsgPermissaoInsuficiente, true
	case errors.Is(err, models.ErrTooManyAttempts):
		return http.StatusTooManyRequests, MsgMuitasTentativas, true
	case errors.Is(err, models.ErrMissingToken):
		return http.StatusUnauthorized, middleware.MsgTokenNaoFornecido, true
	case errors.Is(err, models.ErrInvalidToken):
		return http.StatusUnauthorized, middleware.MsgTokenInvalido, true
	}
	return http.StatusInternalServerError, "", false
}

// respondError writes the answer for err. Unexpected errors are logged and
// answered with fallback, without leaking their details.
func respondError(c *gin.Context, logger *logging.SafeLogger, err error, fallback string) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: MsgDadosInvalidos, Errors: verrs})
		return
	}

	status, message, ok := statusFor(err)
	if !ok {
		_ = c.Error(err)
		logger.Error(fallback,
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: fallback})
		return
	}
	c.JSON(status, ErrorResponse{Message: message})
}

// respondBindError answers a body that could not be decoded
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: MsgDadosInvalidos,
		Errors:  []models.FieldError{{Field: "body", Message: err.Error()}},
	})
}

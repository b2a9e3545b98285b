package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
)

// MembroDirectory is the member operations the handlers need
type MembroDirectory interface {
	Criar(ctx context.Context, in models.MembroInput) (*models.Membro, error)
	Listar(ctx context.Context) ([]models.Membro, error)
	Buscar(ctx context.Context, id string) (*models.Membro, error)
	Atualizar(ctx context.Context, id string, patch json.RawMessage) (*models.Membro, error)
	Excluir(ctx context.Context, id string) error
}

// MembroHandlers handles the member directory endpoints
type MembroHandlers struct {
	logger  *logging.SafeLogger
	membros MembroDirectory
}

// NewMembroHandlers creates a new member handlers instance
func NewMembroHandlers(logger *logging.SafeLogger, membros MembroDirectory) *MembroHandlers {
	return &MembroHandlers{
		logger:  logger,
		membros: membros,
	}
}

// CriarMembro godoc
// @Summary Cadastrar membro
// @Description Cadastra um novo membro. O email deve ser único; a data de batismo é obrigatória para batizados e não pode estar no futuro.
// @Tags membros
// @Accept json
// @Produce json
// @Param membro body models.MembroInput true "Dados do membro"
// @Success 201 {object} models.MembroResponse
// @Failure 400 {object} ErrorResponse "Dados inválidos ou email já em uso"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /membros [post]
func (h *MembroHandlers) CriarMembro(c *gin.Context) {
	var in models.MembroInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	membro, err := h.membros.Criar(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err, "Erro ao cadastrar membro")
		return
	}

	c.JSON(http.StatusCreated, models.MembroResponse{Message: "Membro cadastrado com sucesso", Membro: membro})
}

// ListarMembros godoc
// @Summary Listar membros
// @Description Lista todos os membros ordenados por nome
// @Tags membros
// @Produce json
// @Success 200 {array} models.Membro
// @Failure 500 {object} ErrorResponse
// @Router /membros [get]
func (h *MembroHandlers) ListarMembros(c *gin.Context) {
	membros, err := h.membros.Listar(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Erro ao buscar membros")
		return
	}

	c.JSON(http.StatusOK, membros)
}

// BuscarMembro godoc
// @Summary Buscar membro
// @Description Retorna um membro pelo ID
// @Tags membros
// @Produce json
// @Param id path string true "ID do membro"
// @Success 200 {object} models.MembroResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /membros/{id} [get]
func (h *MembroHandlers) BuscarMembro(c *gin.Context) {
	membro, err := h.membros.Buscar(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Erro ao buscar membro")
		return
	}

	c.JSON(http.StatusOK, models.MembroResponse{Message: "Membro encontrado com sucesso", Membro: membro})
}

// AtualizarMembro godoc
// @Summary Atualizar membro
// @Description Atualiza os campos enviados de um membro. O documento resultante é validado novamente.
// @Tags membros
// @Accept json
// @Produce json
// @Param id path string true "ID do membro"
// @Param membro body models.MembroInput true "Campos a alterar"
// @Success 200 {object} models.MembroResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /membros/{id} [put]
func (h *MembroHandlers) AtualizarMembro(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBindError(c, err)
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	membro, err := h.membros.Atualizar(c.Request.Context(), c.Param("id"), json.RawMessage(body))
	if err != nil {
		respondError(c, h.logger, err, "Erro ao atualizar membro")
		return
	}

	c.JSON(http.StatusOK, models.MembroResponse{Message: "Membro atualizado com sucesso", Membro: membro})
}

// ExcluirMembro godoc
// @Summary Excluir membro
// @Description Exclui um membro. Os registros de presença não são apagados.
// @Tags membros
// @Produce json
// @Param id path string true "ID do membro"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /membros/{id} [delete]
func (h *MembroHandlers) ExcluirMembro(c *gin.Context) {
	if err := h.membros.Excluir(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Erro ao excluir membro")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Membro excluído com sucesso"})
}

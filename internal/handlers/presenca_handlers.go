package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
)

// PresencaReconciler is the attendance operations the handlers need
type PresencaReconciler interface {
	Reconcile(ctx context.Context, batch []models.PresencaSubmissao) error
	ListarHoje(ctx context.Context) ([]models.Presenca, error)
	ListarTodos(ctx context.Context) ([]models.Presenca, error)
	MarcarPresencaMembro(ctx context.Context, id string, presente bool) (*models.Presenca, error)
}

// PresencaHandlers handles the attendance endpoints
type PresencaHandlers struct {
	logger    *logging.SafeLogger
	presencas PresencaReconciler
}

// NewPresencaHandlers creates a new attendance handlers instance
func NewPresencaHandlers(logger *logging.SafeLogger, presencas PresencaReconciler) *PresencaHandlers {
	return &PresencaHandlers{
		logger:    logger,
		presencas: presencas,
	}
}

// SalvarPresencas godoc
// @Summary Salvar presenças
// @Description Aplica um lote de marcações. Cada item cria ou atualiza a marcação do membro no dia da data informada; o lote inteiro é validado antes de qualquer gravação.
// @Tags presencas
// @Accept json
// @Produce json
// @Param presencas body []models.PresencaSubmissao true "Lote de marcações"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /presencas [put]
func (h *PresencaHandlers) SalvarPresencas(c *gin.Context) {
	var batch []models.PresencaSubmissao
	if err := c.ShouldBindJSON(&batch); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.presencas.Reconcile(c.Request.Context(), batch); err != nil {
		respondError(c, h.logger, err, "Erro ao salvar presenças.")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Presenças salvas com sucesso!"})
}

// ListarPresencasHoje godoc
// @Summary Presenças de hoje
// @Description Lista os registros que têm marcação no dia de hoje, com todo o histórico de cada um
// @Tags presencas
// @Produce json
// @Success 200 {array} models.Presenca
// @Failure 500 {object} ErrorResponse
// @Router /presencas/hoje [get]
func (h *PresencaHandlers) ListarPresencasHoje(c *gin.Context) {
	presencas, err := h.presencas.ListarHoje(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Erro ao buscar presenças do dia.")
		return
	}

	c.JSON(http.StatusOK, presencas)
}

// ListarPresencas godoc
// @Summary Listar presenças
// @Description Lista todos os registros de presença
// @Tags presencas
// @Produce json
// @Success 200 {array} models.Presenca
// @Failure 500 {object} ErrorResponse
// @Router /presencas [get]
func (h *PresencaHandlers) ListarPresencas(c *gin.Context) {
	presencas, err := h.presencas.ListarTodos(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Erro ao buscar presenças.")
		return
	}

	c.JSON(http.StatusOK, presencas)
}

// MarcarPresenca godoc
// @Summary Marcar presença do membro
// @Description Marca a presença de um membro cadastrado no dia de hoje
// @Tags presencas
// @Accept json
// @Produce json
// @Param id path string true "ID do membro"
// @Param marcacao body models.MarcarPresencaRequest true "Presente ou ausente"
// @Success 200 {object} models.MarcarPresencaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /membros/{id}/presenca [put]
func (h *PresencaHandlers) MarcarPresenca(c *gin.Context) {
	var req models.MarcarPresencaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(c, h.logger, err, "Erro ao marcar presença")
		return
	}

	presenca, err := h.presencas.MarcarPresencaMembro(c.Request.Context(), c.Param("id"), *req.Presente)
	if err != nil {
		respondError(c, h.logger, err, "Erro ao marcar presença")
		return
	}

	c.JSON(http.StatusOK, models.MarcarPresencaResponse{Message: "Presença marcada com sucesso", Presenca: presenca})
}

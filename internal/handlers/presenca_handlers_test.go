package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presencaRouter(presencas PresencaReconciler) *gin.Engine {
	h := NewPresencaHandlers(logging.Logger, presencas)
	router := gin.New()
	router.PUT("/api/presencas", h.SalvarPresencas)
	router.GET("/api/presencas/hoje", h.ListarPresencasHoje)
	router.GET("/api/presencas", h.ListarPresencas)
	router.PUT("/api/membros/:id/presenca", h.MarcarPresenca)
	return router
}

func TestSalvarPresencas(t *testing.T) {
	var got []models.PresencaSubmissao
	presencas := &stubPresencas{reconcile: func(batch []models.PresencaSubmissao) error {
		got = batch
		return nil
	}}

	body := `[{"idMembro":"m1","nomeMembro":"Ana","data":"2024-03-10T14:00:00Z","presente":true},
		{"idMembro":"m2","nomeMembro":"Bruno","data":"2024-03-10T14:00:00Z","presente":false}]`
	w := perform(presencaRouter(presencas), http.MethodPut, "/api/presencas", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Presenças salvas com sucesso!"}`, w.Body.String())
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].IDMembro)
	require.NotNil(t, got[1].Presente)
	assert.False(t, *got[1].Presente)
	assert.True(t, got[0].Data.Time().Equal(time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)))
}

func TestSalvarPresencas_ValidationErrorsAreListed(t *testing.T) {
	presencas := &stubPresencas{reconcile: func([]models.PresencaSubmissao) error {
		return models.ValidationErrors{
			{Field: "[1].idMembro", Message: "Campo obrigatório."},
			{Field: "[1].data", Message: "A data da presença não pode estar no futuro."},
		}
	}}

	w := perform(presencaRouter(presencas), http.MethodPut, "/api/presencas", `[{},{}]`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, MsgDadosInvalidos, resp.Message)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "[1].idMembro", resp.Errors[0].Field)
}

func TestSalvarPresencas_BodyMustBeArray(t *testing.T) {
	w := perform(presencaRouter(&stubPresencas{}), http.MethodPut, "/api/presencas", `{"idMembro":"m1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalvarPresencas_PersistenceFailure(t *testing.T) {
	presencas := &stubPresencas{reconcile: func([]models.PresencaSubmissao) error {
		return &models.PersistenceError{Op: "reconcile", Index: 3, Err: errors.New("server selection timeout")}
	}}

	w := perform(presencaRouter(presencas), http.MethodPut, "/api/presencas", `[]`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erro ao salvar presenças.", decodeError(t, w).Message)
	assert.NotContains(t, w.Body.String(), "timeout")
}

func TestListarPresencasHoje_EmptyIsArray(t *testing.T) {
	presencas := &stubPresencas{hoje: func() ([]models.Presenca, error) { return []models.Presenca{}, nil }}

	w := perform(presencaRouter(presencas), http.MethodGet, "/api/presencas/hoje", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListarPresencas(t *testing.T) {
	day := time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)
	presencas := &stubPresencas{todos: func() ([]models.Presenca, error) {
		return []models.Presenca{{
			IDMembro:   "m1",
			NomeMembro: "Ana",
			Presencas:  []models.MarcacaoDiaria{{Data: day, Presente: true}},
		}}, nil
	}}

	w := perform(presencaRouter(presencas), http.MethodGet, "/api/presencas", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Presenca
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].NomeMembro)
	require.Len(t, got[0].Presencas, 1)
	assert.True(t, got[0].Presencas[0].Data.Equal(day))

	failing := &stubPresencas{todos: func() ([]models.Presenca, error) { return nil, errors.New("boom") }}
	w = perform(presencaRouter(failing), http.MethodGet, "/api/presencas", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erro ao buscar presenças.", decodeError(t, w).Message)
}

func TestMarcarPresenca(t *testing.T) {
	presencas := &stubPresencas{marcar: func(id string, presente bool) (*models.Presenca, error) {
		if id == "ausente" {
			return nil, models.ErrMembroNotFound
		}
		return &models.Presenca{IDMembro: id, NomeMembro: "Ana", Presencas: []models.MarcacaoDiaria{{Presente: presente}}}, nil
	}}
	router := presencaRouter(presencas)

	w := perform(router, http.MethodPut, "/api/membros/m1/presenca", `{"presente":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.MarcarPresencaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Presença marcada com sucesso", resp.Message)
	assert.True(t, resp.Presenca.Presencas[0].Presente)

	w = perform(router, http.MethodPut, "/api/membros/m1/presenca", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodPut, "/api/membros/ausente/presenca", `{"presente":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgMembroNaoEncontrado, decodeError(t, w).Message)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/middleware"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsuarios struct {
	registrar func(req models.RegistroRequest, caller *models.Claims) (string, *models.Usuario, error)
	login     func(req models.LoginRequest, clientIP string) (string, error)
	atualizar func(id string, req models.AtualizarUsuarioRequest, caller *models.Claims) (*models.Usuario, error)
	excluir   func(id string) error
}

func (s *stubUsuarios) Registrar(_ context.Context, req models.RegistroRequest, caller *models.Claims) (string, *models.Usuario, error) {
	return s.registrar(req, caller)
}

func (s *stubUsuarios) Login(_ context.Context, req models.LoginRequest, clientIP string) (string, error) {
	return s.login(req, clientIP)
}

func (s *stubUsuarios) Atualizar(_ context.Context, id string, req models.AtualizarUsuarioRequest, caller *models.Claims) (*models.Usuario, error) {
	return s.atualizar(id, req, caller)
}

func (s *stubUsuarios) Excluir(_ context.Context, id string) error {
	return s.excluir(id)
}

type stubMembros struct {
	criar     func(in models.MembroInput) (*models.Membro, error)
	listar    func() ([]models.Membro, error)
	buscar    func(id string) (*models.Membro, error)
	atualizar func(id string, patch json.RawMessage) (*models.Membro, error)
	excluir   func(id string) error
}

func (s *stubMembros) Criar(_ context.Context, in models.MembroInput) (*models.Membro, error) {
	return s.criar(in)
}

func (s *stubMembros) Listar(context.Context) ([]models.Membro, error) {
	return s.listar()
}

func (s *stubMembros) Buscar(_ context.Context, id string) (*models.Membro, error) {
	return s.buscar(id)
}

func (s *stubMembros) Atualizar(_ context.Context, id string, patch json.RawMessage) (*models.Membro, error) {
	return s.atualizar(id, patch)
}

func (s *stubMembros) Excluir(_ context.Context, id string) error {
	return s.excluir(id)
}

type stubPresencas struct {
	reconcile func(batch []models.PresencaSubmissao) error
	hoje      func() ([]models.Presenca, error)
	todos     func() ([]models.Presenca, error)
	marcar    func(id string, presente bool) (*models.Presenca, error)
}

func (s *stubPresencas) Reconcile(_ context.Context, batch []models.PresencaSubmissao) error {
	return s.reconcile(batch)
}

func (s *stubPresencas) ListarHoje(context.Context) ([]models.Presenca, error) {
	return s.hoje()
}

func (s *stubPresencas) ListarTodos(context.Context) ([]models.Presenca, error) {
	return s.todos()
}

func (s *stubPresencas) MarcarPresencaMembro(_ context.Context, id string, presente bool) (*models.Presenca, error) {
	return s.marcar(id, presente)
}

// withClaims simulates an authenticated request
func withClaims(claims *models.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ClaimsKey, claims)
		}
		c.Next()
	}
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

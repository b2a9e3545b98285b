package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/tests/config"
)

// GetAuthToken logs in with the configured operator account
func GetAuthToken(cfg *config.TestConfig) (string, error) {
	client := NewAPIClient(cfg, "")
	resp, err := client.Post("/api/auth/login", models.LoginRequest{Email: cfg.Email, Password: cfg.Password})
	if err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	return tokenResp.Token, nil
}

// APIClient wraps HTTP client with common test functionality
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewAPIClient creates a new API client for testing
func NewAPIClient(cfg *config.TestConfig, token string) *APIClient {
	return &APIClient{
		BaseURL: cfg.BaseURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.APICallTimeout) * time.Second,
		},
		Token: token,
	}
}

func (c *APIClient) do(method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return c.HTTPClient.Do(req)
}

// Get performs authenticated GET request
func (c *APIClient) Get(path string) (*http.Response, error) {
	return c.do(http.MethodGet, path, nil)
}

// Post performs authenticated POST request
func (c *APIClient) Post(path string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPost, path, body)
}

// Put performs authenticated PUT request
func (c *APIClient) Put(path string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPut, path, body)
}

// Delete performs authenticated DELETE request
func (c *APIClient) Delete(path string) (*http.Response, error) {
	return c.do(http.MethodDelete, path, nil)
}

// NewTestMembro returns a valid member with an email unique to this run
func NewTestMembro() map[string]interface{} {
	return map[string]interface{}{
		"nome":           "Membro E2E",
		"email":          fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano()),
		"telefone":       "21987654321",
		"dataNascimento": "2002-05-20",
		"projeto":        models.ProjetoEsporte,
		"batizado":       false,
		"tipoMembro":     models.TipoMembroJovem,
		"endereco": map[string]string{
			"cidade": "Rio de Janeiro",
			"estado": "RJ",
		},
	}
}

// NewPresencaBatch builds a one-item attendance batch for today
func NewPresencaBatch(idMembro, nomeMembro string, presente bool) []map[string]interface{} {
	return []map[string]interface{}{{
		"idMembro":   idMembro,
		"nomeMembro": nomeMembro,
		"data":       time.Now().Format(time.RFC3339),
		"presente":   presente,
	}}
}

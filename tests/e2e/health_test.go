package e2e_test

import (
	"testing"

	"github.com/ministerio-jovem/app-frequencia/tests/config"
	"github.com/ministerio-jovem/app-frequencia/tests/fixtures"
)

// TestHealth verifies the health endpoint is responding
func TestHealth(t *testing.T) {
	cfg := loadConfig(t)
	client := fixtures.NewAPIClient(cfg, "")

	if err := fixtures.WaitForHealthy(t, client, cfg.HealthCheckTimeout); err != nil {
		t.Fatal(err)
	}
	fixtures.AssertHealthy(t, client)
}

// loadConfig skips the test when the E2E environment is not configured
func loadConfig(t *testing.T) *config.TestConfig {
	t.Helper()
	cfg, err := config.LoadTestConfig()
	if err != nil {
		t.Skipf("E2E environment not configured: %v", err)
	}
	return cfg
}

// authenticatedClient returns a client carrying a fresh token
func authenticatedClient(t *testing.T) *fixtures.APIClient {
	t.Helper()
	cfg := loadConfig(t)
	token, err := fixtures.GetAuthToken(cfg)
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	return fixtures.NewAPIClient(cfg, token)
}

package config

import (
	"fmt"
	"os"
)

// TestConfig holds configuration for E2E/smoke tests
type TestConfig struct {
	// API endpoint configuration
	BaseURL string // e.g., "http://localhost:5000"

	// Operator account used to obtain a token
	Email    string
	Password string

	// Test timeouts
	HealthCheckTimeout int // seconds
	APICallTimeout     int // seconds
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() (*TestConfig, error) {
	baseURL := os.Getenv("TEST_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("TEST_BASE_URL is required")
	}

	email := os.Getenv("TEST_EMAIL")
	if email == "" {
		return nil, fmt.Errorf("TEST_EMAIL is required")
	}

	password := os.Getenv("TEST_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("TEST_PASSWORD is required")
	}

	return &TestConfig{
		BaseURL:            baseURL,
		Email:              email,
		Password:           password,
		HealthCheckTimeout: 30,
		APICallTimeout:     10,
	}, nil
}

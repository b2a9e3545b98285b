package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// Embedded zone database so APP_TIMEZONE resolves on minimal images
	_ "time/tzdata"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port               int      `json:"port"`
	Environment        string   `json:"environment"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration (optional)
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Collection names
	MembroCollection   string `json:"mongo_membro_collection"`
	PresencaCollection string `json:"mongo_presenca_collection"`
	UsuarioCollection  string `json:"mongo_usuario_collection"`
	AuditLogCollection string `json:"mongo_audit_log_collection"`

	// Authentication
	JWTSecret          string        `json:"-"`
	JWTTTL             time.Duration `json:"jwt_ttl"`
	LoginMaxAttempts   int           `json:"login_max_attempts"`
	LoginAttemptWindow time.Duration `json:"login_attempt_window"`

	// Attendance
	Timezone            string         `json:"timezone"`
	Location            *time.Location `json:"-"`
	ReconcileMaxRetries int            `json:"reconcile_max_retries"`

	// Audit logging
	AuditLogsEnabled bool `json:"audit_logs_enabled"`
	AuditWorkerCount int  `json:"audit_worker_count"`
	AuditBufferSize  int  `json:"audit_buffer_size"`

	// Tracing
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	// PORT and MONGODB_URI have no defaults: the service refuses to start without them
	portValue := os.Getenv("PORT")
	if portValue == "" {
		return fmt.Errorf("PORT environment variable is required")
	}
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		return fmt.Errorf("MONGODB_URI environment variable is required")
	}

	environment := getEnvOrDefault("ENVIRONMENT", "development")

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if environment == "production" {
			return fmt.Errorf("JWT_SECRET environment variable is required in production")
		}
		jwtSecret = randomSecret()
	}

	jwtTTL, err := time.ParseDuration(getEnvOrDefault("JWT_TTL", "1h"))
	if err != nil {
		return fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	loginMaxAttempts, err := strconv.Atoi(getEnvOrDefault("LOGIN_MAX_ATTEMPTS", "5"))
	if err != nil {
		return fmt.Errorf("invalid LOGIN_MAX_ATTEMPTS: %w", err)
	}

	loginAttemptWindow, err := time.ParseDuration(getEnvOrDefault("LOGIN_ATTEMPT_WINDOW", "15m"))
	if err != nil {
		return fmt.Errorf("invalid LOGIN_ATTEMPT_WINDOW: %w", err)
	}

	timezone := getEnvOrDefault("APP_TIMEZONE", "America/Sao_Paulo")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	reconcileMaxRetries, err := strconv.Atoi(getEnvOrDefault("RECONCILE_MAX_RETRIES", "3"))
	if err != nil {
		return fmt.Errorf("invalid RECONCILE_MAX_RETRIES: %w", err)
	}

	auditLogsEnabled, err := strconv.ParseBool(getEnvOrDefault("AUDIT_LOGS_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_LOGS_ENABLED: %w", err)
	}

	auditWorkerCount, err := strconv.Atoi(getEnvOrDefault("AUDIT_WORKER_COUNT", "2"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_WORKER_COUNT: %w", err)
	}

	auditBufferSize, err := strconv.Atoi(getEnvOrDefault("AUDIT_BUFFER_SIZE", "256"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_BUFFER_SIZE: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:               port,
		Environment:        environment,
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		// MongoDB configuration
		MongoURI:      mongoURI,
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "frequencia"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", ""),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Collection names
		MembroCollection:   getEnvOrDefault("MONGODB_MEMBRO_COLLECTION", "membros"),
		PresencaCollection: getEnvOrDefault("MONGODB_PRESENCA_COLLECTION", "presencas"),
		UsuarioCollection:  getEnvOrDefault("MONGODB_USUARIO_COLLECTION", "usuarios"),
		AuditLogCollection: getEnvOrDefault("MONGODB_AUDIT_LOG_COLLECTION", "audit_logs"),

		// Authentication
		JWTSecret:          jwtSecret,
		JWTTTL:             jwtTTL,
		LoginMaxAttempts:   loginMaxAttempts,
		LoginAttemptWindow: loginAttemptWindow,

		// Attendance
		Timezone:            timezone,
		Location:            location,
		ReconcileMaxRetries: reconcileMaxRetries,

		// Audit logging
		AuditLogsEnabled: auditLogsEnabled,
		AuditWorkerCount: auditWorkerCount,
		AuditBufferSize:  auditBufferSize,

		// Tracing
		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// splitList splits a comma separated list, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// randomSecret generates a per-process signing secret for development.
// Tokens do not survive a restart when it is used.
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "development-secret"
	}
	return hex.EncodeToString(b)
}

package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/config"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestConfig returns a configuration with the default collection names and timezone
func TestConfig() *config.Config {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.UTC
	}
	return &config.Config{
		Port:                5000,
		Environment:         "test",
		MongoDatabase:       "frequencia_test",
		MembroCollection:    "membros",
		PresencaCollection:  "presencas",
		UsuarioCollection:   "usuarios",
		AuditLogCollection:  "audit_logs",
		JWTSecret:           "test-secret",
		JWTTTL:              time.Hour,
		LoginMaxAttempts:    5,
		LoginAttemptWindow:  15 * time.Minute,
		Timezone:            loc.String(),
		Location:            loc,
		ReconcileMaxRetries: 3,
		AuditLogsEnabled:    true,
		AuditWorkerCount:    1,
		AuditBufferSize:     16,
	}
}

// SetupMongo starts a MongoDB container and returns a fresh database with the
// production indexes. The test is skipped when no container provider is available.
func SetupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	require.NoError(t, err, "Failed to start MongoDB container")
	t.Cleanup(func() { _ = mongoContainer.Terminate(context.Background()) })

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err, "Failed to connect to MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, client.Ping(ctx, nil), "Failed to ping MongoDB")

	if config.AppConfig == nil {
		config.AppConfig = TestConfig()
	}
	config.AppConfig.MongoURI = mongoURI

	database := client.Database(config.AppConfig.MongoDatabase)
	require.NoError(t, config.EnsureIndexes(ctx, database), "Failed to create indexes")
	return database
}

// SetupRedis starts a Redis container and returns its connection URL
func SetupRedis(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	redisContainer, err := redis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = redisContainer.Terminate(context.Background()) })

	redisURI, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")
	return redisURI
}

// CleanupDatabase drops all collections in the test database
func CleanupDatabase(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx := context.Background()
	collections, err := db.ListCollectionNames(ctx, map[string]interface{}{})
	require.NoError(t, err, "Failed to list collections")

	for _, collection := range collections {
		err := db.Collection(collection).Drop(ctx)
		require.NoError(t, err, fmt.Sprintf("Failed to drop collection %s", collection))
	}
}

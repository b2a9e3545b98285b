package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB database handle
	MongoDB *mongo.Database
	// Redis client, nil when REDIS_URI is not configured
	Redis *redisclient.Client
)

// InitMongoDB connects to MongoDB, pings the primary and ensures indexes
func InitMongoDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := EnsureIndexes(ctx, MongoDB); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
		return err
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
	return nil
}

// DisconnectMongoDB closes the MongoDB client
func DisconnectMongoDB(ctx context.Context) error {
	if MongoDB == nil {
		return nil
	}
	return MongoDB.Client().Disconnect(ctx)
}

// InitRedis initializes the optional Redis connection. Without REDIS_URI it is a no-op.
func InitRedis() {
	if AppConfig.RedisURI == "" {
		logging.Logger.Info("REDIS_URI not set, login throttling falls back to in-process limiter")
		return
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis, continuing without it",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		_ = redisClient.Close()
		return
	}

	Redis = redisclient.NewClient(redisClient)
	logging.Logger.Info("connected to Redis", zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks the credentials in a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := "mongodb://"
	if strings.HasPrefix(uri, "mongodb+srv://") {
		scheme = "mongodb+srv://"
	}
	return scheme + "****:****@" + uri[at+1:]
}

// collectionIndexes lists the indexes each collection must carry
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		AppConfig.MembroCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_1").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "nome", Value: 1}},
				Options: options.Index().SetName("nome_1"),
			},
		},
		AppConfig.UsuarioCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_1").SetUnique(true),
			},
		},
		AppConfig.PresencaCollection: {
			// one attendance record per member; the reconcile upsert relies on it
			{
				Keys:    bson.D{{Key: "idMembro", Value: 1}},
				Options: options.Index().SetName("idMembro_1").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "presencas.data", Value: 1}},
				Options: options.Index().SetName("presencas_data_1"),
			},
		},
		AppConfig.AuditLogCollection: {
			{
				Keys:    bson.D{{Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("timestamp_-1"),
			},
			{
				Keys:    bson.D{{Key: "action", Value: 1}, {Key: "resource", Value: 1}},
				Options: options.Index().SetName("action_1_resource_1"),
			},
		},
	}
}

// EnsureIndexes creates the required indexes that don't exist yet
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	logger := logging.Logger.Named("database")
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for collectionName, models := range collectionIndexes() {
		if err := ensureCollectionIndexes(ctx, logger, db.Collection(collectionName), models); err != nil {
			return err
		}
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureCollectionIndexes creates the missing indexes of a single collection
func ensureCollectionIndexes(ctx context.Context, logger *logging.SafeLogger, collection *mongo.Collection, models []mongo.IndexModel) error {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes",
			zap.String("collection", collection.Name()),
			zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	existingIndexes := make(map[string]bool)
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if name, ok := index["name"].(string); ok {
			existingIndexes[name] = true
		}
	}

	created := 0
	for _, model := range models {
		name := ""
		if model.Options != nil && model.Options.Name != nil {
			name = *model.Options.Name
		}
		if existingIndexes[name] {
			continue
		}

		if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
			// another instance created it first
			if mongo.IsDuplicateKeyError(err) {
				logger.Info("index already exists (created by another instance)",
					zap.String("collection", collection.Name()),
					zap.String("index", name))
				continue
			}
			logger.Error("failed to create index",
				zap.String("collection", collection.Name()),
				zap.String("index", name),
				zap.Error(err))
			return err
		}
		created++
	}

	if created > 0 {
		logger.Info("created collection indexes",
			zap.String("collection", collection.Name()),
			zap.Int("count", created))
	} else {
		logger.Debug("collection indexes already exist",
			zap.String("collection", collection.Name()))
	}
	return nil
}

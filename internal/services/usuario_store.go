package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UsuarioStore persists operator accounts
type UsuarioStore interface {
	Insert(ctx context.Context, usuario *models.Usuario) error
	FindByEmail(ctx context.Context, email string) (*models.Usuario, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error)
	Count(ctx context.Context) (int64, error)
	Replace(ctx context.Context, usuario *models.Usuario) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoUsuarioStore is the MongoDB implementation of UsuarioStore
type MongoUsuarioStore struct {
	collection *mongo.Collection
}

// NewMongoUsuarioStore creates a store over the given collection
func NewMongoUsuarioStore(collection *mongo.Collection) *MongoUsuarioStore {
	return &MongoUsuarioStore{collection: collection}
}

func (s *MongoUsuarioStore) Insert(ctx context.Context, usuario *models.Usuario) error {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "insert", s.collection.Name())
	defer cleanup()

	result, err := utils.InsertOneWithTimeout(ctx, s.collection, usuario, utils.DefaultQueryTimeout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailInUse
		}
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("insert_usuario", "error").Inc()
		return fmt.Errorf("failed to insert usuario: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		usuario.ID = id
	}
	observability.DatabaseOperations.WithLabelValues("insert_usuario", "success").Inc()
	return nil
}

func (s *MongoUsuarioStore) FindByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUsuarioStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUsuarioStore) findOne(ctx context.Context, filter bson.M) (*models.Usuario, error) {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "find_one", s.collection.Name())
	defer cleanup()

	var usuario models.Usuario
	if err := utils.FindOneWithTimeout(ctx, s.collection, filter, &usuario, utils.DefaultQueryTimeout); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("failed to find usuario: %w", err)
	}
	return &usuario, nil
}

func (s *MongoUsuarioStore) Count(ctx context.Context) (int64, error) {
	count, err := utils.CountDocumentsWithTimeout(ctx, s.collection, bson.M{}, utils.DefaultQueryTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to count usuarios: %w", err)
	}
	return count, nil
}

func (s *MongoUsuarioStore) Replace(ctx context.Context, usuario *models.Usuario) error {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "replace", s.collection.Name())
	defer cleanup()

	result, err := utils.ReplaceOneWithTimeout(ctx, s.collection, bson.M{"_id": usuario.ID}, usuario, utils.DefaultQueryTimeout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailInUse
		}
		utils.RecordErrorInSpan(span, err, nil)
		return fmt.Errorf("failed to update usuario: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrUsuarioNotFound
	}
	return nil
}

func (s *MongoUsuarioStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "delete", s.collection.Name())
	defer cleanup()

	result, err := utils.DeleteOneWithTimeout(ctx, s.collection, bson.M{"_id": id}, utils.DefaultQueryTimeout)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return fmt.Errorf("failed to delete usuario: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrUsuarioNotFound
	}
	return nil
}

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MembroStore persists members. Insert and Replace report models.ErrEmailInUse
// when the unique email index rejects the write.
type MembroStore interface {
	Insert(ctx context.Context, membro *models.Membro) error
	FindAll(ctx context.Context) ([]models.Membro, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Membro, error)
	// ExistsByEmail reports whether another member than exclude uses email
	ExistsByEmail(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error)
	Replace(ctx context.Context, membro *models.Membro) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoMembroStore is the MongoDB implementation of MembroStore
type MongoMembroStore struct {
	collection *mongo.Collection
}

// NewMongoMembroStore creates a store over the given collection
func NewMongoMembroStore(collection *mongo.Collection) *MongoMembroStore {
	return &MongoMembroStore{collection: collection}
}

func (s *MongoMembroStore) Insert(ctx context.Context, membro *models.Membro) error {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "insert", s.collection.Name())
	defer cleanup()

	result, err := utils.InsertOneWithTimeout(ctx, s.collection, membro, utils.DefaultQueryTimeout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailInUse
		}
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("insert_membro", "error").Inc()
		return fmt.Errorf("failed to insert membro: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		membro.ID = id
	}
	observability.DatabaseOperations.WithLabelValues("insert_membro", "success").Inc()
	return nil
}

func (s *MongoMembroStore) FindAll(ctx context.Context) ([]models.Membro, error) {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "find_all", s.collection.Name())
	defer cleanup()

	membros := []models.Membro{}
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	if err := utils.FindAllWithTimeout(ctx, s.collection, bson.M{}, &membros, utils.DefaultQueryTimeout, opts); err != nil {
		return nil, fmt.Errorf("failed to list membros: %w", err)
	}
	return membros, nil
}

func (s *MongoMembroStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Membro, error) {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "find_by_id", s.collection.Name())
	defer cleanup()

	var membro models.Membro
	if err := utils.FindOneWithTimeout(ctx, s.collection, bson.M{"_id": id}, &membro, utils.DefaultQueryTimeout); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrMembroNotFound
		}
		return nil, fmt.Errorf("failed to find membro: %w", err)
	}
	return &membro, nil
}

func (s *MongoMembroStore) ExistsByEmail(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"email": email}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}

	count, err := utils.CountDocumentsWithTimeout(ctx, s.collection, filter, utils.DefaultQueryTimeout)
	if err != nil {
		return false, fmt.Errorf("failed to check membro email: %w", err)
	}
	return count > 0, nil
}

func (s *MongoMembroStore) Replace(ctx context.Context, membro *models.Membro) error {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "replace", s.collection.Name())
	defer cleanup()

	result, err := utils.ReplaceOneWithTimeout(ctx, s.collection, bson.M{"_id": membro.ID}, membro, utils.DefaultQueryTimeout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailInUse
		}
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("replace_membro", "error").Inc()
		return fmt.Errorf("failed to update membro: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrMembroNotFound
	}
	observability.DatabaseOperations.WithLabelValues("replace_membro", "success").Inc()
	return nil
}

func (s *MongoMembroStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "delete", s.collection.Name())
	defer cleanup()

	result, err := utils.DeleteOneWithTimeout(ctx, s.collection, bson.M{"_id": id}, utils.DefaultQueryTimeout)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("delete_membro", "error").Inc()
		return fmt.Errorf("failed to delete membro: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrMembroNotFound
	}
	observability.DatabaseOperations.WithLabelValues("delete_membro", "success").Inc()
	return nil
}

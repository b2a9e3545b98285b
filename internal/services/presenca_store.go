package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PresencaStore persists attendance records. SetMark and AppendMark are each a
// single conditional write, so concurrent callers never produce two marks for
// the same member and day.
type PresencaStore interface {
	// SetMark updates the presente flag of the member's mark inside [start, end).
	// It reports false when the member has no mark in that window.
	SetMark(ctx context.Context, idMembro string, start, end time.Time, presente bool) (bool, error)
	// AppendMark appends a mark dated start, creating the record with nomeMembro
	// if needed, but only while no mark exists in [start, end). It reports false
	// when another writer got there first.
	AppendMark(ctx context.Context, idMembro, nomeMembro string, start, end time.Time, presente bool) (bool, error)
	FindWithMarkBetween(ctx context.Context, start, end time.Time) ([]models.Presenca, error)
	FindAll(ctx context.Context) ([]models.Presenca, error)
	FindByMembro(ctx context.Context, idMembro string) (*models.Presenca, error)
}

// MongoPresencaStore is the MongoDB implementation of PresencaStore. It relies
// on the unique index on idMembro.
type MongoPresencaStore struct {
	collection *mongo.Collection
}

// NewMongoPresencaStore creates a store over the given collection
func NewMongoPresencaStore(collection *mongo.Collection) *MongoPresencaStore {
	return &MongoPresencaStore{collection: collection}
}

// markInWindow matches an attendance array holding a mark in [start, end)
func markInWindow(start, end time.Time) bson.M {
	return bson.M{"$elemMatch": bson.M{"data": bson.M{"$gte": start, "$lt": end}}}
}

func (s *MongoPresencaStore) SetMark(ctx context.Context, idMembro string, start, end time.Time, presente bool) (bool, error) {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "set_mark", s.collection.Name())
	defer cleanup()

	filter := bson.M{"idMembro": idMembro, "presencas": markInWindow(start, end)}
	update := bson.M{"$set": bson.M{"presencas.$.presente": presente}}

	result, err := utils.UpdateOneWithTimeout(ctx, s.collection, filter, update, utils.DefaultQueryTimeout)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("set_mark", "error").Inc()
		return false, fmt.Errorf("failed to set attendance mark: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("set_mark", "success").Inc()
	return result.MatchedCount > 0, nil
}

func (s *MongoPresencaStore) AppendMark(ctx context.Context, idMembro, nomeMembro string, start, end time.Time, presente bool) (bool, error) {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "append_mark", s.collection.Name())
	defer cleanup()

	filter := bson.M{
		"idMembro":  idMembro,
		"presencas": bson.M{"$not": markInWindow(start, end)},
	}
	update := bson.M{
		"$push":        bson.M{"presencas": models.MarcacaoDiaria{Data: start, Presente: presente}},
		"$setOnInsert": bson.M{"nomeMembro": nomeMembro},
	}

	result, err := utils.UpsertOneWithTimeout(ctx, s.collection, filter, update, utils.DefaultQueryTimeout)
	if err != nil {
		// the record exists and already has a mark for the day, or a concurrent
		// upsert created it first
		if mongo.IsDuplicateKeyError(err) {
			observability.DatabaseOperations.WithLabelValues("append_mark", "conflict").Inc()
			return false, nil
		}
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("append_mark", "error").Inc()
		return false, fmt.Errorf("failed to append attendance mark: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("append_mark", "success").Inc()
	return result.MatchedCount > 0 || result.UpsertedCount > 0, nil
}

func (s *MongoPresencaStore) FindWithMarkBetween(ctx context.Context, start, end time.Time) ([]models.Presenca, error) {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "find_by_day", s.collection.Name())
	defer cleanup()

	return s.find(ctx, bson.M{"presencas": markInWindow(start, end)})
}

func (s *MongoPresencaStore) FindAll(ctx context.Context) ([]models.Presenca, error) {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "find_all", s.collection.Name())
	defer cleanup()

	return s.find(ctx, bson.M{})
}

func (s *MongoPresencaStore) FindByMembro(ctx context.Context, idMembro string) (*models.Presenca, error) {
	var presenca models.Presenca
	err := utils.FindOneWithTimeout(ctx, s.collection, bson.M{"idMembro": idMembro}, &presenca, utils.DefaultQueryTimeout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}
	return &presenca, nil
}

func (s *MongoPresencaStore) find(ctx context.Context, filter bson.M) ([]models.Presenca, error) {
	presencas := []models.Presenca{}
	opts := options.Find().SetSort(bson.D{{Key: "nomeMembro", Value: 1}})
	if err := utils.FindAllWithTimeout(ctx, s.collection, filter, &presencas, utils.DefaultQueryTimeout, opts); err != nil {
		observability.DatabaseOperations.WithLabelValues("find_presencas", "error").Inc()
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return presencas, nil
}

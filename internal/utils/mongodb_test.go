package utils

import (
	"context"
	"testing"
	"time"

	"github.com/ministerio-jovem/app-frequencia/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupMongoDBUtilsTest returns an empty collection in a throwaway database
func setupMongoDBUtilsTest(t *testing.T) *mongo.Collection {
	t.Helper()
	db := tests.SetupMongo(t)
	collection := db.Collection("test_mongodb_utils")
	_ = collection.Drop(context.Background())
	return collection
}

func TestFindOneWithTimeout(t *testing.T) {
	collection := setupMongoDBUtilsTest(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		_, err := collection.InsertOne(ctx, bson.M{"_id": "m1", "nome": "Ana", "idade": 21})
		require.NoError(t, err)

		var result bson.M
		err = FindOneWithTimeout(ctx, collection, bson.M{"_id": "m1"}, &result, 5*time.Second)
		require.NoError(t, err)

		assert.Equal(t, "Ana", result["nome"])
		assert.Equal(t, int32(21), result["idade"])
	})

	t.Run("NotFound", func(t *testing.T) {
		var result bson.M
		err := FindOneWithTimeout(ctx, collection, bson.M{"_id": "nonexistent"}, &result, DefaultQueryTimeout)
		assert.Equal(t, mongo.ErrNoDocuments, err)
	})
}

func TestFindAllWithTimeout(t *testing.T) {
	collection := setupMongoDBUtilsTest(t)
	ctx := context.Background()

	_, err := collection.InsertMany(ctx, []interface{}{
		bson.M{"nome": "Carla", "projeto": "midia"},
		bson.M{"nome": "Ana", "projeto": "midia"},
		bson.M{"nome": "Bruno", "projeto": "esporte"},
	})
	require.NoError(t, err)

	var results []bson.M
	err = FindAllWithTimeout(ctx, collection, bson.M{"projeto": "midia"}, &results, 5*time.Second,
		options.Find().SetSort(bson.D{{Key: "nome", Value: 1}}))
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Ana", results[0]["nome"])
	assert.Equal(t, "Carla", results[1]["nome"])
}

func TestUpdateOneWithTimeout(t *testing.T) {
	collection := setupMongoDBUtilsTest(t)
	ctx := context.Background()

	_, err := collection.InsertOne(ctx, bson.M{"_id": "m1", "presente": false})
	require.NoError(t, err)

	result, err := UpdateOneWithTimeout(ctx, collection, bson.M{"_id": "m1"}, bson.M{"$set": bson.M{"presente": true}}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(1), result.ModifiedCount)

	result, err = UpdateOneWithTimeout(ctx, collection, bson.M{"_id": "missing"}, bson.M{"$set": bson.M{"presente": true}}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.MatchedCount)
}

func TestUpsertOneWithTimeout(t *testing.T) {
	collection := setupMongoDBUtilsTest(t)
	ctx := context.Background()

	update := bson.M{"$setOnInsert": bson.M{"nomeMembro": "Ana"}, "$push": bson.M{"presencas": bson.M{"presente": true}}}

	result, err := UpsertOneWithTimeout(ctx, collection, bson.M{"idMembro": "m1"}, update, 5*time.Second)
	require.NoError(t, err)
	assert.NotNil(t, result.UpsertedID)

	result, err = UpsertOneWithTimeout(ctx, collection, bson.M{"idMembro": "m1"}, update, 5*time.Second)
	require.NoError(t, err)
	assert.Nil(t, result.UpsertedID)
	assert.Equal(t, int64(1), result.MatchedCount)

	count, err := CountDocumentsWithTimeout(ctx, collection, bson.M{"idMembro": "m1"}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReplaceInsertDeleteWithTimeout(t *testing.T) {
	collection := setupMongoDBUtilsTest(t)
	ctx := context.Background()

	inserted, err := InsertOneWithTimeout(ctx, collection, bson.M{"nome": "Ana"}, 5*time.Second)
	require.NoError(t, err)
	filter := bson.M{"_id": inserted.InsertedID}

	replaced, err := ReplaceOneWithTimeout(ctx, collection, filter, bson.M{"nome": "Ana Lima"}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), replaced.ModifiedCount)

	var result bson.M
	require.NoError(t, FindOneWithTimeout(ctx, collection, filter, &result, 5*time.Second))
	assert.Equal(t, "Ana Lima", result["nome"])

	deleted, err := DeleteOneWithTimeout(ctx, collection, filter, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.DeletedCount)

	deleted, err = DeleteOneWithTimeout(ctx, collection, filter, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted.DeletedCount)
}

func TestWithTimeout_ExpiredContext(t *testing.T) {
	collection := setupMongoDBUtilsTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CountDocumentsWithTimeout(ctx, collection, bson.M{}, 5*time.Second)
	assert.Error(t, err)
}

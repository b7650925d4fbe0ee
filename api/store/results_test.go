/* results_test.go
 * Contains unit tests for results.go using mtest mock deployments
 */

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// region StoreResults tests

func TestStoreResults(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts results with ttl", func(mt *mtest.T) {
		store := NewTestStore(mt.Client, mt.DB, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := store.StoreResults(Results{Page: "Test/Page", Tree: CreateSampleBracket(), OpenDepth: 0})
		require.NoError(t, err)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "update", started.CommandName)
	})

	mt.Run("rejects empty results", func(mt *mtest.T) {
		store := NewTestStore(mt.Client, mt.DB, mt.Coll)
		assert.Error(t, store.StoreResults(Results{}))
	})
}

// endregion

// region GetResults tests

func TestGetResults(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes results", func(mt *mtest.T) {
		store := NewTestStore(mt.Client, mt.DB, mt.Coll)
		ttl := time.Now().Add(time.Hour).Unix()
		doc := bson.D{
			{Key: "pool", Value: "test_pool"},
			{Key: "page", Value: "Test/Page"},
			{Key: "bracket", Value: bson.D{
				{Key: "winner", Value: bson.D{{Key: "winner", Value: "a"}, {Key: "loser", Value: "c"}}},
				{Key: "loser", Value: bson.D{{Key: "winner", Value: "b"}, {Key: "loser", Value: "d"}}},
			}},
			{Key: "opendepth", Value: 0},
			{Key: "ttl", Value: ttl},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.results", mtest.FirstBatch, doc))

		results, err := store.GetResults()

		require.NoError(t, err)
		assert.Equal(t, "Test/Page", results.Page)
		assert.Equal(t, 0, results.OpenDepth)
		assert.Equal(t, ttl, results.TTL)
		assert.False(t, results.Expired(time.Now()))
		assert.True(t, CreateSampleBracket().Equal(results.Tree))
	})

	mt.Run("decodes decided games", func(mt *mtest.T) {
		store := NewTestStore(mt.Client, mt.DB, mt.Coll)
		doc := bson.D{
			{Key: "pool", Value: "test_pool"},
			{Key: "bracket", Value: bson.M(CreateSampleBracket().ToMapping())},
			{Key: "opendepth", Value: 1},
			{Key: "decided", Value: bson.A{false, true, false}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.results", mtest.FirstBatch, doc))

		results, err := store.GetResults()

		require.NoError(t, err)
		assert.Equal(t, 1, results.OpenDepth)
		assert.Equal(t, []bool{false, true, false}, results.Decided)
	})

	mt.Run("returns ErrNotFound", func(mt *mtest.T) {
		store := NewTestStore(mt.Client, mt.DB, mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.results", mtest.FirstBatch))

		_, err := store.GetResults()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("wraps database error", func(mt *mtest.T) {
		store := NewTestStore(mt.Client, mt.DB, mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		_, err := store.GetResults()
		assert.ErrorContains(t, err, "error fetching results from db")
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

// endregion

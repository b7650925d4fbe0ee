/* test_helpers.go
 * Contains test helper functions for store package tests
 */

package store

import (
	"go.mongodb.org/mongo-driver/mongo"

	"bracket-bot/api/bracket"
)

// NewTestStore returns a Store whose collections are all coll. Used with mtest mock deployments.
func NewTestStore(client *mongo.Client, db *mongo.Database, coll *mongo.Collection) *Store {
	s := &Store{
		Client:     client,
		Database:   db,
		Pool:       "test_pool",
		Page:       "Test/Tournament/2025",
		ResultsTTL: DefaultResultsTTL,
	}
	s.Collections.Entries = coll
	s.Collections.Results = coll
	s.Collections.Leaderboard = coll
	return s
}

// CreateSampleBracket creates a four team bracket: a over c, b over d, a over b
func CreateSampleBracket() *bracket.MatchupTree {
	return bracket.MustNew(
		bracket.MustNew(bracket.Team("a"), bracket.Team("c")),
		bracket.MustNew(bracket.Team("b"), bracket.Team("d")),
	)
}

// CreateSampleEntry creates an Entry holding CreateSampleBracket
func CreateSampleEntry(userID string, username string) Entry {
	return Entry{
		UserId:   userID,
		Username: username,
		Bracket:  CreateSampleBracket(),
	}
}

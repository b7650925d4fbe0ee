/* leaderboard.go
 * Contains the methods for interacting with the leaderboard collection
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchLeaderboardFromDB returns the pool's leaderboard from the db
// Postconditions: Returns the leaderboard, ErrNotFound if none has been generated, or another error if it occurs
func (s *Store) FetchLeaderboardFromDB() (Leaderboard, error) {
	var res Leaderboard
	err := s.Collections.Leaderboard.FindOne(context.TODO(), bson.D{{Key: "pool", Value: s.Pool}}).Decode(&res)
	if err != nil {
		return Leaderboard{}, notFound(err, "failed to fetch leaderboard from database")
	}
	return res, nil
}

// StoreLeaderboard updates the leaderboard stored in the DB
// Preconditions: Receives a leaderboard with at least one entry
// Postconditions: Inserts or replaces the pool's leaderboard and returns nil, or an error if it occurs
func (s *Store) StoreLeaderboard(leaderboard Leaderboard) error {
	if len(leaderboard.Entries) == 0 {
		return fmt.Errorf("leaderboard is empty")
	}
	leaderboard.Pool = s.Pool

	filter := bson.M{"pool": s.Pool}
	update := bson.D{{Key: "$set", Value: leaderboard}}

	_, err := s.Collections.Leaderboard.UpdateOne(context.TODO(), filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("leaderboard update failed: %w", err)
	}
	return nil
}

/* results.go
 * Contains the methods for interacting with the results collection
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreResults stores the pool's results bracket. The TTL is set from ResultsTTL when it is not already set.
// Preconditions: Receives Results with a non nil Tree
// Postconditions: Inserts or replaces the pool's results, or returns an error if it occurs
func (s *Store) StoreResults(results Results) error {
	if results.Tree == nil {
		return fmt.Errorf("results have no bracket")
	}
	now := time.Now()
	if results.TTL == 0 {
		results.TTL = now.Add(s.ResultsTTL).Unix()
	}

	record := resultsRecord{
		Pool:      s.Pool,
		Page:      results.Page,
		Bracket:   bson.M(results.Tree.ToMapping()),
		OpenDepth: results.OpenDepth,
		Decided:   results.Decided,
		TTL:       results.TTL,
		UpdatedAt: now,
	}
	filter := bson.M{"pool": s.Pool}
	update := bson.M{"$set": record}

	_, err := s.Collections.Results.UpdateOne(context.TODO(), filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}
	return nil
}

// GetResults retrieves the pool's results bracket from the DB
// Postconditions: Returns the results, ErrNotFound if none are stored, or another error if it occurs
func (s *Store) GetResults() (Results, error) {
	var record resultsRecord
	err := s.Collections.Results.FindOne(context.TODO(), bson.M{"pool": s.Pool}).Decode(&record)
	if err != nil {
		return Results{}, notFound(err, "error fetching results from db")
	}
	return record.toResults()
}

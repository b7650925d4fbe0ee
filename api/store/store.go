/* store.go
 * Contains the store struct and NewStore function. The methods for this package are split by collection:
 * entries.go, results.go and leaderboard.go. Every document is keyed by the pool it belongs to, so several pools
 * can share one database
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultResultsTTL is how long stored results are considered current before they are fetched again
const DefaultResultsTTL = 10 * time.Minute

var ErrNotFound = errors.New("document not found")

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Pool        string
	Page        string
	ResultsTTL  time.Duration
	Collections struct {
		Entries     *mongo.Collection
		Results     *mongo.Collection
		Leaderboard *mongo.Collection
	}
}

// NewStore connects to Mongo and returns a Store for a single pool
// Preconditions: Receives strings containing the following: dbName, mongoURI, pool and the Liquipedia page that
// holds the pool's results (may be empty when results are loaded from documents)
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string, pool string, page string) (*Store, error) {
	if pool == "" {
		return nil, fmt.Errorf("pool cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:     client,
		Database:   db,
		Pool:       pool,
		Page:       page,
		ResultsTTL: DefaultResultsTTL,
	}
	s.Collections.Entries = db.Collection("entries")
	s.Collections.Results = db.Collection("results")
	s.Collections.Leaderboard = db.Collection("leaderboard")
	return s, nil
}

// notFound converts mongo.ErrNoDocuments into ErrNotFound and wraps every other error with msg
func notFound(err error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

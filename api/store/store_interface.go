/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"
	"time"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	StoreEntry(entry Entry) error
	GetEntry(userID string) (Entry, error)
	GetAllEntries() ([]Entry, error)
	StoreResults(results Results) error
	GetResults() (Results, error)
	StoreLeaderboard(leaderboard Leaderboard) error
	FetchLeaderboardFromDB() (Leaderboard, error)

	// Getter methods for accessing fields
	GetPool() string
	GetPage() string
	GetResultsTTL() time.Duration
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetPool returns the name of the pool this store serves
func (s *Store) GetPool() string {
	return s.Pool
}

// GetPage returns the Liquipedia page path
func (s *Store) GetPage() string {
	return s.Page
}

func (s *Store) GetResultsTTL() time.Duration {
	return s.ResultsTTL
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}

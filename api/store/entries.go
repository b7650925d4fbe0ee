/* entries.go
 * Contains the methods for interacting with the entries collection
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreEntry stores a user's predicted bracket, replacing any bracket they already have in the pool
// Preconditions: Receives an Entry with a non nil Bracket
// Postconditions: Inserts or updates the user's entry, or returns an error if the operation was unsuccessful
func (s *Store) StoreEntry(entry Entry) error {
	if entry.Bracket == nil {
		return fmt.Errorf("entry for %s has no bracket", entry.UserId)
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}

	record := entryRecord{
		Pool:      s.Pool,
		UserId:    entry.UserId,
		Username:  entry.Username,
		EntryId:   entry.EntryId,
		Bracket:   bson.M(entry.Bracket.ToMapping()),
		UpdatedAt: entry.UpdatedAt,
	}
	filter := bson.M{"pool": s.Pool, "userid": entry.UserId}
	update := bson.M{"$set": record}

	_, err := s.Collections.Entries.UpdateOne(context.TODO(), filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store entry for %s: %w", entry.UserId, err)
	}
	return nil
}

// GetEntry does DB lookup and gets the entry for a user
// Preconditions: Receives the user's id
// Postconditions: Returns the user's entry, ErrNotFound if they have none, or another error if it occurs
func (s *Store) GetEntry(userID string) (Entry, error) {
	var record entryRecord
	err := s.Collections.Entries.FindOne(context.TODO(), bson.M{"pool": s.Pool, "userid": userID}).Decode(&record)
	if err != nil {
		return Entry{}, notFound(err, fmt.Sprintf("error fetching entry for %s", userID))
	}
	return record.toEntry()
}

// GetAllEntries gets every entry in the pool. Used in leaderboard calculations.
func (s *Store) GetAllEntries() ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	cursor, err := s.Collections.Entries.Find(context.TODO(), bson.D{{Key: "pool", Value: s.Pool}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching entries from db: %w", err)
	}

	var records []entryRecord
	if err = cursor.All(context.TODO(), &records); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of entries: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entry, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

/* prediction.go
 * Contains the logic for generating the entry stored for a user
 */

package logic

import (
	"errors"
	"fmt"
	"time"

	"bracket-bot/api/bracket"
	"bracket-bot/api/shared"
	"bracket-bot/api/store"
)

// ErrDifferentBracket is returned when a predicted bracket is not drawn over the same first round as the results
var ErrDifferentBracket = errors.New("bracket does not match the pool's first round")

// GenerateEntry builds the entry to be stored for a user
// Preconditions: Receives the user, the bracket challenge entry id (empty for uploaded documents), the predicted
// bracket and the pool's results bracket (nil if no results are known yet)
// Postconditions: Returns the entry, or ErrDifferentBracket if the prediction's first round differs from the results
func GenerateEntry(user shared.User, entryID string, prediction *bracket.MatchupTree, results *bracket.MatchupTree) (store.Entry, error) {
	if prediction == nil {
		return store.Entry{}, fmt.Errorf("no bracket provided")
	}
	if results != nil && !prediction.IsSameBase(results) {
		return store.Entry{}, ErrDifferentBracket
	}

	return store.Entry{
		UserId:    user.UserId,
		Username:  user.Username,
		EntryId:   entryID,
		Bracket:   prediction,
		UpdatedAt: time.Now(),
	}, nil
}

/* models.go
 * This file contains the errors and interfaces used by api consumers
 */

package api

import (
	"context"
	"errors"

	"bracket-bot/api/bracket"
	"bracket-bot/api/external"
	"bracket-bot/api/logic"
)

var (
	ErrNoResults        = errors.New("no results are available for this pool yet")
	ErrNoEntry          = errors.New("no bracket has been set")
	ErrNoLeaderboard    = errors.New("the leaderboard has not been generated yet")
	ErrNoDocStore       = errors.New("no document store is configured")
	ErrUnknownTeam      = errors.New("team is not a contender")
	ErrTooEarly         = errors.New("too early to enumerate scenarios for team")
	ErrInvalidDocument  = errors.New("invalid bracket document")
	ErrDifferentBracket = logic.ErrDifferentBracket
)

// Fetcher is the subset of the external client used by the API. *external.Client implements it.
type Fetcher interface {
	FetchResults(ctx context.Context, page string) (*external.Results, error)
	FetchEntry(ctx context.Context, entryID string) (*bracket.MatchupTree, error)
	FetchEntries(ctx context.Context, entryIDs map[string]string) (map[string]*bracket.MatchupTree, error)
}

var _ Fetcher = (*external.Client)(nil)

/* entries.go
 * Contains the API methods for setting, checking and refreshing user entries
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bracket-bot/api/bracket"
	"bracket-bot/api/logic"
	"bracket-bot/api/shared"
	"bracket-bot/api/store"
)

// SetUserBracket scrapes a bracket challenge entry and stores it as the user's bracket.
// Preconditions: Receives the user and an entry id or entry link
// Postconditions: Stores the entry, or returns an error. ErrDifferentBracket is returned if the entry's first
// round is not the pool's first round.
func (a *API) SetUserBracket(ctx context.Context, user shared.User, input string) error {
	entryID, err := logic.ParseEntryId(input)
	if err != nil {
		return err
	}
	if a.Fetcher == nil {
		return fmt.Errorf("no bracket challenge source is configured")
	}

	tree, err := a.Fetcher.FetchEntry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("error fetching entry %s: %w", entryID, err)
	}
	return a.saveEntry(ctx, user, entryID, tree)
}

// SetUserBracketDocument stores an uploaded bracket document as the user's bracket
func (a *API) SetUserBracketDocument(ctx context.Context, user shared.User, data []byte) error {
	tree, err := bracket.FromDocument(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return a.saveEntry(ctx, user, "", tree)
}

func (a *API) saveEntry(ctx context.Context, user shared.User, entryID string, tree *bracket.MatchupTree) error {
	var base *bracket.MatchupTree
	results, err := a.Results(ctx)
	switch {
	case err == nil:
		base = results.Tree
	case !errors.Is(err, ErrNoResults):
		return err
	}

	entry, err := logic.GenerateEntry(user, entryID, tree, base)
	if err != nil {
		return err
	}
	if err := a.Store.StoreEntry(entry); err != nil {
		return err
	}
	a.Log.Infow("stored entry", "pool", a.Store.GetPool(), "user", user.Username, "entryId", entryID)
	return nil
}

// CheckBracket reports a user's score round by round and the best score still reachable
// Preconditions: Receives the user
// Postconditions: Returns the report, ErrNoEntry if the user has no bracket, or ErrNoResults if the pool has
// no results
func (a *API) CheckBracket(ctx context.Context, user shared.User) (string, error) {
	entry, err := a.Store.GetEntry(user.UserId)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrNoEntry
	} else if err != nil {
		return "", err
	}

	results, err := a.Results(ctx)
	if err != nil {
		return "", err
	}

	report, confirmed, err := logic.BuildReport(entry.Bracket, results.Tree, results.OpenDepth)
	if err != nil {
		return "", err
	}

	best := confirmed
	if depth := a.scenarioDepth(results); depth >= 0 {
		scores, err := a.Engine.EnumerateParallelFixed(ctx, results.Tree, entry.Bracket, depth, results.Fixed(depth), 0)
		if err != nil {
			return "", err
		}
		for _, s := range scores {
			best = max(best, s)
		}
	}
	return fmt.Sprintf("%s\nBest possible: %s", report, logic.FormatPoints(best)), nil
}

// RefreshEntries scrapes every entry that came from the bracket challenge again, picking up edits made before
// the tournament locked
// Postconditions: Returns the number of entries updated, or an error if any scrape or write fails
func (a *API) RefreshEntries(ctx context.Context) (int, error) {
	if a.Fetcher == nil {
		return 0, fmt.Errorf("no bracket challenge source is configured")
	}
	entries, err := a.Store.GetAllEntries()
	if err != nil {
		return 0, err
	}

	ids := make(map[string]string)
	byUser := make(map[string]store.Entry)
	for _, entry := range entries {
		if entry.EntryId == "" {
			continue
		}
		ids[entry.UserId] = entry.EntryId
		byUser[entry.UserId] = entry
	}
	if len(ids) == 0 {
		return 0, nil
	}

	trees, err := a.Fetcher.FetchEntries(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("error refreshing entries: %w", err)
	}

	updated := 0
	for userID, tree := range trees {
		entry := byUser[userID]
		if entry.Bracket != nil && entry.Bracket.Equal(tree) {
			continue
		}
		entry.Bracket = tree
		entry.UpdatedAt = time.Now()
		if err := a.Store.StoreEntry(entry); err != nil {
			return updated, err
		}
		updated++
	}
	a.Log.Infow("refreshed entries", "pool", a.Store.GetPool(), "scraped", len(trees), "updated", updated)
	return updated, nil
}

// ExportEntries saves every entry's bracket to the document store, named by user id
func (a *API) ExportEntries(ctx context.Context) (int, error) {
	if a.Docs == nil {
		return 0, ErrNoDocStore
	}
	entries, err := a.Store.GetAllEntries()
	if err != nil {
		return 0, err
	}
	for i, entry := range entries {
		if err := a.Docs.Save(ctx, entry.UserId, entry.Bracket); err != nil {
			return i, fmt.Errorf("error exporting entry for %s: %w", entry.Username, err)
		}
	}
	return len(entries), nil
}

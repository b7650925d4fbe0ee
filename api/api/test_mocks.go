/* test_mocks.go
 * Contains mock structures for testing the API package
 */

package api

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"bracket-bot/api/bracket"
	"bracket-bot/api/external"
	"bracket-bot/api/store"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data
	Entries     map[string]store.Entry
	Results     *store.Results
	Leaderboard *store.Leaderboard

	// Error injection for testing error paths
	StoreEntryError             error
	GetEntryError               error
	GetAllEntriesError          error
	StoreResultsError           error
	GetResultsError             error
	StoreLeaderboardError       error
	FetchLeaderboardFromDBError error

	Pool       string
	Page       string
	ResultsTTL time.Duration

	StoreResultsCalls int
}

// mockClient implements the minimal client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

// NewMockStore creates a new MockStore with default values
func NewMockStore(page string) *MockStore {
	return &MockStore{
		Entries:    make(map[string]store.Entry),
		Pool:       "test_pool",
		Page:       page,
		ResultsTTL: store.DefaultResultsTTL,
	}
}

func (m *MockStore) StoreEntry(entry store.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreEntryError != nil {
		return m.StoreEntryError
	}
	m.Entries[entry.UserId] = entry
	return nil
}

func (m *MockStore) GetEntry(userID string) (store.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEntryError != nil {
		return store.Entry{}, m.GetEntryError
	}
	entry, ok := m.Entries[userID]
	if !ok {
		return store.Entry{}, fmt.Errorf("no entry for %s: %w", userID, store.ErrNotFound)
	}
	return entry, nil
}

func (m *MockStore) GetAllEntries() ([]store.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllEntriesError != nil {
		return nil, m.GetAllEntriesError
	}
	entries := make([]store.Entry, 0, len(m.Entries))
	for _, entry := range m.Entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Username < entries[j].Username })
	return entries, nil
}

func (m *MockStore) StoreResults(results store.Results) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreResultsCalls++
	if m.StoreResultsError != nil {
		return m.StoreResultsError
	}
	if results.TTL == 0 {
		results.TTL = time.Now().Add(m.ResultsTTL).Unix()
	}
	m.Results = &results
	return nil
}

// GetResults returns a copy of the stored results so callers cannot mutate the stored tree
func (m *MockStore) GetResults() (store.Results, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetResultsError != nil {
		return store.Results{}, m.GetResultsError
	}
	if m.Results == nil {
		return store.Results{}, fmt.Errorf("error fetching results from db: %w", store.ErrNotFound)
	}
	results := *m.Results
	results.Tree = results.Tree.Clone()
	results.Decided = slices.Clone(results.Decided)
	return results, nil
}

func (m *MockStore) StoreLeaderboard(leaderboard store.Leaderboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreLeaderboardError != nil {
		return m.StoreLeaderboardError
	}
	m.Leaderboard = &leaderboard
	return nil
}

func (m *MockStore) FetchLeaderboardFromDB() (store.Leaderboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchLeaderboardFromDBError != nil {
		return store.Leaderboard{}, m.FetchLeaderboardFromDBError
	}
	if m.Leaderboard == nil {
		return store.Leaderboard{}, fmt.Errorf("error fetching leaderboard: %w", store.ErrNotFound)
	}
	return *m.Leaderboard, nil
}

func (m *MockStore) GetPool() string {
	return m.Pool
}

func (m *MockStore) GetPage() string {
	return m.Page
}

func (m *MockStore) GetResultsTTL() time.Duration {
	return m.ResultsTTL
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// MockFetcher implements Fetcher with canned brackets
type MockFetcher struct {
	Results *external.Results
	Entries map[string]*bracket.MatchupTree // keyed by entry id

	FetchResultsError error
	FetchEntryError   error

	FetchResultsCalls int
}

func (m *MockFetcher) FetchResults(ctx context.Context, page string) (*external.Results, error) {
	m.FetchResultsCalls++
	if m.FetchResultsError != nil {
		return nil, m.FetchResultsError
	}
	if m.Results == nil {
		return nil, fmt.Errorf("no results for %s", page)
	}
	r := *m.Results
	r.Page = page
	r.Tree = r.Tree.Clone()
	return &r, nil
}

func (m *MockFetcher) FetchEntry(ctx context.Context, entryID string) (*bracket.MatchupTree, error) {
	if m.FetchEntryError != nil {
		return nil, m.FetchEntryError
	}
	tree, ok := m.Entries[entryID]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", entryID, external.ErrUnexpectedStatus)
	}
	return tree.Clone(), nil
}

func (m *MockFetcher) FetchEntries(ctx context.Context, entryIDs map[string]string) (map[string]*bracket.MatchupTree, error) {
	out := make(map[string]*bracket.MatchupTree, len(entryIDs))
	for user, entryID := range entryIDs {
		tree, err := m.FetchEntry(ctx, entryID)
		if err != nil {
			return nil, err
		}
		out[user] = tree
	}
	return out, nil
}

/* api.go
 * This file contains the API struct and the public methods for the pool's results. Entries are handled in
 * entries.go and the leaderboard in leaderboard.go. Consumers (the bot and the web server) should only call the
 * methods of this package, not the sub packages directly.
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"bracket-bot/api/bracket"
	"bracket-bot/api/docstore"
	"bracket-bot/api/external"
	"bracket-bot/api/logic"
	"bracket-bot/api/scenario"
	"bracket-bot/api/store"
	"bracket-bot/config"
)

// API provides methods for interacting with the bracket bot data layer
type API struct {
	Store         store.Interface
	Fetcher       Fetcher
	Docs          docstore.Interface
	Engine        *scenario.Engine
	ScenarioDepth int
	Log           *zap.SugaredLogger

	// serializes leaderboard generation
	mu sync.Mutex
}

// NewAPI creates a new API instance from the loaded configuration
// Preconditions: Receives a validated config and a logger
// Postconditions: Returns the API connected to Mongo, or an error if any component could not be created
func NewAPI(cfg *config.Config, logger *zap.SugaredLogger) (*API, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.ScenarioDepth > scenario.DefaultMaxDepth {
		return nil, fmt.Errorf("scenario depth %d is above the maximum of %d", cfg.ScenarioDepth, scenario.DefaultMaxDepth)
	}

	s, err := store.NewStore(cfg.DBName, cfg.MongoURI, cfg.Pool, cfg.LiquipediaPage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	client := external.NewClient(external.Options{
		EntryURL: cfg.EntryURL,
		Wiki:     cfg.LiquipediaWiki,
		APIKey:   cfg.LiquipediaAPIKey,
		Rounds:   cfg.Rounds,
	})

	var docs docstore.Interface
	switch {
	case cfg.S3Bucket != "":
		docs, err = docstore.NewS3Store(context.TODO(), cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize document store: %w", err)
		}
	case cfg.DataDir != "":
		docs = docstore.NewFileStore(cfg.DataDir)
	}

	return New(s, client, docs, cfg.ScenarioDepth, logger), nil
}

// New assembles an API from already constructed components. docs may be nil.
func New(s store.Interface, fetcher Fetcher, docs docstore.Interface, scenarioDepth int, logger *zap.SugaredLogger) *API {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &API{
		Store:         s,
		Fetcher:       fetcher,
		Docs:          docs,
		Engine:        scenario.NewEngine(),
		ScenarioDepth: scenarioDepth,
		Log:           logger,
	}
}

// Close disconnects from the database
func (a *API) Close(ctx context.Context) error {
	return a.Store.GetClient().Disconnect(ctx)
}

// Results returns the pool's current results. Results fetched from Liquipedia are fetched again once they
// expire; if that fails the stored results are returned. Results loaded from a document never expire.
// Postconditions: Returns the results, or ErrNoResults if none are stored and none could be fetched
func (a *API) Results(ctx context.Context) (store.Results, error) {
	stored, err := a.Store.GetResults()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return store.Results{}, err
	}
	found := err == nil
	if found && (stored.Page == "" || !stored.Expired(time.Now())) {
		return stored, nil
	}

	if a.Store.GetPage() == "" || a.Fetcher == nil {
		if found {
			return stored, nil
		}
		return store.Results{}, ErrNoResults
	}

	fresh, err := a.RefreshResults(ctx)
	if err != nil {
		if found {
			a.Log.Warnw("failed to refresh results, using stored results", "pool", a.Store.GetPool(), "error", err)
			return stored, nil
		}
		return store.Results{}, fmt.Errorf("%w: %v", ErrNoResults, err)
	}
	return fresh, nil
}

// RefreshResults fetches the results bracket from Liquipedia and stores it
// Postconditions: Returns the stored results, or an error if no page is configured or the fetch fails
func (a *API) RefreshResults(ctx context.Context) (store.Results, error) {
	page := a.Store.GetPage()
	if page == "" || a.Fetcher == nil {
		return store.Results{}, fmt.Errorf("no Liquipedia page is configured for pool %s", a.Store.GetPool())
	}

	fetched, err := a.Fetcher.FetchResults(ctx, page)
	if err != nil {
		return store.Results{}, fmt.Errorf("error fetching results: %w", err)
	}

	results := store.Results{
		Page:      fetched.Page,
		Tree:      fetched.Tree,
		OpenDepth: fetched.OpenDepth,
		Decided:   fetched.Decided,
		UpdatedAt: time.Now(),
	}
	if err := a.Store.StoreResults(results); err != nil {
		return store.Results{}, err
	}
	a.Log.Infow("refreshed results", "pool", a.Store.GetPool(), "page", page, "openDepth", results.OpenDepth)
	return results, nil
}

// LoadResults replaces the pool's results with a bracket document. Games the document marks open="true" are
// the undecided ones; a document without marks leaves every game down to openDepth undecided.
// Preconditions: Receives the document name and the deepest depth that still has undecided games, or -1 for a
// finished tournament
// Postconditions: Stores and returns the results, or an error if the document cannot be loaded
func (a *API) LoadResults(ctx context.Context, name string, openDepth int) (store.Results, error) {
	if a.Docs == nil {
		return store.Results{}, ErrNoDocStore
	}
	data, err := a.Docs.Read(ctx, name)
	if err != nil {
		return store.Results{}, fmt.Errorf("error loading results document %s: %w", name, err)
	}
	tree, open, err := bracket.ParseDocument(data)
	if err != nil {
		return store.Results{}, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, name, err)
	}
	if openDepth < -1 || openDepth > tree.Depth() {
		return store.Results{}, fmt.Errorf("%w: open depth %d is outside -1..%d: %w", ErrInvalidDocument, openDepth, tree.Depth(), bracket.ErrDepthOutOfRange)
	}
	decided, err := decidedGames(open, openDepth)
	if err != nil {
		return store.Results{}, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}

	results := store.Results{Tree: tree, OpenDepth: openDepth, Decided: decided, UpdatedAt: time.Now()}
	if err := a.Store.StoreResults(results); err != nil {
		return store.Results{}, err
	}
	a.Log.Infow("loaded results document", "pool", a.Store.GetPool(), "name", name, "openDepth", openDepth)
	return results, nil
}

// decidedGames turns a document's open marks into the decided games down to openDepth
func decidedGames(open []bool, openDepth int) ([]bool, error) {
	if open == nil {
		return nil, nil
	}
	n := scenario.PathLength(openDepth)
	for i := n; i < len(open); i++ {
		if open[i] {
			return nil, fmt.Errorf("a game below open depth %d is marked open: %w", openDepth, bracket.ErrDepthOutOfRange)
		}
	}
	if n == 0 {
		return nil, nil
	}
	decided := make([]bool, n)
	for i := range decided {
		decided[i] = !open[i]
	}
	return decided, nil
}

// scenarioDepth is the depth scenarios are enumerated to for the given results, or -1 if every game is decided.
// Games deeper than the configured depth keep their provisional winner.
func (a *API) scenarioDepth(results store.Results) int {
	if results.OpenDepth < 0 {
		return -1
	}
	if results.OpenDepth > a.ScenarioDepth {
		a.Log.Debugw("limiting scenario depth", "openDepth", results.OpenDepth, "scenarioDepth", a.ScenarioDepth)
		return a.ScenarioDepth
	}
	return results.OpenDepth
}

// GetTeams returns every team in the pool's first round
func (a *API) GetTeams(ctx context.Context) ([]string, error) {
	results, err := a.Results(ctx)
	if err != nil {
		return nil, err
	}
	return results.Tree.NamesByDepth(results.Tree.Depth() + 1)
}

// GetPoolInfo describes the pool, its results source and how far the tournament has progressed
func (a *API) GetPoolInfo(ctx context.Context) (string, error) {
	results, err := a.Results(ctx)
	if err != nil {
		return "", err
	}

	var response strings.Builder
	fmt.Fprintf(&response, "Pool: %s\n", a.Store.GetPool())
	if results.Page != "" {
		fmt.Fprintf(&response, "Results: Liquipedia %s\n", results.Page)
	} else {
		response.WriteString("Results: uploaded document\n")
	}

	depth := results.Tree.Depth()
	fmt.Fprintf(&response, "Teams: %d\n", 1<<(depth+1))
	if results.OpenDepth < 0 {
		fmt.Fprintf(&response, "Champion: %s", results.Tree.WinnerName())
		return response.String(), nil
	}

	fmt.Fprintf(&response, "Current round: %s\n", logic.RoundName(results.OpenDepth+1))
	d := a.scenarioDepth(results)
	paths, err := a.Engine.FreePaths(d, results.Fixed(d))
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&response, "Scenarios considered: %d", len(paths))
	return response.String(), nil
}

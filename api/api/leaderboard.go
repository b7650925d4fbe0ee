/* leaderboard.go
 * Contains the API methods for generating and displaying the pool's leaderboard and for exploring scenarios
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"bracket-bot/api/bracket"
	"bracket-bot/api/logic"
	"bracket-bot/api/scenario"
	"bracket-bot/api/store"
)

// scorable returns the entries that can be scored against the results, keyed by user id. Entries drawn over a
// different first round are logged and left out.
func (a *API) scorable(entries []store.Entry, results store.Results) map[string]*bracket.MatchupTree {
	predictions := make(map[string]*bracket.MatchupTree, len(entries))
	for _, entry := range entries {
		if entry.Bracket == nil || !entry.Bracket.IsSameBase(results.Tree) {
			a.Log.Warnw("skipping entry with a different bracket", "pool", a.Store.GetPool(), "user", entry.Username)
			continue
		}
		predictions[entry.UserId] = entry.Bracket
	}
	return predictions
}

// GenerateLeaderboard scores every entry against the current results and stores the leaderboard. Each entry's
// best possible score and the scenarios in which it finishes first come from a single enumeration of the
// remaining games.
// Postconditions: Returns the stored leaderboard, or an error if it occurs
func (a *API) GenerateLeaderboard(ctx context.Context) (store.Leaderboard, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	results, err := a.Results(ctx)
	if err != nil {
		return store.Leaderboard{}, err
	}
	entries, err := a.Store.GetAllEntries()
	if err != nil {
		return store.Leaderboard{}, err
	}
	predictions := a.scorable(entries, results)

	depth := a.scenarioDepth(results)
	board := store.Leaderboard{
		Pool:          a.Store.GetPool(),
		OpenDepth:     results.OpenDepth,
		ScenarioDepth: depth,
		Scenarios:     1,
		UpdatedAt:     time.Now(),
		Entries:       []store.LeaderboardEntry{},
	}

	var table *scenario.ScoreTable
	if depth >= 0 && len(predictions) > 0 {
		table, err = a.Engine.TableFixed(results.Tree, predictions, depth, results.Fixed(depth))
		if err != nil {
			return store.Leaderboard{}, err
		}
		board.Scenarios = len(table.Paths)
	}

	for _, entry := range entries {
		prediction, ok := predictions[entry.UserId]
		if !ok {
			continue
		}
		rounds, err := prediction.RoundScores(results.Tree)
		if err != nil {
			return store.Leaderboard{}, err
		}
		confirmed, err := logic.ConfirmedScore(prediction, results.Tree, results.OpenDepth)
		if err != nil {
			return store.Leaderboard{}, err
		}

		row := store.LeaderboardEntry{
			UserId:      entry.UserId,
			Username:    entry.Username,
			Score:       confirmed,
			MaxScore:    confirmed,
			RoundScores: rounds,
		}
		if table != nil {
			row.MaxScore, row.BestPath, _ = table.Best(entry.UserId)
			row.WinningPaths = len(table.Wins(entry.UserId))
		}
		board.Entries = append(board.Entries, row)
	}

	sort.SliceStable(board.Entries, func(i, j int) bool {
		x, y := board.Entries[i], board.Entries[j]
		if x.Score != y.Score {
			return x.Score > y.Score
		}
		if x.MaxScore != y.MaxScore {
			return x.MaxScore > y.MaxScore
		}
		return x.Username < y.Username
	})

	// With every game decided the single remaining outcome belongs to whoever tops the board
	if table == nil {
		for i := range board.Entries {
			if board.Entries[i].Score == board.Entries[0].Score {
				board.Entries[i].WinningPaths = 1
			}
		}
	}

	if err := a.Store.StoreLeaderboard(board); err != nil {
		return store.Leaderboard{}, err
	}
	a.Log.Infow("generated leaderboard", "pool", board.Pool, "entries", len(board.Entries), "scenarios", board.Scenarios)
	return board, nil
}

// FetchLeaderboard returns the stored leaderboard, or ErrNoLeaderboard if none has been generated
func (a *API) FetchLeaderboard() (store.Leaderboard, error) {
	board, err := a.Store.FetchLeaderboardFromDB()
	if errors.Is(err, store.ErrNotFound) {
		return store.Leaderboard{}, ErrNoLeaderboard
	}
	return board, err
}

// GetLeaderboard formats the stored leaderboard
// Postconditions: Returns the leaderboard text, or ErrNoLeaderboard if none has been generated
func (a *API) GetLeaderboard() (string, error) {
	board, err := a.FetchLeaderboard()
	if err != nil {
		return "", err
	}
	if len(board.Entries) == 0 {
		return "No brackets have been entered yet", nil
	}

	var response strings.Builder
	response.WriteString("The users with the best brackets are:\n")
	for i, entry := range board.Entries {
		fmt.Fprintf(&response, "%d. %s: %s points", i+1, entry.Username, logic.FormatPoints(entry.Score))
		switch {
		case board.OpenDepth < 0:
		case entry.WinningPaths == 0:
			fmt.Fprintf(&response, " (best possible %s, eliminated)", logic.FormatPoints(entry.MaxScore))
		default:
			fmt.Fprintf(&response, " (best possible %s, first in %d/%d scenarios)",
				logic.FormatPoints(entry.MaxScore), entry.WinningPaths, board.Scenarios)
		}
		response.WriteString("\n")
	}
	return strings.TrimSuffix(response.String(), "\n"), nil
}

// aliveTeams returns the teams that have not lost a game yet, in bracket order
func aliveTeams(results store.Results) ([]string, error) {
	names, err := results.Tree.NamesByDepth(results.OpenDepth + 1)
	if err != nil {
		return nil, err
	}
	games, err := results.Tree.EveryTree(results.OpenDepth)
	if err != nil {
		return nil, err
	}

	eliminated := make(map[string]bool)
	for i, game := range games {
		if i < len(results.Decided) && results.Decided[i] {
			eliminated[game.LoserName()] = true
		}
	}
	alive := make([]string, 0, len(names))
	for _, name := range names {
		if !eliminated[name] {
			alive = append(alive, name)
		}
	}
	return alive, nil
}

// WhatIf reports the best score every entry can still reach if the given team wins the tournament
// Preconditions: Receives a team name as typed by a user
// Postconditions: Returns the report, ErrUnknownTeam if the name does not match a team that can still win, or
// ErrTooEarly if the team can still win but sits below the games scenarios are enumerated for
func (a *API) WhatIf(ctx context.Context, teamInput string) (string, error) {
	results, err := a.Results(ctx)
	if err != nil {
		return "", err
	}
	if results.OpenDepth < 0 {
		return fmt.Sprintf("The tournament is over, %s won it", results.Tree.WinnerName()), nil
	}

	alive, err := aliveTeams(results)
	if err != nil {
		return "", err
	}
	matched, invalid := logic.CheckTeamNames([]string{teamInput}, alive)
	if len(invalid) > 0 || len(matched) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownTeam, teamInput)
	}
	team := matched[0]

	depth := a.scenarioDepth(results)
	reachable, err := results.Tree.NamesByDepth(depth + 1)
	if err != nil {
		return "", err
	}
	if !slices.Contains(reachable, team) {
		return "", fmt.Errorf("%w: %s", ErrTooEarly, team)
	}

	entries, err := a.Store.GetAllEntries()
	if err != nil {
		return "", err
	}
	predictions := a.scorable(entries, results)

	best := make(map[string]float64, len(predictions))
	err = a.Engine.EachFixed(results.Tree, depth, results.Fixed(depth), func(path string) error {
		if results.Tree.WinnerName() != team {
			return nil
		}
		for userID, prediction := range predictions {
			s, err := prediction.Score(results.Tree)
			if err != nil {
				return err
			}
			if current, ok := best[userID]; !ok || s > current {
				best[userID] = s
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	type row struct {
		name  string
		score float64
	}
	var rows []row
	for _, entry := range entries {
		if s, ok := best[entry.UserId]; ok {
			rows = append(rows, row{entry.Username, s})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].name < rows[j].name
	})

	var response strings.Builder
	fmt.Fprintf(&response, "If %s wins it all:", team)
	if len(rows) == 0 {
		response.WriteString("\nNo brackets have been entered yet")
	}
	for i, r := range rows {
		fmt.Fprintf(&response, "\n%d. %s: best possible %s", i+1, r.name, logic.FormatPoints(r.score))
	}
	return response.String(), nil
}

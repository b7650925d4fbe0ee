/* table.go
 * Contains the score table: every prediction in a pool scored under every scenario in a single enumeration
 */

package scenario

import (
	"fmt"
	"sort"

	"bracket-bot/api/bracket"
)

// ScoreTable holds one row per scenario path and one column per entry name
type ScoreTable struct {
	Paths []string
	Names []string
	Rows  [][]float64

	column map[string]int
}

// Table scores every prediction against the hypothesis under every scenario at the given depth
// Preconditions: Receives at least one prediction, keyed by entry name
// Postconditions: Returns a table with names sorted alphabetically and paths in path order
func (e *Engine) Table(hypothesis *bracket.MatchupTree, predictions map[string]*bracket.MatchupTree, depth int) (*ScoreTable, error) {
	return e.TableFixed(hypothesis, predictions, depth, nil)
}

// TableFixed is Table over the scenarios that keep every game flagged in fixed as it is in the hypothesis
func (e *Engine) TableFixed(hypothesis *bracket.MatchupTree, predictions map[string]*bracket.MatchupTree, depth int, fixed []bool) (*ScoreTable, error) {
	if len(predictions) == 0 {
		return nil, ErrNoPredictions
	}

	names := make([]string, 0, len(predictions))
	for name := range predictions {
		names = append(names, name)
	}
	sort.Strings(names)

	table := &ScoreTable{
		Names:  names,
		column: make(map[string]int, len(names)),
	}
	for i, name := range names {
		table.column[name] = i
	}

	err := e.EachFixed(hypothesis, depth, fixed, func(path string) error {
		row := make([]float64, len(names))
		for i, name := range names {
			s, err := predictions[name].Score(hypothesis)
			if err != nil {
				return fmt.Errorf("scoring %s: %w", name, err)
			}
			row[i] = s
		}
		table.Paths = append(table.Paths, path)
		table.Rows = append(table.Rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// Max returns the highest score name reaches in any scenario. ok is false if name is not in the table.
func (t *ScoreTable) Max(name string) (best float64, ok bool) {
	best, _, ok = t.Best(name)
	return best, ok
}

// Best returns the highest score name reaches and the first path reaching it
func (t *ScoreTable) Best(name string) (best float64, path string, ok bool) {
	col, ok := t.column[name]
	if !ok {
		return 0, "", false
	}
	for i, row := range t.Rows {
		if i == 0 || row[col] > best {
			best = row[col]
			path = t.Paths[i]
		}
	}
	return best, path, true
}

// Wins returns the paths in which name finishes first, alone or tied
func (t *ScoreTable) Wins(name string) []string {
	col, ok := t.column[name]
	if !ok {
		return nil
	}

	var wins []string
	for i, row := range t.Rows {
		top := true
		for _, s := range row {
			if s > row[col] {
				top = false
				break
			}
		}
		if top {
			wins = append(wins, t.Paths[i])
		}
	}
	return wins
}

// Contenders returns the entries that finish first in at least one scenario, with their number of winning paths
func (t *ScoreTable) Contenders() map[string]int {
	out := make(map[string]int)
	for _, name := range t.Names {
		if n := len(t.Wins(name)); n > 0 {
			out[name] = n
		}
	}
	return out
}

/* engine.go
 * Contains the scenario engine: exhaustive enumeration of every remaining outcome of the games near the top of a
 * results bracket, and the scoring of predictions under each outcome.
 *
 * A scenario path is a string of '0' and '1' with one character per game returned by EveryTree(depth). Character
 * i refers to game i of that list (root first, level by level) and '1' means that game is flipped relative to the
 * hypothesis bracket.
 *
 * Games whose result is already known can be fixed: a fixed game is never flipped, so its character is '0' in every
 * path produced for that mask.
 */

package scenario

import (
	"fmt"
	"math/bits"
	"strings"

	"bracket-bot/api/bracket"
)

// DefaultMaxDepth allows the elite 8 onwards to be enumerated, which is 2^15 scenarios
const DefaultMaxDepth = 3

// Engine enumerates scenarios up to MaxDepth. The number of scenarios at depth d is 2^(2^(d+1)-1), so every
// additional level squares the work.
type Engine struct {
	MaxDepth int
}

// NewEngine returns an engine with DefaultMaxDepth
func NewEngine() *Engine {
	return &Engine{MaxDepth: DefaultMaxDepth}
}

// PathLength is the number of games a depth d scenario covers
func PathLength(depth int) int {
	return 1<<(depth+1) - 1
}

// Count is the number of scenarios at depth d
func Count(depth int) int {
	return 1 << PathLength(depth)
}

// Paths returns every scenario path at the given depth in lexicographic order
func (e *Engine) Paths(depth int) ([]string, error) {
	if err := e.checkDepth(depth); err != nil {
		return nil, err
	}
	return paths(depth), nil
}

func paths(depth int) []string {
	n := PathLength(depth)
	out := make([]string, Count(depth))
	for i := range out {
		out[i] = pathFor(i, n)
	}
	return out
}

// freePaths returns the paths at depth whose fixed games are all '0', in path order. A nil mask returns every
// path. Only the first PathLength(depth) entries of fixed are read.
func freePaths(depth int, fixed []bool) []string {
	n := PathLength(depth)
	mask := 0
	for i := 0; i < n && i < len(fixed); i++ {
		if fixed[i] {
			mask |= 1 << (n - 1 - i)
		}
	}
	if mask == 0 {
		return paths(depth)
	}

	out := make([]string, 0, Count(depth)>>bits.OnesCount(uint(mask)))
	for i := 0; i < Count(depth); i++ {
		if i&mask == 0 {
			out = append(out, pathFor(i, n))
		}
	}
	return out
}

// FreePaths is Paths with the games flagged in fixed held at their hypothesis result
func (e *Engine) FreePaths(depth int, fixed []bool) ([]string, error) {
	if err := e.checkDepth(depth); err != nil {
		return nil, err
	}
	return freePaths(depth, fixed), nil
}

// pathFor renders index i as a path of n characters, most significant bit first
func pathFor(i int, n int) string {
	var b strings.Builder
	b.Grow(n)
	for bit := n - 1; bit >= 0; bit-- {
		if i&(1<<bit) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (e *Engine) checkDepth(depth int) error {
	if depth < 0 {
		return fmt.Errorf("negative depth %d: %w", depth, bracket.ErrDepthOutOfRange)
	}
	if depth > e.MaxDepth {
		return fmt.Errorf("depth %d above max %d: %w", depth, e.MaxDepth, ErrDepthTooLarge)
	}
	return nil
}

// games validates depth against both the engine and the hypothesis and returns the games a path refers to
func (e *Engine) games(hypothesis *bracket.MatchupTree, depth int) ([]*bracket.MatchupTree, error) {
	if err := e.checkDepth(depth); err != nil {
		return nil, err
	}
	if depth > hypothesis.Depth() {
		return nil, fmt.Errorf("depth %d exceeds hypothesis depth %d: %w", depth, hypothesis.Depth(), bracket.ErrDepthOutOfRange)
	}
	return hypothesis.EveryTree(depth)
}

// apply flips every game flagged in path. Applying the same path twice restores the games.
func apply(games []*bracket.MatchupTree, path string) {
	for i := 0; i < len(path); i++ {
		if path[i] == '1' {
			games[i].SwitchWinner()
		}
	}
}

func validatePath(path string, depth int) error {
	if len(path) != PathLength(depth) {
		return fmt.Errorf("path %q has length %d, expected %d: %w", path, len(path), PathLength(depth), ErrInvalidPath)
	}
	if strings.Trim(path, "01") != "" {
		return fmt.Errorf("path %q may only contain 0 and 1: %w", path, ErrInvalidPath)
	}
	return nil
}

// Each calls fn once per scenario, in path order, with the hypothesis mutated to reflect that scenario.
// The hypothesis is shared mutable state: fn must not retain it, modify it, or read it from another goroutine
// while Each is running. The hypothesis is restored before Each returns, including when fn returns an error,
// which stops the enumeration and is returned as is.
func (e *Engine) Each(hypothesis *bracket.MatchupTree, depth int, fn func(path string) error) error {
	return e.EachFixed(hypothesis, depth, nil, fn)
}

// EachFixed is Each restricted to the scenarios that leave every game flagged in fixed as it is in the
// hypothesis. fixed is indexed like EveryTree(depth); a longer mask is cut to the games the depth covers.
func (e *Engine) EachFixed(hypothesis *bracket.MatchupTree, depth int, fixed []bool, fn func(path string) error) error {
	games, err := e.games(hypothesis, depth)
	if err != nil {
		return err
	}

	for _, path := range freePaths(depth, fixed) {
		apply(games, path)
		err := fn(path)
		apply(games, path)
		if err != nil {
			return err
		}
	}
	return nil
}

// Enumerate scores prediction against the hypothesis under every scenario
// Preconditions: Receives a hypothesis at least depth levels deep and a prediction covering the same teams
// Postconditions: Returns the score for every path, and the hypothesis is unchanged
func (e *Engine) Enumerate(hypothesis *bracket.MatchupTree, prediction *bracket.MatchupTree, depth int) (map[string]float64, error) {
	scores := make(map[string]float64)
	err := e.Each(hypothesis, depth, func(path string) error {
		s, err := prediction.Score(hypothesis)
		if err != nil {
			return err
		}
		scores[path] = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// Ceiling returns the best score prediction can still reach and the first path, in path order, that reaches it
func (e *Engine) Ceiling(hypothesis *bracket.MatchupTree, prediction *bracket.MatchupTree, depth int) (float64, string, error) {
	best := -1.0
	var bestPath string
	err := e.Each(hypothesis, depth, func(path string) error {
		s, err := prediction.Score(hypothesis)
		if err != nil {
			return err
		}
		if s > best {
			best, bestPath = s, path
		}
		return nil
	})
	if err != nil {
		return 0, "", err
	}
	return best, bestPath, nil
}

// Describe lists "<winner> over <loser>" for every game covered by path, root first
func (e *Engine) Describe(hypothesis *bracket.MatchupTree, path string, depth int) ([]string, error) {
	games, err := e.games(hypothesis, depth)
	if err != nil {
		return nil, err
	}
	if err := validatePath(path, depth); err != nil {
		return nil, err
	}

	apply(games, path)
	defer apply(games, path)

	lines := make([]string, 0, len(games))
	for _, game := range games {
		lines = append(lines, fmt.Sprintf("%s over %s", game.WinnerName(), game.LoserName()))
	}
	return lines, nil
}

/* depth.go
 * Contains the depth indexed queries on a MatchupTree. Depth 0 is the championship game, and depth increases by
 * one for every round further from the final
 */

package bracket

import (
	"fmt"
)

// NamesByDepth returns the teams present at a given depth of the bracket, in bracket order.
//
//	depth = 0: national champion
//	depth = 1: national championship teams
//	depth = 2: final four teams
//	depth = 3: elite 8 teams
//	depth = 4: sweet 16 teams
//	depth = 5: round of 32 teams
//	depth = 6: round of 64 teams
//
// A depth d query returns 2^d names. The deepest valid query on a complete bracket is Depth()+1, which lists
// every entrant. Deeper or negative queries return ErrDepthOutOfRange.
func (t *MatchupTree) NamesByDepth(depth int) ([]string, error) {
	if depth < 0 {
		return nil, fmt.Errorf("negative depth %d: %w", depth, ErrDepthOutOfRange)
	}
	switch depth {
	case 0:
		return []string{t.WinnerName()}, nil
	case 1:
		return []string{t.WinnerName(), t.LoserName()}, nil
	}

	winner, loser, err := t.children(depth)
	if err != nil {
		return nil, err
	}
	left, err := winner.NamesByDepth(depth - 1)
	if err != nil {
		return nil, err
	}
	right, err := loser.NamesByDepth(depth - 1)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// TreesByDepth returns the games situated exactly at the given depth, in bracket order
func (t *MatchupTree) TreesByDepth(depth int) ([]*MatchupTree, error) {
	if depth < 0 {
		return nil, fmt.Errorf("negative depth %d: %w", depth, ErrDepthOutOfRange)
	}
	trees := []*MatchupTree{t}
	for level := 0; level < depth; level++ {
		next, err := expand(trees, depth)
		if err != nil {
			return nil, err
		}
		trees = next
	}
	return trees, nil
}

// EveryTree returns the root followed by every game down to and including the given depth, level by level.
// The result holds 2^(depth+1) - 1 games; the scenario engine relies on this order.
func (t *MatchupTree) EveryTree(depth int) ([]*MatchupTree, error) {
	if depth < 0 {
		return nil, fmt.Errorf("negative depth %d: %w", depth, ErrDepthOutOfRange)
	}
	level := []*MatchupTree{t}
	trees := []*MatchupTree{t}
	for i := 0; i < depth; i++ {
		next, err := expand(level, depth)
		if err != nil {
			return nil, err
		}
		trees = append(trees, next...)
		level = next
	}
	return trees, nil
}

// expand replaces every game with its winner and loser subtrees
func expand(trees []*MatchupTree, depth int) ([]*MatchupTree, error) {
	next := make([]*MatchupTree, 0, 2*len(trees))
	for _, tree := range trees {
		winner, loser, err := tree.children(depth)
		if err != nil {
			return nil, err
		}
		next = append(next, winner, loser)
	}
	return next, nil
}

// children returns both subtrees of a game, or ErrDepthOutOfRange if either side is a terminal team
func (t *MatchupTree) children(depth int) (*MatchupTree, *MatchupTree, error) {
	winner, ok := t.winner.(*MatchupTree)
	if !ok {
		return nil, nil, fmt.Errorf("depth %d exceeds bracket at %q: %w", depth, t.WinnerName(), ErrDepthOutOfRange)
	}
	loser, ok := t.loser.(*MatchupTree)
	if !ok {
		return nil, nil, fmt.Errorf("depth %d exceeds bracket at %q: %w", depth, t.LoserName(), ErrDepthOutOfRange)
	}
	return winner, loser, nil
}

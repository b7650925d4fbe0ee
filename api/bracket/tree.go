/* tree.go
 * Contains the MatchupTree type used to model a single elimination bracket. A tree represents one game,
 * and recursively every game upstream of it
 */

package bracket

import (
	"fmt"
)

// Side is one competitor slot of a game. It is either a Team (a terminal team name) or a *MatchupTree
// (a nested game whose winner advanced to this one). The set of implementations is closed.
type Side interface {
	isSide()
}

// Team is a terminal team name
type Team string

func (Team) isSide() {}

func (*MatchupTree) isSide() {}

// MatchupTree is a single game and everything upstream of it. The shape is fixed at construction, only
// SwitchWinner mutates a tree. A tree exclusively owns its sides.
type MatchupTree struct {
	winner Side
	loser  Side
}

// New creates a MatchupTree from a winner and loser side.
// Preconditions: Receives two sides, each a non empty Team or a non nil *MatchupTree
// Postconditions: Returns the new tree, or ErrInvalidArgument if either side is invalid
func New(winner Side, loser Side) (*MatchupTree, error) {
	if err := validateSide(winner); err != nil {
		return nil, fmt.Errorf("winner: %w", err)
	}
	if err := validateSide(loser); err != nil {
		return nil, fmt.Errorf("loser: %w", err)
	}
	return &MatchupTree{winner: winner, loser: loser}, nil
}

// MustNew is like New but panics on invalid sides. Intended for literals in fixtures and tests
func MustNew(winner Side, loser Side) *MatchupTree {
	t, err := New(winner, loser)
	if err != nil {
		panic(err)
	}
	return t
}

func validateSide(s Side) error {
	switch v := s.(type) {
	case Team:
		if v == "" {
			return fmt.Errorf("empty team name: %w", ErrInvalidArgument)
		}
		return nil
	case *MatchupTree:
		if v == nil {
			return fmt.Errorf("nil subtree: %w", ErrInvalidArgument)
		}
		return nil
	default:
		return fmt.Errorf("side must be Team or *MatchupTree, got %T: %w", s, ErrInvalidArgument)
	}
}

// Winner returns the winning side of this game
func (t *MatchupTree) Winner() Side {
	return t.winner
}

// Loser returns the losing side of this game
func (t *MatchupTree) Loser() Side {
	return t.loser
}

// WinnerName resolves the team that won this game by following the winner chain
func (t *MatchupTree) WinnerName() string {
	return sideWinnerName(t.winner)
}

// LoserName resolves the team that lost this game. Losers never play again, so there is no record of who
// the loser beat before; the name is resolved through the loser side's own winner chain.
func (t *MatchupTree) LoserName() string {
	return sideWinnerName(t.loser)
}

func sideWinnerName(s Side) string {
	switch v := s.(type) {
	case Team:
		return string(v)
	case *MatchupTree:
		return v.WinnerName()
	}
	return ""
}

// Depth is the number of nested winner links before a terminal team is reached. A single game has depth 0.
// Brackets are assumed to be complete with no play-in games, so only the winner chain is followed.
func (t *MatchupTree) Depth() int {
	depth := 0
	elem := t
	for {
		next, ok := elem.winner.(*MatchupTree)
		if !ok {
			return depth
		}
		depth++
		elem = next
	}
}

// SwitchWinner swaps the winner and loser of this game in place. Calling it twice restores the tree.
func (t *MatchupTree) SwitchWinner() {
	t.winner, t.loser = t.loser, t.winner
}

// Clone returns a deep copy of the tree that shares nothing with the original
func (t *MatchupTree) Clone() *MatchupTree {
	return &MatchupTree{winner: cloneSide(t.winner), loser: cloneSide(t.loser)}
}

func cloneSide(s Side) Side {
	switch v := s.(type) {
	case Team:
		return v
	case *MatchupTree:
		return v.Clone()
	}
	return nil
}

// Equal reports whether two trees have the same shape and the same winner and loser at every game
func (t *MatchupTree) Equal(other *MatchupTree) bool {
	if t == nil || other == nil {
		return t == other
	}
	return sideEqual(t.winner, other.winner) && sideEqual(t.loser, other.loser)
}

func sideEqual(a Side, b Side) bool {
	switch va := a.(type) {
	case Team:
		vb, ok := b.(Team)
		return ok && va == vb
	case *MatchupTree:
		vb, ok := b.(*MatchupTree)
		return ok && va.Equal(vb)
	}
	return false
}

func (t *MatchupTree) String() string {
	return fmt.Sprintf("MatchupTree(%s, depth=%d)", t.WinnerName(), t.Depth())
}

// FromEntrants builds a complete bracket from a field listed in bracket order, where the first listed team of
// every pairing is taken as the winner. Useful as a starting hypothesis before any games are played.
// Preconditions: Receives a slice of team names whose length is a power of two and at least 2
// Postconditions: Returns the bracket, or ErrInvalidArgument if the field size is unsupported
func FromEntrants(entrants []string) (*MatchupTree, error) {
	n := len(entrants)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("field of %d teams is not a power of two: %w", n, ErrInvalidArgument)
	}

	sides := make([]Side, 0, n)
	for _, name := range entrants {
		sides = append(sides, Team(name))
	}
	for len(sides) > 1 {
		next := make([]Side, 0, len(sides)/2)
		for i := 0; i < len(sides); i += 2 {
			game, err := New(sides[i], sides[i+1])
			if err != nil {
				return nil, err
			}
			next = append(next, game)
		}
		sides = next
	}
	return sides[0].(*MatchupTree), nil
}

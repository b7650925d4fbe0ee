/* tree_test.go
 * Contains unit tests for tree.go
 */

package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region New tests

func TestNew_Success(t *testing.T) {
	tree, err := New(Team("a"), Team("b"))

	require.NoError(t, err)
	assert.Equal(t, Team("a"), tree.Winner())
	assert.Equal(t, Team("b"), tree.Loser())
}

func TestNew_InvalidSides(t *testing.T) {
	var nilTree *MatchupTree
	tests := []struct {
		name   string
		winner Side
		loser  Side
	}{
		{"nil winner", nil, Team("b")},
		{"nil loser", Team("a"), nil},
		{"nil subtree", nilTree, Team("b")},
		{"empty team", Team(""), Team("b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := New(tt.winner, tt.loser)
			assert.Nil(t, tree)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(nil, Team("b")) })
}

// endregion

// region name resolution tests

func TestWinnerAndLoserName(t *testing.T) {
	tree := predicted()

	assert.Equal(t, "a", tree.WinnerName())
	// The loser is resolved through the losing subtree's winner chain
	assert.Equal(t, "b", tree.LoserName())
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, MustNew(Team("a"), Team("b")).Depth())
	assert.Equal(t, 1, predicted().Depth())
	assert.Equal(t, 2, eightTeam().Depth())
}

func TestString(t *testing.T) {
	assert.Equal(t, "MatchupTree(a, depth=2)", eightTeam().String())
}

// endregion

// region mutation tests

func TestSwitchWinner_SwapsSides(t *testing.T) {
	tree := predicted()
	winner, loser := tree.Winner(), tree.Loser()

	tree.SwitchWinner()

	assert.Same(t, loser, tree.Winner())
	assert.Same(t, winner, tree.Loser())
	assert.Equal(t, "b", tree.WinnerName())
	assert.Equal(t, "a", tree.LoserName())
}

func TestSwitchWinner_TwiceRestores(t *testing.T) {
	tree := eightTeam()
	winner, loser := tree.Winner(), tree.Loser()

	tree.SwitchWinner()
	tree.SwitchWinner()

	assert.Same(t, winner, tree.Winner())
	assert.Same(t, loser, tree.Loser())
	assert.True(t, tree.Equal(eightTeam()))
}

func TestClone_IsIndependent(t *testing.T) {
	tree := eightTeam()
	clone := tree.Clone()
	require.True(t, tree.Equal(clone))

	clone.SwitchWinner()
	clone.Winner().(*MatchupTree).SwitchWinner()

	assert.True(t, tree.Equal(eightTeam()))
	assert.False(t, tree.Equal(clone))
}

// endregion

// region Equal tests

func TestEqual(t *testing.T) {
	assert.True(t, predicted().Equal(predicted()))
	assert.False(t, predicted().Equal(reversed()))
	assert.False(t, predicted().Equal(eightTeam()))
	assert.False(t, predicted().Equal(nil))
}

// endregion

// region FromEntrants tests

func TestFromEntrants_KeepsBracketOrder(t *testing.T) {
	tree, err := FromEntrants([]string{"a", "b", "c", "d"})
	require.NoError(t, err)

	names, err := tree.NamesByDepth(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	assert.Equal(t, "a", tree.WinnerName())
	assert.Equal(t, "c", tree.LoserName())
}

func TestFromEntrants_InvalidFieldSize(t *testing.T) {
	for _, n := range []int{0, 1, 3, 6, 12} {
		_, err := FromEntrants(field(n))
		assert.ErrorIs(t, err, ErrInvalidArgument, "field size %d", n)
	}
}

// endregion

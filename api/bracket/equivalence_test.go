/* equivalence_test.go
 * Contains unit tests for equivalence.go
 */

package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSameBase_ReversedOutcomes(t *testing.T) {
	assert.True(t, predicted().IsSameBase(reversed()))
	assert.True(t, predicted().IsSameBase(actual()))
	assert.True(t, predicted().IsSameBase(predicted()))
}

func TestIsSameBase_DifferentPairings(t *testing.T) {
	assert.False(t, predicted().IsSameBase(different()))
}

func TestIsSameBase_DifferentTeam(t *testing.T) {
	other := MustNew(
		MustNew(Team("a"), Team("c")),
		MustNew(Team("b"), Team("z")),
	)
	assert.False(t, predicted().IsSameBase(other))
}

func TestIsSameBase_DifferentShapes(t *testing.T) {
	assert.False(t, predicted().IsSameBase(eightTeam()))
	assert.False(t, predicted().IsSameBase(nil))
}

func TestIsSameBase_DoesNotMutate(t *testing.T) {
	tree := reversed()
	predicted().IsSameBase(tree)
	assert.True(t, tree.Equal(reversed()))
}

func TestCanonicalForm(t *testing.T) {
	assert.Equal(t, "((a c) (b d))", predicted().CanonicalForm())
	assert.Equal(t, "((a c) (b d))", reversed().CanonicalForm())
	assert.Equal(t, "((a b) (c d))", different().CanonicalForm())
}

func TestCanonicalForm_PlayInGame(t *testing.T) {
	// The smallest reachable name of a nested play-in decides its position
	tree := MustNew(
		MustNew(Team("D"), Team("B")),
		MustNew(Team("C"), MustNew(Team("E"), Team("A"))),
	)
	assert.Equal(t, "(((A E) C) (B D))", tree.CanonicalForm())
}

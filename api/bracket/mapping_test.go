/* mapping_test.go
 * Contains unit tests for mapping.go
 */

package bracket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMapping(t *testing.T) {
	expected := map[string]any{
		"winner": map[string]any{"winner": "a", "loser": "c"},
		"loser":  map[string]any{"winner": "b", "loser": "d"},
	}
	assert.Equal(t, expected, predicted().ToMapping())
}

func TestFromMapping_RoundTrip(t *testing.T) {
	sixtyFour, err := FromEntrants(field(64))
	require.NoError(t, err)

	for _, tree := range []*MatchupTree{predicted(), eightTeam(), sixtyFour} {
		decoded, err := FromMapping(tree.ToMapping())
		require.NoError(t, err)
		assert.True(t, tree.Equal(decoded))
	}
}

func TestFromMapping_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
	}{
		{"number winner", map[string]any{"winner": 1, "loser": "b"}},
		{"list loser", map[string]any{"winner": "a", "loser": []any{"b"}}},
		{"missing loser", map[string]any{"winner": "a"}},
		{"nested invalid", map[string]any{"winner": map[string]any{"winner": "a", "loser": true}, "loser": "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMapping(tt.m)
			assert.ErrorIs(t, err, ErrInvalidType)
		})
	}
}

func TestFromMapping_EmptyName(t *testing.T) {
	_, err := FromMapping(map[string]any{"winner": "", "loser": "b"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestToList(t *testing.T) {
	expected := []any{[]any{"a", "c"}, []any{"b", "d"}}
	assert.Equal(t, expected, predicted().ToList())
}

func TestJSON_RoundTrip(t *testing.T) {
	data, err := json.Marshal(eightTeam())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"winner":`)

	var decoded MatchupTree
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, eightTeam().Equal(&decoded))
}

func TestJSON_InvalidDocument(t *testing.T) {
	var decoded MatchupTree
	err := json.Unmarshal([]byte(`{"winner": 3, "loser": "b"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidType)
}

/* mapping.go
 * Contains conversion between a MatchupTree and the generic mapping format
 * {"winner": <name or mapping>, "loser": <name or mapping>}. The same format backs the JSON encoding and
 * the documents stored in MongoDB
 */

package bracket

import (
	"encoding/json"
	"fmt"
)

// FromMapping builds a tree from a nested mapping.
// Preconditions: Receives a mapping with winner and loser keys, each a string or a nested mapping
// Postconditions: Returns the tree, or ErrInvalidType if a value is missing or of any other type
func FromMapping(m map[string]any) (*MatchupTree, error) {
	winner, err := sideFromValue(m, "winner")
	if err != nil {
		return nil, err
	}
	loser, err := sideFromValue(m, "loser")
	if err != nil {
		return nil, err
	}
	return New(winner, loser)
}

func sideFromValue(m map[string]any, key string) (Side, error) {
	raw, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("missing %q key: %w", key, ErrInvalidType)
	}
	switch v := raw.(type) {
	case string:
		return Team(v), nil
	case map[string]any:
		sub, err := FromMapping(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("%q must be a string or mapping, got %T: %w", key, raw, ErrInvalidType)
	}
}

// ToMapping is the inverse of FromMapping. Subtrees become nested mappings and teams stay as strings.
func (t *MatchupTree) ToMapping() map[string]any {
	return map[string]any{
		"winner": sideToValue(t.winner),
		"loser":  sideToValue(t.loser),
	}
}

func sideToValue(s Side) any {
	switch v := s.(type) {
	case Team:
		return string(v)
	case *MatchupTree:
		return v.ToMapping()
	}
	return nil
}

// ToList returns the bracket as nested two element lists of [winner, loser]
func (t *MatchupTree) ToList() []any {
	out := make([]any, 0, 2)
	for _, s := range []Side{t.winner, t.loser} {
		switch v := s.(type) {
		case Team:
			out = append(out, string(v))
		case *MatchupTree:
			out = append(out, v.ToList())
		}
	}
	return out
}

// MarshalJSON encodes the tree in the mapping format
func (t *MatchupTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMapping())
}

// UnmarshalJSON decodes the mapping format into t
func (t *MatchupTree) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	decoded, err := FromMapping(m)
	if err != nil {
		return err
	}
	*t = *decoded
	return nil
}

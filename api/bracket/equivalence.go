/* equivalence.go
 * Contains the structural equivalence check used to tell whether two brackets describe the same field of
 * match-ups, ignoring who actually won each game
 */

package bracket

import (
	"sort"
	"strings"
)

// IsSameBase reports whether this bracket and other describe the same set of possible match-ups. Winner and
// loser are treated as an unordered pair at every game. Brackets with different shapes simply produce
// different canonical forms; no error is raised.
func (t *MatchupTree) IsSameBase(other *MatchupTree) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.CanonicalForm() == other.CanonicalForm()
}

// CanonicalForm serializes the bracket with winner markers dropped and every pair of siblings sorted by the
// alphabetically smallest team reachable beneath it, e.g. "((a c) (b d))"
func (t *MatchupTree) CanonicalForm() string {
	var b strings.Builder
	writeCanonical(&b, t)
	return b.String()
}

func writeCanonical(b *strings.Builder, s Side) {
	switch v := s.(type) {
	case Team:
		b.WriteString(string(v))
	case *MatchupTree:
		pair := []Side{v.winner, v.loser}
		sort.SliceStable(pair, func(i, j int) bool {
			return firstName(pair[i]) < firstName(pair[j])
		})
		b.WriteByte('(')
		writeCanonical(b, pair[0])
		b.WriteByte(' ')
		writeCanonical(b, pair[1])
		b.WriteByte(')')
	}
}

// firstName is the lexicographically smallest team name reachable from a side
func firstName(s Side) string {
	switch v := s.(type) {
	case Team:
		return string(v)
	case *MatchupTree:
		return min(firstName(v.winner), firstName(v.loser))
	}
	return ""
}

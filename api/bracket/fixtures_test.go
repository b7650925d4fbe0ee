/* fixtures_test.go
 * Contains the brackets shared by the tests in this package
 */

package bracket

import "fmt"

// predicted is the four team bracket: a beats c, b beats d, a beats b
func predicted() *MatchupTree {
	return MustNew(
		MustNew(Team("a"), Team("c")),
		MustNew(Team("b"), Team("d")),
	)
}

// reversed has the same match-ups as predicted with every outcome flipped
func reversed() *MatchupTree {
	return MustNew(
		MustNew(Team("d"), Team("b")),
		MustNew(Team("c"), Team("a")),
	)
}

// different pairs the same four teams differently
func different() *MatchupTree {
	return MustNew(
		MustNew(Team("a"), Team("b")),
		MustNew(Team("c"), Team("d")),
	)
}

// actual has b as champion over c
func actual() *MatchupTree {
	return MustNew(
		MustNew(Team("b"), Team("d")),
		MustNew(Team("c"), Team("a")),
	)
}

func eightTeam() *MatchupTree {
	return MustNew(
		MustNew(
			MustNew(Team("a"), Team("c")),
			MustNew(Team("b"), Team("d")),
		),
		MustNew(
			MustNew(Team("e"), Team("f")),
			MustNew(Team("g"), Team("h")),
		),
	)
}

// field returns n team names "team01".."teamNN"
func field(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("team%02d", i+1)
	}
	return names
}

/* models.go
 * This file contains the models used by the external package when fetching data from external sources
 */

package external

import "bracket-bot/api/bracket"

// TBD is the placeholder Liquipedia uses for an opponent that has not been decided
const TBD = "TBD"

// MatchNode is a single game of a Liquipedia bracket
type MatchNode struct {
	Id       string
	Team1    string
	Team2    string
	Winner   string
	Finished bool
}

// Results is a results bracket built from live match data. Games at depths 0 through OpenDepth may still be
// undecided and carry a provisional winner; OpenDepth is -1 once every game is finished.
// Decided is indexed like Tree.EveryTree(OpenDepth) and is true for every game in that range already played.
type Results struct {
	Page      string
	Tree      *bracket.MatchupTree
	OpenDepth int
	Decided   []bool
}

// Complete reports whether every game of the bracket has been played
func (r *Results) Complete() bool {
	return r.OpenDepth < 0
}

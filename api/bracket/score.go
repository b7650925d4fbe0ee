/* score.go
 * Contains the logic for scoring a predicted bracket against an actual (or hypothetical) one
 */

package bracket

import "fmt"

// PointsPerRound is the total available in every round, regardless of how many teams are left in it
const PointsPerRound = 320

// ScoreByDepth compares the teams this bracket predicts at a depth against the teams in actual at the same
// depth. Each correct name earns PointsPerRound / (number of names at that depth), so a correct elite 8 team
// is worth 40. A name predicted more than once is counted once per occurrence.
// Postconditions: Returns the points earned, or ErrDepthOutOfRange if either bracket is shallower than depth
func (t *MatchupTree) ScoreByDepth(actual *MatchupTree, depth int) (float64, error) {
	predicted, err := t.NamesByDepth(depth)
	if err != nil {
		return 0, fmt.Errorf("predicted bracket: %w", err)
	}
	results, err := actual.NamesByDepth(depth)
	if err != nil {
		return 0, fmt.Errorf("actual bracket: %w", err)
	}

	inResults := make(map[string]bool, len(results))
	for _, name := range results {
		inResults[name] = true
	}

	pointsPerGame := float64(PointsPerRound) / float64(len(predicted))
	var correct int
	for _, name := range predicted {
		if inResults[name] {
			correct++
		}
	}
	return pointsPerGame * float64(correct), nil
}

// RoundScores returns the points earned at every depth from 0 through Depth(), indexed by depth
func (t *MatchupTree) RoundScores(actual *MatchupTree) ([]float64, error) {
	depth := t.Depth()
	scores := make([]float64, 0, depth+1)
	for d := 0; d <= depth; d++ {
		s, err := t.ScoreByDepth(actual, d)
		if err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, nil
}

// Score is the total of ScoreByDepth over every depth from 0 through Depth(). Predicting a bracket against
// itself earns PointsPerRound * (Depth() + 1).
func (t *MatchupTree) Score(actual *MatchupTree) (float64, error) {
	scores, err := t.RoundScores(actual)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	return total, nil
}

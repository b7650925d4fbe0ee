/* scoring.go
 * Contains the logic for reporting a user's score against a results bracket that may still be in progress.
 * Rounds deeper than the results' open depth are fully decided and count as confirmed; shallower rounds are
 * pending.
 */

package logic

import (
	"fmt"
	"strconv"
	"strings"

	"bracket-bot/api/bracket"
)

// RoundName returns the display name of the teams listed at a depth
func RoundName(depth int) string {
	switch depth {
	case 0:
		return "Champion"
	case 1:
		return "Championship"
	case 2:
		return "Final Four"
	case 3:
		return "Elite Eight"
	case 4:
		return "Sweet Sixteen"
	case 5:
		return "Round of 32"
	case 6:
		return "Round of 64"
	}
	return fmt.Sprintf("Round of %d", 1<<depth)
}

// ConfirmedScore is the total of the prediction's round scores at every depth deeper than openDepth
func ConfirmedScore(prediction *bracket.MatchupTree, results *bracket.MatchupTree, openDepth int) (float64, error) {
	scores, err := prediction.RoundScores(results)
	if err != nil {
		return 0, err
	}
	var total float64
	for depth, s := range scores {
		if depth > openDepth {
			total += s
		}
	}
	return total, nil
}

// BuildReport lists the prediction's points round by round, starting from the first round, followed by the
// confirmed total.
// Preconditions: Receives a prediction over the same teams as results, and the results' open depth
// Postconditions: Returns the report and the confirmed score, or an error if the brackets differ in depth
func BuildReport(prediction *bracket.MatchupTree, results *bracket.MatchupTree, openDepth int) (string, float64, error) {
	scores, err := prediction.RoundScores(results)
	if err != nil {
		return "", 0, err
	}

	var response strings.Builder
	var total float64
	for depth := len(scores) - 1; depth >= 0; depth-- {
		if depth <= openDepth {
			fmt.Fprintf(&response, "%s: [Pending]\n", RoundName(depth))
			continue
		}
		total += scores[depth]
		fmt.Fprintf(&response, "%s: %s points [Confirmed]\n", RoundName(depth), FormatPoints(scores[depth]))
	}
	fmt.Fprintf(&response, "Confirmed total: %s", FormatPoints(total))
	return response.String(), total, nil
}

// FormatPoints renders a score without trailing zeros
func FormatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}

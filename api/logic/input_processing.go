/* input_processing.go
 * Contains the logic for processing user input: matching typed team names and reading entry ids
 */

package logic

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var entryIdPattern = regexp.MustCompile(`^\d+$`)

// CheckTeamNames resolves team names typed by a user against the teams in the bracket.
// Preconditions: receives two string slices; one containing the names the user typed and another that is a list of valid team names
// Postconditions: returns two string slices, a slice of correctly formatted team names and slice of strings containing the invalid team names
func CheckTeamNames(inputTeams []string, validTeams []string) ([]string, []string) {
	var formattedTeamNames []string
	var invalidTeams []string

	lookup := make(map[string]string)
	var validTeamsLower []string
	for _, name := range validTeams {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validTeamsLower = append(validTeamsLower, lower)
	}

	for _, team := range inputTeams {
		lowerTeam := strings.ToLower(strings.TrimSpace(team))
		fuzzyResults := fuzzy.RankFind(lowerTeam, validTeamsLower)
		switch len(fuzzyResults) {
		case 0:
			invalidTeams = append(invalidTeams, team)
		case 1:
			formattedTeamNames = append(formattedTeamNames, lookup[fuzzyResults[0].Target])
		default:
			// Prefer an exact match, otherwise take the closest ranked match
			sort.Sort(fuzzyResults)
			best := fuzzyResults[0].Target
			for _, r := range fuzzyResults {
				if r.Target == lowerTeam {
					best = r.Target
					break
				}
			}
			formattedTeamNames = append(formattedTeamNames, lookup[best])
		}
	}
	return formattedTeamNames, invalidTeams
}

// ParseEntryId accepts either a bare entry id or an entry url with an entryID query parameter
// Preconditions: Receives the raw argument typed by the user
// Postconditions: Returns the numeric entry id, or an error if none could be found
func ParseEntryId(input string) (string, error) {
	input = strings.TrimSpace(input)
	if entryIdPattern.MatchString(input) {
		return input, nil
	}

	u, err := url.Parse(input)
	if err == nil {
		if id := u.Query().Get("entryID"); entryIdPattern.MatchString(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%q is not an entry id or entry link", input)
}

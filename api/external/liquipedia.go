/* liquipedia.go
 * Contains the logic used to fetch match data from the LiquipediaDB api and assemble it into a results bracket
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"bracket-bot/api/bracket"
)

var matchIdPattern = regexp.MustCompile(`_R(\d+)-M(\d+)$`)

// GetLiquipediaMatchData gets match data from LiquipediaDB filtered by match2bracketid. Each id corresponds to one
// bracket embedded in the tournament page.
// Preconditions: Receives the bracket ids found in the page's wikitext
// Postconditions: Returns the match data json as a string or an error
func (c *Client) GetLiquipediaMatchData(ctx context.Context, bracketIds []string) (string, error) {
	var conditions []string
	for _, id := range bracketIds {
		conditions = append(conditions, fmt.Sprintf("[[match2bracketid::%s]]", id))
	}

	parsedUrl, err := url.Parse(c.opts.MatchAPIURL)
	if err != nil {
		return "", fmt.Errorf("invalid match api url: %w", err)
	}
	params := parsedUrl.Query()
	params.Set("limit", "200")
	params.Set("wiki", c.opts.Wiki)
	params.Set("conditions", strings.Join(conditions, " OR "))
	params.Set("rawstreams", "false")
	params.Set("streamurls", "false")
	parsedUrl.RawQuery = params.Encode()

	body, err := c.get(ctx, parsedUrl.String(), map[string]string{
		"Authorization": fmt.Sprintf("Apikey %s", c.opts.APIKey),
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetMatchNodesFromJson parses LiquipediaDB match data into MatchNodes
// Preconditions: Receives string containing json match data
// Postconditions: Returns the nodes in response order, or an error if any match is malformed
func GetMatchNodesFromJson(matchData string) ([]MatchNode, error) {
	var root map[string]any
	if err := json.Unmarshal([]byte(matchData), &root); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	rawResults, ok := root["result"].([]any)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'result' field: %w", ErrInvalidMatchData)
	}

	nodes := make([]MatchNode, 0, len(rawResults))
	for _, result := range rawResults {
		node, err := ParseMatchData(result)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}
	return nodes, nil
}

// ParseMatchData creates a MatchNode from a single match of the api response. Empty opponent names become TBD,
// as does the winner of an unfinished match.
func ParseMatchData(result any) (*MatchNode, error) {
	match, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("match is not an object: %w", ErrInvalidMatchData)
	}

	id, ok := match["match2id"].(string)
	if !ok {
		return nil, fmt.Errorf("missing match2id: %w", ErrInvalidMatchData)
	}

	finished, ok := match["finished"].(float64)
	if !ok || (finished != 0 && finished != 1) {
		return nil, fmt.Errorf("match %s: finished must be 0 or 1: %w", id, ErrInvalidMatchData)
	}

	var teams [2]string
	opponents, ok := match["match2opponents"].([]any)
	if !ok || len(opponents) != 2 {
		return nil, fmt.Errorf("match %s: expected exactly 2 opponents: %w", id, ErrInvalidMatchData)
	}
	for i := range opponents {
		team, ok := opponents[i].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("match %s: opponent is not an object: %w", id, ErrInvalidMatchData)
		}
		name, ok := team["name"].(string)
		if !ok {
			return nil, fmt.Errorf("match %s: opponent has no name: %w", id, ErrInvalidMatchData)
		}
		if name == "" {
			name = TBD
		}
		teams[i] = name
	}

	node := &MatchNode{Id: id, Team1: teams[0], Team2: teams[1], Winner: TBD, Finished: finished == 1}
	if node.Finished {
		winnerStr, _ := match["winner"].(string)
		winnerIndex, err := strconv.Atoi(winnerStr)
		if err != nil || winnerIndex < 1 || winnerIndex > 2 {
			return nil, fmt.Errorf("match %s: invalid winner %q: %w", id, winnerStr, ErrInvalidMatchData)
		}
		node.Winner = teams[winnerIndex-1]
	}
	return node, nil
}

// ExtractRoundAndMatchIds gets the round and match numbers from a MatchNode Id
// Id is of the form <match2bracketid>_Rxx-Myyy (e.g. RSTxQ88PoQ_R03-M001)
// Preconditions: Receives string containing match id
// Postconditions: Returns round value and match value, or an error
func ExtractRoundAndMatchIds(id string) (round int, match int, err error) {
	matches := matchIdPattern.FindStringSubmatch(id)
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("invalid ID format: %s", id)
	}
	round, _ = strconv.Atoi(matches[1])
	match, _ = strconv.Atoi(matches[2])
	return round, match, nil
}

type gameKey struct {
	round int
	match int
}

// BuildResultsBracket assembles single elimination match nodes into a bracket. Match m of round r is fed by
// matches 2m-1 and 2m of round r-1, and the last round holds the final. An unfinished game is given a
// provisional winner (the first feeder, or Team1 in the first round).
// Nodes whose id does not carry a round and match number, such as third place matches, are ignored.
// Preconditions: Receives the match nodes of one single elimination bracket
// Postconditions: Returns the bracket, the depth of the deepest unfinished game (-1 if every game is finished)
// and which games down to that depth are finished, or ErrIncompleteBracket if a game is missing or a first
// round opponent is undecided
func BuildResultsBracket(nodes []MatchNode) (*Results, error) {
	games := make(map[gameKey]MatchNode, len(nodes))
	rounds := 0
	for _, node := range nodes {
		round, match, err := ExtractRoundAndMatchIds(node.Id)
		if err != nil {
			continue
		}
		games[gameKey{round, match}] = node
		rounds = max(rounds, round)
	}
	if rounds == 0 {
		return nil, fmt.Errorf("no bracket matches: %w", ErrIncompleteBracket)
	}

	b := &resultsBuilder{
		games:     games,
		rounds:    rounds,
		openDepth: -1,
		finished:  make(map[*bracket.MatchupTree]bool, len(games)),
	}
	tree, err := b.build(rounds, 1)
	if err != nil {
		return nil, err
	}

	results := &Results{Tree: tree, OpenDepth: b.openDepth}
	if b.openDepth >= 0 {
		played, err := tree.EveryTree(b.openDepth)
		if err != nil {
			return nil, err
		}
		results.Decided = make([]bool, len(played))
		for i, game := range played {
			results.Decided[i] = b.finished[game]
		}
	}
	return results, nil
}

type resultsBuilder struct {
	games     map[gameKey]MatchNode
	rounds    int
	openDepth int
	finished  map[*bracket.MatchupTree]bool
}

// build returns the game for round and match, recording whether it has been played
func (b *resultsBuilder) build(round int, match int) (*bracket.MatchupTree, error) {
	tree, err := b.buildGame(round, match)
	if err != nil {
		return nil, err
	}
	b.finished[tree] = b.games[gameKey{round, match}].Finished
	return tree, nil
}

func (b *resultsBuilder) buildGame(round int, match int) (*bracket.MatchupTree, error) {
	node, ok := b.games[gameKey{round, match}]
	if !ok {
		return nil, fmt.Errorf("round %d match %d missing: %w", round, match, ErrIncompleteBracket)
	}
	if !node.Finished {
		b.openDepth = max(b.openDepth, b.rounds-round)
	}

	if round == 1 {
		if node.Team1 == TBD || node.Team2 == TBD {
			return nil, fmt.Errorf("first round match %s has an undecided opponent: %w", node.Id, ErrIncompleteBracket)
		}
		if node.Finished && node.Winner == node.Team2 {
			return bracket.New(bracket.Team(node.Team2), bracket.Team(node.Team1))
		}
		return bracket.New(bracket.Team(node.Team1), bracket.Team(node.Team2))
	}

	first, err := b.build(round-1, 2*match-1)
	if err != nil {
		return nil, err
	}
	second, err := b.build(round-1, 2*match)
	if err != nil {
		return nil, err
	}

	if !node.Finished {
		return bracket.New(first, second)
	}
	switch node.Winner {
	case first.WinnerName():
		return bracket.New(first, second)
	case second.WinnerName():
		return bracket.New(second, first)
	}
	return nil, fmt.Errorf("match %s winner %q did not play in its feeder matches: %w", node.Id, node.Winner, ErrInvalidMatchData)
}

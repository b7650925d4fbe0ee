/* scraper.go
 * Contains the bracket challenge entry scraper. An entry page lists every game as a .slots element inside a
 * matchup element whose class carries the matchup number (m_1, m_2, ...). Matchups are numbered round by
 * round starting from the first round. In each game the picked team is marked .selectedToAdvance and sits in
 * slot s_1 or s_2.
 */

package external

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"bracket-bot/api/bracket"
)

// FetchEntry scrapes the bracket picked in a bracket challenge entry
// Preconditions: Receives the entry id shown in the entry's url
// Postconditions: Returns the predicted bracket, or an error if the page could not be fetched or parsed
func (c *Client) FetchEntry(ctx context.Context, entryID string) (*bracket.MatchupTree, error) {
	entryURL, err := url.Parse(c.opts.EntryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid entry url: %w", err)
	}
	params := entryURL.Query()
	params.Set("entryID", entryID)
	entryURL.RawQuery = params.Encode()

	body, err := c.get(ctx, entryURL.String(), nil)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry %s: %w", entryID, err)
	}
	tree, err := ParseEntry(doc, c.opts.Rounds)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", entryID, err)
	}
	return tree, nil
}

// FetchEntries scrapes several entries concurrently. The rate limiter still applies across all of them.
// Preconditions: Receives a map of user id to entry id
// Postconditions: Returns a map of user id to predicted bracket, or the first error encountered
func (c *Client) FetchEntries(ctx context.Context, entryIDs map[string]string) (map[string]*bracket.MatchupTree, error) {
	type scraped struct {
		user string
		tree *bracket.MatchupTree
	}
	results := make(chan scraped, len(entryIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for user, entryID := range entryIDs {
		g.Go(func() error {
			tree, err := c.FetchEntry(ctx, entryID)
			if err != nil {
				return fmt.Errorf("user %s: %w", user, err)
			}
			results <- scraped{user: user, tree: tree}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	out := make(map[string]*bracket.MatchupTree, len(entryIDs))
	for r := range results {
		out[r.user] = r.tree
	}
	return out, nil
}

// ParseEntry builds the predicted bracket top down, starting from the champion's final
// Preconditions: Receives a parsed entry page and the number of rounds in the bracket
// Postconditions: Returns the predicted bracket, or ErrGameNotFound if a picked game cannot be located
func ParseEntry(doc *goquery.Document, rounds int) (*bracket.MatchupTree, error) {
	champion := text(doc.Find(".champion .picked .name").First())
	if champion == "" {
		return nil, fmt.Errorf("no champion picked: %w", ErrGameNotFound)
	}
	return parseGame(doc, rounds, rounds, champion)
}

func parseGame(doc *goquery.Document, rounds int, round int, winner string) (*bracket.MatchupTree, error) {
	game := findGame(doc, rounds, round, winner)
	if game == nil {
		return nil, fmt.Errorf("round %d game won by %q: %w", round, winner, ErrGameNotFound)
	}

	loserSlot := game.Find(".s_2").First()
	if game.Find(".selectedToAdvance").First().Parent().HasClass("s_2") {
		loserSlot = game.Find(".s_1").First()
	}

	if round == 1 {
		loser := text(loserSlot.Find(".name").First())
		return bracket.New(bracket.Team(winner), bracket.Team(loser))
	}

	loser := text(loserSlot.Find(".picked .name").First())
	winnerTree, err := parseGame(doc, rounds, round-1, winner)
	if err != nil {
		return nil, err
	}
	loserTree, err := parseGame(doc, rounds, round-1, loser)
	if err != nil {
		return nil, err
	}
	return bracket.New(winnerTree, loserTree)
}

// findGame returns the .slots element of the given round whose advancing team is winner
func findGame(doc *goquery.Document, rounds int, round int, winner string) *goquery.Selection {
	lo, hi := matchupWindow(rounds, round)

	var game *goquery.Selection
	doc.Find(".slots").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n, ok := matchupNumber(s.Parent())
		if !ok || n < lo || n > hi {
			return true
		}
		if text(s.Find(".selectedToAdvance").First().Find(".name").First()) == winner {
			game = s
			return false
		}
		return true
	})
	return game
}

// matchupWindow returns the first and last matchup numbers of a round. A bracket with n rounds has 2^(n-r)
// games in round r.
func matchupWindow(rounds int, round int) (int, int) {
	before := 0
	for r := 1; r < round; r++ {
		before += 1 << (rounds - r)
	}
	return before + 1, before + 1<<(rounds-round)
}

func matchupNumber(s *goquery.Selection) (int, bool) {
	class, _ := s.Attr("class")
	for _, c := range strings.Fields(class) {
		if n, ok := strings.CutPrefix(c, "m_"); ok {
			num, err := strconv.Atoi(n)
			return num, err == nil
		}
	}
	return 0, false
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

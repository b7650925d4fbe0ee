/* wikimedia.go
 * Contains the logic used to fetch wikitext from the MediaWiki api and find the brackets it embeds
 */

package external

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	bracketTemplate = regexp.MustCompile(`(?s)\{\{\s*Bracket\s*\|([^}]*)\}\}`)
	htmlComment     = regexp.MustCompile(`<!--.*?-->`)
)

// GetWikitext fetches the raw wikitext of a page. No parsing is performed on the text.
// Preconditions: Receives the page path relative to the wiki (e.g. PGL/2024/Copenhagen/Playoffs)
// Postconditions: Returns the raw wikitext, or an error if the page could not be fetched
func (c *Client) GetWikitext(ctx context.Context, page string) (string, error) {
	pageURL := fmt.Sprintf("%s/%s/%s?action=raw", c.opts.WikiURL, c.opts.Wiki, strings.TrimPrefix(page, "/"))
	if _, err := url.Parse(pageURL); err != nil {
		return "", fmt.Errorf("invalid page %q: %w", page, err)
	}

	body, err := c.get(ctx, pageURL, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ExtractBracketIds returns the id of every {{Bracket}} template in the wikitext, in page order
// Preconditions: Receives string containing wiki text
// Postconditions: Returns the ids, or ErrNoBracketIds if the page has none
func ExtractBracketIds(wikitext string) ([]string, error) {
	var ids []string
	for _, match := range bracketTemplate.FindAllStringSubmatch(wikitext, -1) {
		// Parse pipe separated key value pairs from the template
		for _, part := range strings.Split(match[1], "|") {
			part = strings.TrimSpace(part)
			if !strings.HasPrefix(part, "id=") {
				continue
			}
			id := strings.TrimPrefix(part, "id=")
			id = strings.TrimSpace(htmlComment.ReplaceAllString(id, ""))
			if id != "" {
				ids = append(ids, id)
			}
			break
		}
	}

	if len(ids) == 0 {
		return nil, ErrNoBracketIds
	}
	return ids, nil
}

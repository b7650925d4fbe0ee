/* external.go
 * Contains the HTTP client used to fetch data from bracket challenge pages, the MediaWiki api and the LiquipediaDB
 * api. Every request goes through an in memory HTTP cache and a rate limiter so repeated lookups stay polite.
 */

package external

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent   = "BracketBot/1.0"
	DefaultEntryURL    = "https://fantasy.espn.com/tournament-challenge-bracket/2022/en/entry"
	DefaultWikiURL     = "https://liquipedia.net"
	DefaultMatchAPIURL = "https://api.liquipedia.net/api/v3/match"
	DefaultWiki        = "counterstrike"
	DefaultRounds      = 6
	DefaultInterval    = 2 * time.Second
	DefaultCacheTTL    = 5 * time.Minute
)

// Options configures a Client. Zero values fall back to the defaults above, except Interval where a negative
// value disables rate limiting.
type Options struct {
	UserAgent   string
	EntryURL    string
	WikiURL     string
	MatchAPIURL string
	Wiki        string
	APIKey      string
	Rounds      int
	Interval    time.Duration
	CacheTTL    time.Duration
}

// Client fetches pages from the external sources the bot depends on
type Client struct {
	opts    Options
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient returns a client with an in memory response cache that keeps every successful response for
// opts.CacheTTL regardless of the origin's cache headers
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.EntryURL == "" {
		opts.EntryURL = DefaultEntryURL
	}
	if opts.WikiURL == "" {
		opts.WikiURL = DefaultWikiURL
	}
	if opts.MatchAPIURL == "" {
		opts.MatchAPIURL = DefaultMatchAPIURL
	}
	if opts.Wiki == "" {
		opts.Wiki = DefaultWiki
	}
	if opts.Rounds == 0 {
		opts.Rounds = DefaultRounds
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}

	transport := httpcache.NewMemoryCacheTransport()
	transport.Transport = &maxAgeTransport{
		wrapped: http.DefaultTransport,
		maxAge:  opts.CacheTTL,
	}

	return &Client{
		opts:    opts,
		http:    &http.Client{Transport: transport, Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Rounds is the number of rounds in the bracket challenge entries this client scrapes
func (c *Client) Rounds() int {
	return c.opts.Rounds
}

// get performs a rate limited GET request and returns the decoded body
// Preconditions: Receives a context, an absolute url and any extra headers to apply
// Postconditions: Returns the body, or ErrUnexpectedStatus if the server does not reply 200
func (c *Client) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", c.opts.UserAgent)
	request.Header.Set("Accept-Encoding", "gzip")
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %w", url, response.StatusCode, ErrUnexpectedStatus)
	}

	var reader io.Reader = response.Body
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// maxAgeTransport replaces the origin's cache headers so httpcache keeps responses for maxAge
type maxAgeTransport struct {
	wrapped http.RoundTripper
	maxAge  time.Duration
}

func (t *maxAgeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.wrapped.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		resp.Header.Del("Pragma")
		resp.Header.Del("Expires")
		resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(t.maxAge/time.Second)))
	}
	return resp, nil
}

// FetchResults builds the current results bracket for a Liquipedia page
// Preconditions: Receives the page path relative to the wiki (e.g. PGL/2024/Copenhagen/Playoffs)
// Postconditions: Returns the results bracket and its open depth, or an error if any step fails
func (c *Client) FetchResults(ctx context.Context, page string) (*Results, error) {
	wikitext, err := c.GetWikitext(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("error getting wikitext: %w", err)
	}

	ids, err := ExtractBracketIds(wikitext)
	if err != nil {
		return nil, fmt.Errorf("error extracting bracket ids: %w", err)
	}

	matchData, err := c.GetLiquipediaMatchData(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error fetching match data from liquipedia api: %w", err)
	}

	nodes, err := GetMatchNodesFromJson(matchData)
	if err != nil {
		return nil, err
	}

	results, err := BuildResultsBracket(nodes)
	if err != nil {
		return nil, err
	}
	results.Page = page
	return results, nil
}

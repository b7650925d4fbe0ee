/* external_test.go
 * Contains unit tests for the HTTP client in external.go using httptest
 */

package external

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client pointed at a test server with rate limiting disabled
func newTestClient(serverURL string) *Client {
	return NewClient(Options{
		EntryURL:    serverURL + "/entry",
		WikiURL:     serverURL,
		MatchAPIURL: serverURL + "/api/v3/match",
		APIKey:      "secret",
		Rounds:      2,
		Interval:    -1,
	})
}

// region NewClient tests

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{})

	assert.Equal(t, DefaultUserAgent, c.opts.UserAgent)
	assert.Equal(t, DefaultWiki, c.opts.Wiki)
	assert.Equal(t, DefaultRounds, c.Rounds())
	assert.Equal(t, DefaultCacheTTL, c.opts.CacheTTL)
	assert.InDelta(t, 0.5, float64(c.limiter.Limit()), 0.0001)
}

// endregion

// region GetWikitext tests

func TestGetWikitext_Success(t *testing.T) {
	expected := "{{Bracket|Bracket/8|id=abc123}}"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/counterstrike/PGL/2024/Playoffs", r.URL.Path)
		assert.Equal(t, "raw", r.URL.Query().Get("action"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(expected))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).GetWikitext(context.Background(), "PGL/2024/Playoffs")

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestGetWikitext_GzipResponse(t *testing.T) {
	expected := "{{Bracket|id=gzip123}}"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		gz.Write([]byte(expected))
		gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).GetWikitext(context.Background(), "Page")

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestGetWikitext_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).GetWikitext(context.Background(), "Page")

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Empty(t, result)
}

func TestGetWikitext_Cached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Cache-Control", "no-cache")
		w.Write([]byte("{{Bracket|id=cached}}"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	for range 3 {
		result, err := c.GetWikitext(context.Background(), "Page")
		require.NoError(t, err)
		assert.Equal(t, "{{Bracket|id=cached}}", result)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetWikitext_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unused"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).GetWikitext(ctx, "Page")
	assert.ErrorIs(t, err, context.Canceled)
}

// endregion

// region ExtractBracketIds tests

func TestExtractBracketIds(t *testing.T) {
	wikitext := `==Format==
Single-elimination bracket
==Results==
{{Bracket|Bracket/8|id=RSTxQ88PoQ
|R1M1header=Quarterfinals}}
{{Bracket|Bracket/2|id=Q7Ewk1PNwi <!-- Grand Final -->}}
{{Matchlist|id=ignored}}`

	ids, err := ExtractBracketIds(wikitext)

	require.NoError(t, err)
	assert.Equal(t, []string{"RSTxQ88PoQ", "Q7Ewk1PNwi"}, ids)
}

func TestExtractBracketIds_None(t *testing.T) {
	_, err := ExtractBracketIds("{{Matchlist|id=abc}}")
	assert.ErrorIs(t, err, ErrNoBracketIds)
}

// endregion

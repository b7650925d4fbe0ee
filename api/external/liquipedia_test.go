/* liquipedia_test.go
 * Contains unit tests for liquipedia.go
 */

package external

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-bot/api/bracket"
)

// matchJSON renders one LiquipediaDB match object
func matchJSON(id string, finished int, winner string, team1 string, team2 string) string {
	return fmt.Sprintf(`{"match2id": %q, "finished": %d, "winner": %q,
		"match2opponents": [{"name": %q}, {"name": %q}]}`, id, finished, winner, team1, team2)
}

func resultJSON(matches ...string) string {
	return `{"result": [` + strings.Join(matches, ",") + `]}`
}

// region ParseMatchData tests

func TestGetMatchNodesFromJson(t *testing.T) {
	data := resultJSON(
		matchJSON("abc_R01-M001", 1, "2", "Vitality", "MOUZ"),
		matchJSON("abc_R02-M001", 0, "", "MOUZ", ""),
	)

	nodes, err := GetMatchNodesFromJson(data)

	require.NoError(t, err)
	assert.Equal(t, []MatchNode{
		{Id: "abc_R01-M001", Team1: "Vitality", Team2: "MOUZ", Winner: "MOUZ", Finished: true},
		{Id: "abc_R02-M001", Team1: "MOUZ", Team2: TBD, Winner: TBD, Finished: false},
	}, nodes)
}

func TestGetMatchNodesFromJson_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing result", `{"error": "bad key"}`},
		{"finished not binary", resultJSON(matchJSON("abc_R01-M001", 2, "1", "a", "b"))},
		{"winner out of range", resultJSON(matchJSON("abc_R01-M001", 1, "3", "a", "b"))},
		{"one opponent", `{"result": [{"match2id": "x", "finished": 0, "match2opponents": [{"name": "a"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetMatchNodesFromJson(tt.data)
			assert.ErrorIs(t, err, ErrInvalidMatchData)
		})
	}
}

func TestGetMatchNodesFromJson_BadJson(t *testing.T) {
	_, err := GetMatchNodesFromJson("{")
	assert.Error(t, err)
}

func TestExtractRoundAndMatchIds(t *testing.T) {
	round, match, err := ExtractRoundAndMatchIds("RSTxQ88PoQ_R03-M001")
	require.NoError(t, err)
	assert.Equal(t, 3, round)
	assert.Equal(t, 1, match)

	_, _, err = ExtractRoundAndMatchIds("RSTxQ88PoQ_RxxTHIRD")
	assert.Error(t, err)
}

// endregion

// region BuildResultsBracket tests

func fourTeamNodes(finalFinished bool) []MatchNode {
	final := MatchNode{Id: "abc_R02-M001", Team1: "a", Team2: "b", Winner: TBD}
	if finalFinished {
		final.Winner, final.Finished = "b", true
	}
	return []MatchNode{
		{Id: "abc_R01-M001", Team1: "a", Team2: "c", Winner: "a", Finished: true},
		{Id: "abc_R01-M002", Team1: "d", Team2: "b", Winner: "b", Finished: true},
		final,
		{Id: "abc_RxMTP", Team1: "c", Team2: "d", Winner: "c", Finished: true},
	}
}

func TestBuildResultsBracket_InProgress(t *testing.T) {
	results, err := BuildResultsBracket(fourTeamNodes(false))

	require.NoError(t, err)
	expected := bracket.MustNew(
		bracket.MustNew(bracket.Team("a"), bracket.Team("c")),
		bracket.MustNew(bracket.Team("b"), bracket.Team("d")),
	)
	assert.True(t, expected.Equal(results.Tree), "got %s", results.Tree.CanonicalForm())
	assert.Equal(t, 0, results.OpenDepth)
	assert.Equal(t, []bool{false}, results.Decided)
}

func TestBuildResultsBracket_Complete(t *testing.T) {
	results, err := BuildResultsBracket(fourTeamNodes(true))

	require.NoError(t, err)
	assert.Equal(t, "b", results.Tree.WinnerName())
	assert.Equal(t, "a", results.Tree.LoserName())
	assert.Equal(t, -1, results.OpenDepth)
	assert.True(t, results.Complete())
	assert.Nil(t, results.Decided)
}

func TestBuildResultsBracket_FirstRoundOpen(t *testing.T) {
	nodes := fourTeamNodes(false)
	nodes[1].Finished, nodes[1].Winner = false, TBD
	nodes[2].Team2 = TBD

	results, err := BuildResultsBracket(nodes)

	require.NoError(t, err)
	assert.Equal(t, 1, results.OpenDepth)
	// Team1 advances provisionally
	assert.Equal(t, "d", results.Tree.LoserName())
	// final, a over c, d against b
	assert.Equal(t, []bool{false, true, false}, results.Decided)
}

func TestBuildResultsBracket_Errors(t *testing.T) {
	missing := fourTeamNodes(true)[1:]

	undecided := fourTeamNodes(true)
	undecided[0].Team2 = TBD

	mismatch := fourTeamNodes(true)
	mismatch[2].Winner = "z"

	_, err := BuildResultsBracket(missing)
	assert.ErrorIs(t, err, ErrIncompleteBracket)

	_, err = BuildResultsBracket(undecided)
	assert.ErrorIs(t, err, ErrIncompleteBracket)

	_, err = BuildResultsBracket(mismatch)
	assert.ErrorIs(t, err, ErrInvalidMatchData)

	_, err = BuildResultsBracket(nil)
	assert.ErrorIs(t, err, ErrIncompleteBracket)
}

// endregion

// region FetchResults tests

func TestFetchResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/counterstrike/Test/Playoffs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{{Bracket|Bracket/4|id=abc}}"))
	})
	mux.HandleFunc("/api/v3/match", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Apikey secret", r.Header.Get("Authorization"))
		assert.Equal(t, "[[match2bracketid::abc]]", r.URL.Query().Get("conditions"))
		assert.Equal(t, "counterstrike", r.URL.Query().Get("wiki"))
		w.Write([]byte(resultJSON(
			matchJSON("abc_R01-M001", 1, "1", "a", "c"),
			matchJSON("abc_R01-M002", 1, "2", "d", "b"),
			matchJSON("abc_R02-M001", 0, "", "a", "b"),
		)))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	results, err := newTestClient(server.URL).FetchResults(context.Background(), "Test/Playoffs")

	require.NoError(t, err)
	assert.Equal(t, "Test/Playoffs", results.Page)
	assert.Equal(t, 0, results.OpenDepth)
	assert.Equal(t, []bool{false}, results.Decided)
	assert.False(t, results.Complete())
	assert.Equal(t, "((a c) (b d))", results.Tree.CanonicalForm())
}

func TestFetchResults_NoBracket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("no templates here"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchResults(context.Background(), "Test/Playoffs")
	assert.ErrorIs(t, err, ErrNoBracketIds)
}

// endregion

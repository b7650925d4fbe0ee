/* models.go
 * This file contains the structs stored in each collection and the conversion of brackets to and from their
 * stored mapping form
 */

package store

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bracket-bot/api/bracket"
)

// Entry is one user's predicted bracket
type Entry struct {
	UserId    string
	Username  string
	EntryId   string // bracket challenge entry the bracket was scraped from, empty for uploaded documents
	Bracket   *bracket.MatchupTree
	UpdatedAt time.Time
}

// Results is the pool's results bracket. Games at depths 0 through OpenDepth may still be undecided, and
// OpenDepth is -1 once every game has been played. Decided is indexed like Tree.EveryTree(OpenDepth) and marks
// the games in that range that have already been played; nil means none of them have.
type Results struct {
	Page      string
	Tree      *bracket.MatchupTree
	OpenDepth int
	Decided   []bool
	TTL       int64
	UpdatedAt time.Time
}

// Fixed returns the decided games covered by a scenario enumeration to the given depth
func (r Results) Fixed(depth int) []bool {
	n := 1<<(depth+1) - 1
	if depth < 0 || len(r.Decided) == 0 {
		return nil
	}
	return r.Decided[:min(n, len(r.Decided))]
}

// Expired reports whether the results should be fetched again
func (r Results) Expired(now time.Time) bool {
	return r.TTL < now.Unix()
}

type LeaderboardEntry struct {
	UserId       string    `bson:"userid" json:"userId"`
	Username     string    `bson:"username" json:"username"`
	Score        float64   `bson:"score" json:"score"`
	MaxScore     float64   `bson:"maxscore" json:"maxScore"`
	WinningPaths int       `bson:"winningpaths" json:"winningPaths"`
	BestPath     string    `bson:"bestpath,omitempty" json:"bestPath,omitempty"`
	RoundScores  []float64 `bson:"roundscores,omitempty" json:"roundScores,omitempty"`
}

type Leaderboard struct {
	Pool          string             `bson:"pool" json:"pool"`
	OpenDepth     int                `bson:"opendepth" json:"openDepth"`
	ScenarioDepth int                `bson:"scenariodepth" json:"scenarioDepth"`
	Scenarios     int                `bson:"scenarios" json:"scenarios"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
	Entries       []LeaderboardEntry `bson:"entries" json:"entries"`
}

// entryRecord is the stored form of an Entry
type entryRecord struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	Pool      string             `bson:"pool"`
	UserId    string             `bson:"userid"`
	Username  string             `bson:"username"`
	EntryId   string             `bson:"entryid,omitempty"`
	Bracket   bson.M             `bson:"bracket"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// resultsRecord is the stored form of Results
type resultsRecord struct {
	Pool      string    `bson:"pool"`
	Page      string    `bson:"page,omitempty"`
	Bracket   bson.M    `bson:"bracket"`
	OpenDepth int       `bson:"opendepth"`
	Decided   []bool    `bson:"decided,omitempty"`
	TTL       int64     `bson:"ttl"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r entryRecord) toEntry() (Entry, error) {
	tree, err := treeFromBson(r.Bracket)
	if err != nil {
		return Entry{}, fmt.Errorf("entry for %s: %w", r.UserId, err)
	}
	return Entry{
		UserId:    r.UserId,
		Username:  r.Username,
		EntryId:   r.EntryId,
		Bracket:   tree,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (r resultsRecord) toResults() (Results, error) {
	tree, err := treeFromBson(r.Bracket)
	if err != nil {
		return Results{}, fmt.Errorf("results for %s: %w", r.Pool, err)
	}
	return Results{
		Page:      r.Page,
		Tree:      tree,
		OpenDepth: r.OpenDepth,
		Decided:   r.Decided,
		TTL:       r.TTL,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// treeFromBson rebuilds a bracket from its stored mapping
func treeFromBson(m bson.M) (*bracket.MatchupTree, error) {
	if m == nil {
		return nil, fmt.Errorf("missing bracket: %w", bracket.ErrInvalidType)
	}
	normalized, ok := normalize(m).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("bracket is not a document: %w", bracket.ErrInvalidType)
	}
	return bracket.FromMapping(normalized)
}

// normalize converts the document types the driver may decode nested values into (bson.M, bson.D) into plain
// maps so FromMapping can type switch on them
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.M:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	}
	return v
}

func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalize(v)
	}
	return out
}

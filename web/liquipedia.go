/* liquipedia.go
 * Contains the webhook endpoint LiquipediaDB calls when a page changes
 */

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

func isRelevantTournamentPage(page, base string) bool {
	if page == base {
		return true
	}
	return strings.HasPrefix(page, base+"/")
}

// LiquipediaWebhookHandler receives a webhook from LiquipediaDB and kicks off refreshing the stored results and
// the leaderboard when the event belongs to the pool's tournament
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Responds 202 and refreshes in the background for relevant events, 200 for ignored events
func (s *Server) LiquipediaWebhookHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var event LiquipediaEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		s.log.Infow("failed to decode webhook", "error", err)
		writeJSONError(s.log, w, http.StatusBadRequest, "invalid webhook body")
		return
	}

	if s.page == "" || event.Wiki != s.wiki || !isRelevantTournamentPage(event.Page, s.page) {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.log.Infow("liquipedia event", "wiki", event.Wiki, "page", event.Page, "event", event.Event)

	s.refreshes.Add(1)
	go func(e LiquipediaEvent) {
		defer s.refreshes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.refreshTimeout)
		defer cancel()
		s.refresh(ctx, e)
	}(event)

	w.WriteHeader(http.StatusAccepted)
}

// refresh fetches the results again and regenerates the leaderboard from them
func (s *Server) refresh(ctx context.Context, event LiquipediaEvent) {
	if _, err := s.api.RefreshResults(ctx); err != nil {
		s.log.Errorw("refreshing results failed", "page", event.Page, "error", err)
		return
	}
	if _, err := s.api.GenerateLeaderboard(ctx); err != nil {
		s.log.Errorw("generating leaderboard failed", "page", event.Page, "error", err)
	}
}

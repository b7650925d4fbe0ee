/* handlers.go
 * Contains the router and the pool endpoints: leaderboard, results and entries
 */

package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bracket-bot/api/api"
	"bracket-bot/api/docstore"
	"bracket-bot/api/shared"
)

// maxDocumentSize bounds uploaded bracket documents
const maxDocumentSize = 1 << 20

// Router returns the server's routes
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/webhooks/liquipedia", s.LiquipediaWebhookHandler)
	r.Get("/leaderboard", s.LeaderboardHandler)
	r.Post("/leaderboard", s.GenerateLeaderboardHandler)
	r.Get("/results", s.ResultsHandler)
	r.Put("/results/{name}", s.LoadResultsHandler)
	r.Post("/entries/refresh", s.RefreshEntriesHandler)
	r.Get("/entries/{userID}", s.CheckEntryHandler)
	r.Put("/entries/{userID}", s.PutEntryHandler)
	return r
}

// requestLogger logs every request once its response has been written
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"requestId", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(log *zap.SugaredLogger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("writeJSON encode error: %v", err)
	}
}

func writeJSONError(log *zap.SugaredLogger, w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	log.Debugf("writeJSONError: %s", msg)
}

// statusFor maps API errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, api.ErrNoResults), errors.Is(err, api.ErrNoEntry),
		errors.Is(err, api.ErrNoLeaderboard), errors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, api.ErrInvalidDocument), errors.Is(err, docstore.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrDifferentBracket):
		return http.StatusUnprocessableEntity
	case errors.Is(err, api.ErrNoDocStore):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Errorw("request failed", "error", err)
		writeJSONError(s.log, w, status, "internal error")
		return
	}
	writeJSONError(s.log, w, status, err.Error())
}

// LeaderboardHandler returns the stored leaderboard
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	board, err := s.api.FetchLeaderboard()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(s.log, w, http.StatusOK, board)
}

// GenerateLeaderboardHandler regenerates the leaderboard from the current results and returns it
func (s *Server) GenerateLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	board, err := s.api.GenerateLeaderboard(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(s.log, w, http.StatusOK, board)
}

type resultsResponse struct {
	Page      string `json:"page,omitempty"`
	OpenDepth int    `json:"openDepth"`
	Bracket   any    `json:"bracket"`
}

// ResultsHandler returns the current results bracket in the mapping format
func (s *Server) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	results, err := s.api.Results(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(s.log, w, http.StatusOK, resultsResponse{
		Page:      results.Page,
		OpenDepth: results.OpenDepth,
		Bracket:   results.Tree.ToMapping(),
	})
}

// LoadResultsHandler replaces the results with a document from the document store. The openDepth query
// parameter defaults to -1, a finished tournament.
func (s *Server) LoadResultsHandler(w http.ResponseWriter, r *http.Request) {
	openDepth := -1
	if v := r.URL.Query().Get("openDepth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			writeJSONError(s.log, w, http.StatusBadRequest, "openDepth must be an integer")
			return
		}
		openDepth = d
	}

	results, err := s.api.LoadResults(r.Context(), chi.URLParam(r, "name"), openDepth)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(s.log, w, http.StatusOK, resultsResponse{
		OpenDepth: results.OpenDepth,
		Bracket:   results.Tree.ToMapping(),
	})
}

// CheckEntryHandler returns a user's round by round report
func (s *Server) CheckEntryHandler(w http.ResponseWriter, r *http.Request) {
	user := shared.User{UserId: chi.URLParam(r, "userID")}
	report, err := s.api.CheckBracket(r.Context(), user)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(s.log, w, http.StatusOK, map[string]string{"userId": user.UserId, "report": report})
}

// PutEntryHandler stores a bracket document as a user's bracket. The username query parameter names the user.
func (s *Server) PutEntryHandler(w http.ResponseWriter, r *http.Request) {
	user := shared.User{UserId: chi.URLParam(r, "userID"), Username: r.URL.Query().Get("username")}
	if user.Username == "" {
		user.Username = user.UserId
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSONError(s.log, w, http.StatusRequestEntityTooLarge, "bracket document is too large")
		return
	} else if err != nil {
		writeJSONError(s.log, w, http.StatusBadRequest, "failed to read body")
		return
	}

	if err := s.api.SetUserBracketDocument(r.Context(), user, data); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshEntriesHandler scrapes every bracket challenge entry again
func (s *Server) RefreshEntriesHandler(w http.ResponseWriter, r *http.Request) {
	updated, err := s.api.RefreshEntries(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(s.log, w, http.StatusOK, map[string]int{"updated": updated})
}

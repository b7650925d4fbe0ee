/* models.go
 * Contains the configuration and server types for the web package
 */

package web

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"bracket-bot/api/api"
)

// DefaultWiki is the Liquipedia wiki webhook events are accepted from when none is configured
const DefaultWiki = "counterstrike"

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	Log  *zap.SugaredLogger
	// Wiki and Page select which Liquipedia webhook events trigger a refresh
	Wiki string
	Page string
	// RefreshTimeout bounds a refresh started by a webhook
	RefreshTimeout time.Duration
}

// Server handles webhook and pool requests
type Server struct {
	api            *api.API
	log            *zap.SugaredLogger
	wiki           string
	page           string
	refreshTimeout time.Duration

	// tracks refreshes started by webhooks
	refreshes sync.WaitGroup
}

// LiquipediaEvent is the body of a Liquipedia webhook
type LiquipediaEvent struct {
	Wiki  string `json:"wiki"`
	Page  string `json:"page"`
	Event string `json:"event"`
}

// NewServer creates a Server from cfg, filling in defaults
func NewServer(cfg Config) *Server {
	s := &Server{
		api:            cfg.API,
		log:            cfg.Log,
		wiki:           cfg.Wiki,
		page:           cfg.Page,
		refreshTimeout: cfg.RefreshTimeout,
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	if s.wiki == "" {
		s.wiki = DefaultWiki
	}
	if s.refreshTimeout == 0 {
		s.refreshTimeout = 5 * time.Minute
	}
	return s
}

// Wait blocks until every refresh started by a webhook has finished
func (s *Server) Wait() {
	s.refreshes.Wait()
}

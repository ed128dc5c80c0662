// internal/server/server.go

// Package server exposes the intake engine over HTTP. Handlers are thin:
// they decode, call into the form packages, and encode; all form semantics
// live below this layer.
package server

import (
	"context"
	"net/http"
	"net/http/pprof"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"intake-service/internal/common/config"
	"intake-service/internal/common/database"
	"intake-service/internal/common/logger"
	"intake-service/internal/common/observability"
	"intake-service/internal/form/geo"
	"intake-service/internal/form/navigation"
	"intake-service/internal/form/session"
	"intake-service/internal/form/suggestion"
)

// Deps carries everything the server needs wired in.
type Deps struct {
	Config      *config.Config
	Log         logger.Logger
	Store       *session.Store
	Debouncer   *session.Debouncer
	Controller  *navigation.Controller
	Suggestions *suggestion.Service
	Redis       *database.RedisClient
	Obs         *observability.Observability
}

type Server struct {
	cfg         *config.Config
	log         logger.Logger
	store       *session.Store
	debouncer   *session.Debouncer
	controller  *navigation.Controller
	suggestions *suggestion.Service
	redis       *database.RedisClient
	obs         *observability.Observability

	mu         sync.Mutex
	appliers   map[string]*applierEntry
	applierTTL time.Duration
	pending    map[string]map[string]interface{}
}

// applierEntry stamps the per-session echo state with its last use so
// abandoned sessions can be pruned alongside their Redis TTL.
type applierEntry struct {
	applier  *geo.Applier
	lastUsed time.Time
}

func New(deps Deps) *Server {
	applierTTL := time.Duration(deps.Config.Session.TTL) * time.Second
	if applierTTL <= 0 {
		applierTTL = time.Hour
	}
	return &Server{
		cfg:         deps.Config,
		log:         deps.Log.WithFields(map[string]interface{}{"component": "http-server"}),
		store:       deps.Store,
		debouncer:   deps.Debouncer,
		controller:  deps.Controller,
		suggestions: deps.Suggestions,
		redis:       deps.Redis,
		obs:         deps.Obs,
		appliers:    map[string]*applierEntry{},
		applierTTL:  applierTTL,
		pending:     map[string]map[string]interface{}{},
	}
}

// applier returns the per-session echo-suppression state for the location
// fields. Entries idle past the session TTL are swept on the way.
func (s *Server) applier(sessionID string) *geo.Applier {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.appliers {
		if now.Sub(e.lastUsed) > s.applierTTL {
			delete(s.appliers, id)
		}
	}

	e, ok := s.appliers[sessionID]
	if !ok {
		e = &applierEntry{applier: geo.NewApplier()}
		s.appliers[sessionID] = e
	}
	e.lastUsed = now
	return e.applier
}

// dropApplier forgets a session's echo markers, on reset and submit.
func (s *Server) dropApplier(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.appliers, sessionID)
}

// queueEdits accumulates settled field values for the debounced writer.
// Successive patches within one window merge instead of replacing.
func (s *Server) queueEdits(sessionID string, edits map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.pending[sessionID]
	if !ok {
		q = map[string]interface{}{}
		s.pending[sessionID] = q
	}
	for field, value := range edits {
		q[field] = value
	}
}

// takeEdits drains the queued edits for a session.
func (s *Server) takeEdits(sessionID string) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.pending[sessionID]
	delete(s.pending, sessionID)
	return q
}

// Router assembles the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(s.requestMetrics)
	r.Use(localeMiddleware)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/profile", pprof.Profile)
		r.Get("/trace", pprof.Trace)
	})

	r.Route("/api/v1/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetSession)
		r.Patch("/draft", s.handlePatchDraft)
		r.Post("/advance", s.handleAdvance)
		r.Post("/retreat", s.handleRetreat)
		r.Post("/reset", s.handleReset)
		r.Post("/submit", s.handleSubmit)

		r.Route("/suggestions", func(r chi.Router) {
			r.Post("/", s.handleSuggestionRequest)
			r.Post("/rewrite", s.handleSuggestionRewrite)
			r.Post("/accept", s.handleSuggestionAccept)
			r.Post("/cancel", s.handleSuggestionCancel)
		})
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.redis.Ping(ctx); err != nil {
		s.log.WithError(err).Warn("Health check failed", map[string]interface{}{})
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

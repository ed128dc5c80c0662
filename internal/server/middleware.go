// internal/server/middleware.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"intake-service/internal/common/i18n"
)

const healthTimeout = 5 * time.Second

type contextKey string

const translatorKey contextKey = "translator"

// localeMiddleware resolves the request locale from ?lang= or
// Accept-Language and stores the matching translator in the context.
func localeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := i18n.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), translatorKey, i18n.For(tag))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// translator pulls the request translator back out; English when absent.
func translator(r *http.Request) *i18n.Translator {
	if tr, ok := r.Context().Value(translatorKey).(*i18n.Translator); ok {
		return tr
	}
	return i18n.For(i18n.Match("en", ""))
}

// recoverer converts a handler panic into a generic localized 500. The
// client shows the message and keeps its state; nothing about the panic
// leaks out.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("Handler panic recovered", map[string]interface{}{
					"panic":  rec,
					"path":   r.URL.Path,
					"method": r.Method,
				})
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"message": translator(r).T("messages.unexpectedError", nil),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info("Request handled", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func (s *Server) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.obs.RecordRequest(r.Context(), route, ww.Status())
		s.obs.RecordRequestDuration(r.Context(), route, time.Since(start))
	})
}

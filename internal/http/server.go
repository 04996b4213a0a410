// Package http serves the dashboard page and its HTMX partials over a
// standard-library mux.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"salesdash/internal/services"
	appweb "salesdash/web"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	http.Server
	templates   *template.Template
	dashboard   *services.DashboardService
	ping        func(context.Context) error
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// server. ping may be nil when the store never came up; readiness then
// reports degraded.
func NewServer(addr string, dashboard *services.DashboardService, ping func(context.Context) error) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		dashboard:   dashboard,
		ping:        ping,
		rateLimiter: newRateLimiter(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.instrument("/", s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())
	// UI partials
	mux.HandleFunc("/ui/dashboard", s.instrument("/ui/dashboard", s.handleDashboard))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports 503 while the sales store is unreachable so load
// balancers keep traffic off a degraded instance; the page itself still
// renders for anyone who asks.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.dashboard.Available() || s.ping == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("degraded: sales store unavailable"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.ping(ctx); err != nil {
		slog.WarnContext(r.Context(), "Readiness ping failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("degraded: sales store unreachable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/launch-clearance/internal/domain"
)

// DecisionMaker produces a clearance decision for a site and launch time.
type DecisionMaker interface {
	Decide(ctx context.Context, siteCode string, launchTime time.Time) (domain.Decision, error)
}

// SiteLister enumerates registered launch site codes.
type SiteLister interface {
	Codes() []string
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the decision API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	decider    DecisionMaker
	sites      SiteLister
	logger     *slog.Logger
}

// NewServer creates the HTTP server with /v1/decision, /v1/sites, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, decider DecisionMaker, sites SiteLister, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		decider: decider,
		sites:   sites,
		logger:  logger,
	}

	mux.HandleFunc("GET /v1/decision", s.handleDecision)
	mux.HandleFunc("GET /v1/sites", s.handleSites)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleDecision serves GET /v1/decision?site=KSC&t=2026-04-02T13:45:00Z.
// The t parameter defaults to now. Unknown sites come back as a 200 with an
// ERROR verdict; an upstream failure is a 502, never a fabricated decision.
func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	siteCode := r.URL.Query().Get("site")
	if siteCode == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing required query parameter: site"})
		return
	}

	launchTime := time.Now().UTC()
	if raw := r.URL.Query().Get("t"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "t must be RFC 3339, e.g. 2026-04-02T13:45:00Z"})
			return
		}
		launchTime = parsed.UTC()
	}

	decision, err := s.decider.Decide(r.Context(), siteCode, launchTime)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing useful to write.
			return
		}
		s.logger.Error("decision unavailable", "site", siteCode, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "decision unavailable: upstream data source failed"})
		return
	}

	writeJSON(w, http.StatusOK, decision)
}

func (s *Server) handleSites(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sites": s.sites.Codes()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

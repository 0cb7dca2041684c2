// Package api implements the codex webhook HTTP server.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/config"
	"github.com/sprite-ai/codex/internal/model"
	"github.com/sprite-ai/codex/internal/review"
)

const serviceName = "CODEX AI Code Review Assistant"

// EventProcessor runs the review pipeline for one parsed PR event.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, pr *model.PullRequestContext) model.ReviewOutcome
}

// Server is the codex HTTP API server.
type Server struct {
	cfg       *config.Config
	processor EventProcessor
	hub       *review.Hub
	mux       *http.ServeMux
	server    *http.Server
	log       *zap.Logger
}

// New creates a new API server bound to the configured address.
func New(cfg *config.Config, processor EventProcessor, hub *review.Hub, log *zap.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		processor: processor,
		hub:       hub,
		log:       log,
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /webhook", s.handleWebhook)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log.Info("codex webhook server listening", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

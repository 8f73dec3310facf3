// Package server exposes the audit pipeline over HTTP. It is a thin
// boundary: request validation, one Runner call, JSON out. The response
// body is exactly the grounding contract consumed by the LLM-analysis
// collaborator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fintamas01/geoaudit/internal/audit"
	"github.com/fintamas01/geoaudit/internal/crawler"
	"github.com/fintamas01/geoaudit/internal/evidence"
	"github.com/fintamas01/geoaudit/internal/scoring"
	"github.com/fintamas01/geoaudit/internal/signals"
	"github.com/fintamas01/geoaudit/internal/storage"
)

// AuditStore persists finished audits. Nil disables persistence.
type AuditStore interface {
	SaveAudit(result *audit.Result) (int64, error)
	ListRecent(limit int) ([]storage.AuditSummary, error)
}

// Server handles audit requests.
type Server struct {
	runner *audit.Runner
	store  AuditStore
}

// New creates a server around the given runner. store may be nil.
func New(runner *audit.Runner, store AuditStore) *Server {
	return &Server{runner: runner, store: store}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/audit", s.handleAudit)
	mux.HandleFunc("/audits", s.handleListAudits)
	return logRequests(mux)
}

type auditRequest struct {
	URL      string `json:"url"`
	MaxPages int    `json:"maxPages,omitempty"`
}

type auditResponse struct {
	ScoreBreakdown scoring.Breakdown   `json:"scoreBreakdown"`
	Evidence       []evidence.Item     `json:"evidence"`
	SiteSignals    signals.SiteSignals `json:"siteSignals"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	// Missing seed URL is a client error, never a pipeline failure.
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url is required"})
		return
	}

	result, err := s.runner.WithMaxPages(req.MaxPages).Run(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, crawler.ErrInvalidSeedURL) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if s.store != nil {
		if _, err := s.store.SaveAudit(result); err != nil {
			slog.Error("failed to persist audit", "url", result.URL, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, auditResponse{
		ScoreBreakdown: result.ScoreBreakdown,
		Evidence:       result.Evidence,
		SiteSignals:    result.SiteSignals,
	})
}

func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "audit history is not enabled"})
		return
	}

	summaries, err := s.store.ListRecent(20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request handled", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

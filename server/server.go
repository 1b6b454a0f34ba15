// Package server hosts the metadata pipeline behind a small HTTP surface: a
// browser form, a JSON generate endpoint, and download endpoints for the
// last result.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/scriptmeta/scriptmeta/export"
	"github.com/scriptmeta/scriptmeta/service"
	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Server serves the form page and the JSON API.
type Server struct {
	logger *zap.Logger
	svc    service.Service
	mux    *http.ServeMux
}

// New creates a Server around the given service. logger may be nil.
func New(logger *zap.Logger, svc service.Service) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		logger: logger,
		svc:    svc,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /api/generate", s.handleGenerate)
	s.mux.HandleFunc("GET /api/last", s.handleLast)
	s.mux.HandleFunc("GET /export/markdown", s.handleExportMarkdown)
	s.mux.HandleFunc("GET /export/json", s.handleExportJSON)

	return s
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.mux.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// ListenAndServe blocks serving on addr until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", zap.String("addr", addr))
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	script, _, err := s.svc.Last()
	if err != nil {
		s.logger.Warn("failed to load last session", zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, map[string]any{"Script": script}); err != nil {
		s.logger.Error("failed to render index", zap.Error(err))
	}
}

type generateRequest struct {
	Script   string `json:"script"`
	Tone     string `json:"tone"`
	Audience string `json:"audience"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.svc.GenerateMetadata(r.Context(), req.Script,
		service.WithTone(req.Tone),
		service.WithAudience(req.Audience),
	)
	switch {
	case errors.Is(err, service.ErrEmptyScript):
		writeError(w, http.StatusBadRequest, "script is empty")
		return
	case err != nil:
		s.logger.Error("generate failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "generation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLast(w http.ResponseWriter, r *http.Request) {
	script, result, err := s.svc.Last()
	if err != nil {
		s.logger.Error("failed to load last session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load last session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"script": script,
		"result": result,
	})
}

func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	_, result, err := s.svc.Last()
	if err != nil || result == nil {
		writeError(w, http.StatusNotFound, "no result to export")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scriptmeta.md"`)
	if err := export.Markdown(w, result); err != nil {
		s.logger.Error("markdown export failed", zap.Error(err))
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	_, result, err := s.svc.Last()
	if err != nil || result == nil {
		writeError(w, http.StatusNotFound, "no result to export")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="scriptmeta.json"`)
	if err := export.JSON(w, result); err != nil {
		s.logger.Error("json export failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Package server exposes the prioritizer over HTTP for browser
// frontends. It is a thin adapter over the orchestrator: request
// decoding, error-to-status mapping, and CORS live here and nothing
// else.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/config"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/logging"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/orchestrator"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
)

// Server serves the HTTP API.
type Server struct {
	orch   *orchestrator.Orchestrator
	logger *logging.Logger
	cfg    config.ServerConfig
}

// New creates a server around an orchestrator.
func New(orch *orchestrator.Orchestrator, cfg config.ServerConfig, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Server{
		orch:   orch,
		logger: logger.WithComponent("server"),
		cfg:    cfg,
	}
}

// Handler returns the full route table wrapped in CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/prioritize", s.handlePrioritize)
	mux.HandleFunc("POST /api/save", s.handleSave)
	mux.HandleFunc("GET /api/load", s.handleLoad)
	mux.HandleFunc("PUT /api/tasks/{index}", s.handleUpdateTask)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "AI Task Prioritizer API is running"})
}

type prioritizeRequest struct {
	Goal  string   `json:"goal"`
	Tasks []string `json:"tasks"`
}

func (s *Server) handlePrioritize(w http.ResponseWriter, r *http.Request) {
	var req prioritizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.orch.Create(r.Context(), req.Goal, req.Tasks)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// The body is the session wire format; done flags are preserved.
	sess, err := session.DecodeSession(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session payload")
		return
	}

	archive, err := s.orch.Save(r.Context(), sess)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Tasks saved successfully",
		"filename": archive,
	})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	sess, err := s.orch.Load(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type updateTaskRequest struct {
	Done bool `json:"done"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "task index must be an integer")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := s.orch.UpdateOne(r.Context(), index, req.Done); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task status updated successfully"})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: caller
// mistakes are 4xx, model/provider failures are 502, everything else
// is 500.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, errors.ErrInvalidInput), errors.Is(err, errors.ErrIndexOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrNoSavedSession):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrUpstream):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

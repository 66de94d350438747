// Package api provides the HTTP server for the AutoInfra service: the
// /generate pipeline endpoint, the debug endpoints, and the static
// frontend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/autoinfra/autoinfra/internal/pipeline"
)

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	pipeline   *pipeline.Pipeline
	config     *Config
	logger     *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
	StaticDir      string
	DebugDumpPath  string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8000,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxRequestSize: 1024 * 1024, // 1MB; requests are a single description string
		CORSOrigins:    []string{"*"},
		StaticDir:      "static",
		DebugDumpPath:  filepath.Join(os.TempDir(), "last_generate_response.json"),
	}
}

// NewServer creates an API server over the given pipeline.
func NewServer(p *pipeline.Pipeline, config *Config, logger *slog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		pipeline: p,
		config:   config,
		logger:   logger,
	}
}

// routes builds the full handler chain.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/debug_sample", s.handleDebugSample)
	mux.HandleFunc("/last_response", s.handleLastResponse)

	if s.config.StaticDir != "" {
		if info, err := os.Stat(s.config.StaticDir); err == nil && info.IsDir() {
			mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.config.StaticDir))))
		}
	}

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("autoinfra API server starting", "port", s.config.Port)
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains it on SIGINT or
// SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start).String())
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.jsonError(w, http.StatusNotFound, "not found")
		return
	}

	index := filepath.Join(s.config.StaticDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		http.ServeFile(w, r, index)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "AutoInfra API",
		"status":  "running",
		"note":    "Frontend not found",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

// GenerateRequest is the /generate request body.
type GenerateRequest struct {
	Description string `json:"description"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	resp := s.pipeline.Generate(r.Context(), req.Description)

	// Transient debug dump, best effort; /last_response serves it back.
	if s.config.DebugDumpPath != "" {
		if data, err := json.Marshal(resp); err == nil {
			if err := os.WriteFile(s.config.DebugDumpPath, data, 0o644); err != nil {
				s.logger.Warn("failed to write debug dump", "path", s.config.DebugDumpPath, "error", err)
			}
		}
	}

	s.logger.Debug("generate summary",
		"monthly_cost", resp.CostEstimation.MonthlyCost,
		"cloud_est", resp.CloudBill.EstimatedMonthlyCost,
		"sec_score", resp.SecurityAnalysis.SecurityScore)

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDebugSample returns a known-good response so frontend numeric
// handling can be verified without a pipeline run.
func (s *Server) handleDebugSample(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, SampleResponse())
}

func (s *Server) handleLastResponse(w http.ResponseWriter, r *http.Request) {
	if s.config.DebugDumpPath != "" {
		if _, err := os.Stat(s.config.DebugDumpPath); err == nil {
			w.Header().Set("Content-Type", "application/json")
			http.ServeFile(w, r, s.config.DebugDumpPath)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"error": "no debug response found"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}

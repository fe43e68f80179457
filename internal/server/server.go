// Package server provides the HTTP surface of the résumé site.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-site/internal/loader"
	"github.com/jonathan/cv-site/internal/logging"
	"github.com/jonathan/cv-site/internal/metrics"
	"github.com/jonathan/cv-site/internal/server/ratelimit"
	"github.com/jonathan/cv-site/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	basePath    string
	dataDir     string
	loader      *loader.Loader
	sessions    *session.Store
	rateLimiter *ratelimit.Limiter
	logger      zerolog.Logger
	sweepStop   chan struct{}
	closeOnce   sync.Once
}

// Config holds server configuration
type Config struct {
	Port       int
	BasePath   string        // mount point, "/" or "/prefix/"
	DataDir    string        // directory served for cv.json and img/
	Source     loader.Source // where the document is loaded from; defaults to DataDir
	SessionTTL time.Duration
	RateLimit  *ratelimit.Config // nil reads the environment
	Logger     zerolog.Logger
}

// New creates a new server instance. The document fetch starts immediately.
func New(cfg Config) (*Server, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/"
	}
	if !strings.HasPrefix(basePath, "/") || !strings.HasSuffix(basePath, "/") {
		return nil, &ErrValidation{Field: "base_path", Message: "must start and end with /"}
	}

	source := cfg.Source
	if source == nil {
		if cfg.DataDir == "" {
			return nil, &ErrValidation{Field: "data_dir", Message: "required when no document source is given"}
		}
		source = loader.FileSource{Dir: cfg.DataDir}
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		basePath:    basePath,
		dataDir:     cfg.DataDir,
		loader:      loader.New(source, logging.Component(cfg.Logger, "loader")),
		sessions:    session.NewStore(cfg.SessionTTL),
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		logger:      logging.Component(cfg.Logger, "server"),
		sweepStop:   make(chan struct{}),
	}

	// The fetch outlives any single request.
	s.loader.Start(context.Background())
	go s.sweepSessions()

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /theme", s.handleSetTheme)
	mux.HandleFunc("GET /api/themes", s.handleThemes)
	mux.HandleFunc("GET /api/cv", s.handleDocument)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	if cfg.DataDir != "" {
		mux.HandleFunc("GET /"+loader.DocumentName, s.handleDocumentFile)
		mux.Handle("GET /img/", http.FileServer(http.Dir(cfg.DataDir)))
	}

	s.handler = s.mount(s.withRateLimit(s.withLogging(s.withMetrics(s.withCORS(mux)))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler, mounted under the base path.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Loader exposes the document loader.
func (s *Server) Loader() *loader.Loader {
	return s.loader
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Str("base_path", s.basePath).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-listenErr:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info().Msg("server stopped")
	return nil
}

// Close releases the loader, the rate limiter and the session sweeper.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.loader.Close()
		s.rateLimiter.Stop()
		close(s.sweepStop)
	})
}

func (s *Server) sweepSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.sessions.Sweep(); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("expired sessions swept")
			}
		case <-s.sweepStop:
			return
		}
	}
}

// mount serves the handler under the base path.
func (s *Server) mount(h http.Handler) http.Handler {
	if s.basePath == "/" {
		return h
	}
	prefix := strings.TrimSuffix(s.basePath, "/")
	root := http.NewServeMux()
	root.Handle(s.basePath, http.StripPrefix(prefix, h))
	root.Handle(prefix, http.RedirectHandler(s.basePath, http.StatusMovedPermanently))
	return root
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging with a request id
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger := s.logger.With().Str("request_id", requestID).Logger()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context())))

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// withMetrics records request counts and latency.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		endpoint := endpointLabel(r.URL.Path)
		metrics.RequestCount.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// endpointLabel bounds metric label cardinality to the known routes.
func endpointLabel(path string) string {
	switch path {
	case "/", "/theme", "/api/themes", "/api/cv", "/health", "/metrics", "/" + loader.DocumentName:
		return path
	}
	if strings.HasPrefix(path, "/img/") {
		return "/img/"
	}
	return "other"
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"document": string(s.loader.State().Status),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds())
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	s.logger.Warn().
		Str("client", s.extractClientID(r)).
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Time("reset", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

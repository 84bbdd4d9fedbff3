// Package server exposes the lockfile analysis pipeline over HTTP. One
// endpoint runs the full analysis for a lockfile under the configured root
// and returns the aggregated report; results are memoized by content digest
// so repeated analyses of an unchanged lockfile are served from cache.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lockscope/lockscope/pkg/cache"
	"github.com/lockscope/lockscope/pkg/depgraph"
	lockerrors "github.com/lockscope/lockscope/pkg/errors"
	"github.com/lockscope/lockscope/pkg/lockfile"
	"github.com/lockscope/lockscope/pkg/report"
	"github.com/lockscope/lockscope/pkg/workspace"
)

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8787".
	Addr string
	// Root is the directory lockfile paths in requests resolve against.
	// Requests can never escape it.
	Root string
	// Timeouts for the underlying http.Server.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server runs the analysis HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
	cache  *cache.Cache // nil disables memoization

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New creates a Server. A nil cache disables result memoization; the logger
// must not be nil.
func New(cfg Config, logger *log.Logger, c *cache.Cache) *Server {
	return &Server{cfg: cfg, logger: logger, cache: c}
}

// Handler builds the chi route tree. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/analyze", s.handleAnalyze)
	return r
}

// Start binds the listener and serves in the background until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("server already started")
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	s.server = srv

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "err", err)
		}
	}()
	s.logger.Info("listening", "addr", listener.Addr().String())
	return nil
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	return err
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// requestID tags every request with a UUID, echoed in the X-Request-ID
// header and attached to log lines.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeResponse is the cached and served payload.
type analyzeResponse struct {
	Report *report.Report `json:"report"`
}

// handleAnalyze runs the pipeline for ?file=<relative lockfile path>.
// Optional query parameters: workspace=1 adds workspace findings for the
// root, node=<version> adds an engines check.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if err := lockerrors.ValidateLockfilePath(file); err != nil {
		writeError(w, err)
		return
	}

	parser, err := lockfile.Detect(file)
	if err != nil {
		writeError(w, lockerrors.Wrap(lockerrors.ErrCodeUnsupported, err, "no parser for %q", file))
		return
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.Root, file))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, lockerrors.New(lockerrors.ErrCodeFileNotFound, "lockfile %q not found", file))
			return
		}
		writeError(w, lockerrors.Wrap(lockerrors.ErrCodeInternal, err, "reading %q", file))
		return
	}

	withWorkspace := r.URL.Query().Get("workspace") == "1"
	nodeVersion := r.URL.Query().Get("node")

	key := s.cacheKey(file, data, withWorkspace, nodeVersion)
	if s.cache != nil {
		var cached analyzeResponse
		if ok, _ := s.cache.Get(key, &cached); ok {
			w.Header().Set("X-Cache", "hit")
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	occurrences, err := parser.Parse(data)
	if err != nil {
		writeError(w, lockerrors.Wrap(lockerrors.ErrCodeInvalidLockfile, err, "parsing %q", file))
		return
	}

	g := depgraph.Build(occurrences)
	rep := report.New(file, parser.Type(), g)

	if withWorkspace {
		members, _, err := workspace.Discover(s.cfg.Root)
		if err != nil && !errors.Is(err, workspace.ErrNoWorkspace) {
			writeError(w, lockerrors.Wrap(lockerrors.ErrCodeInternal, err, "discovering workspace"))
			return
		}
		if err == nil {
			rep.WithWorkspace(members)
			if nodeVersion != "" {
				rep.WithEngines(members, nodeVersion)
			}
		}
	}

	resp := analyzeResponse{Report: rep}
	if s.cache != nil {
		if err := s.cache.Set(key, resp); err != nil {
			s.logger.Warn("cache write failed", "err", err)
		}
	}
	w.Header().Set("X-Cache", "miss")
	writeJSON(w, http.StatusOK, resp)
}

// cacheKey derives the memoization key from the request parameters and the
// lockfile content, so edits invalidate naturally.
func (s *Server) cacheKey(file string, data []byte, withWorkspace bool, nodeVersion string) string {
	digest := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s:%v:%s", file, hex.EncodeToString(digest[:]), withWorkspace, nodeVersion)
}

// errorPayload is the JSON error body.
type errorPayload struct {
	Error string          `json:"error"`
	Code  lockerrors.Code `json:"code,omitempty"`
}

// writeError maps structured error codes to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch lockerrors.GetCode(err) {
	case lockerrors.ErrCodeInvalidPath, lockerrors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case lockerrors.ErrCodeInvalidLockfile:
		status = http.StatusUnprocessableEntity
	case lockerrors.ErrCodeFileNotFound, lockerrors.ErrCodeWorkspaceNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorPayload{Error: lockerrors.UserMessage(err), Code: lockerrors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

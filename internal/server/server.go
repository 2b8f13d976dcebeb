// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the read pipeline over HTTP for a local host UI.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/workspace-chats/internal/history"
	"github.com/pdiddy/workspace-chats/internal/vscdb"
	"github.com/pdiddy/workspace-chats/internal/workspace"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

const (
	defaultAddr            = "127.0.0.1:8765"
	defaultShutdownTimeout = 5 * time.Second
)

// Server serves chats and workspace listings.
type Server struct {
	echo    *echo.Echo
	reader  *history.Reader
	metrics *Metrics
	logger  *zap.Logger
	config  types.ServeConfig
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// New builds a Server. A nil logger discards logs.
func New(reader *history.Reader, logger *zap.Logger, cfg types.ServeConfig) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{
		echo:    e,
		reader:  reader,
		metrics: NewMetrics(),
		logger:  logger,
		config:  cfg,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/chats", s.handleChats)
	v1.GET("/workspaces", s.handleWorkspaces)
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleChats returns the serialized chats for ?path=. The body is the
// same string ReadJSON produces.
func (s *Server) handleChats(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "path query parameter is required"})
	}

	start := time.Now()
	chats, err := s.reader.Read(c.Request().Context(), path)
	s.metrics.durations.Observe(time.Since(start).Seconds())
	if err == nil {
		var body string
		if body, err = history.Serialize(chats); err == nil {
			s.metrics.reads.WithLabelValues("ok").Inc()
			s.metrics.records.Add(float64(len(chats)))
			return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(body))
		}
	}

	s.metrics.reads.WithLabelValues(resultLabel(vscdb.KindOf(err))).Inc()
	s.logger.Warn("read failed", zap.String("path", path), zap.Error(err))
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

func (s *Server) handleWorkspaces(c echo.Context) error {
	dir := c.QueryParam("dir")
	if dir == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dir query parameter is required"})
	}
	workspaces, err := workspace.List(dir)
	if err != nil {
		s.logger.Warn("listing workspaces failed", zap.String("dir", dir), zap.Error(err))
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	if c.QueryParam("with_state") == "true" {
		workspaces = workspace.WithState(workspaces)
	}
	return c.JSON(http.StatusOK, workspaces)
}

// Start listens on the configured address and blocks until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", zap.String("addr", s.config.Addr))
		errCh <- s.echo.Start(s.config.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func statusFor(err error) int {
	switch vscdb.KindOf(err) {
	case vscdb.KindNotExist:
		return http.StatusNotFound
	case vscdb.KindOpen, vscdb.KindPrepare, vscdb.KindQuery:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func resultLabel(kind vscdb.Kind) string {
	switch kind {
	case vscdb.KindNotExist:
		return "not_exist"
	case vscdb.KindOpen:
		return "open"
	case vscdb.KindPrepare:
		return "prepare"
	case vscdb.KindQuery:
		return "query"
	case vscdb.KindSerialize:
		return "serialize"
	default:
		return "error"
	}
}

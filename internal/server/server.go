// Package server exposes the task controller as a local JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"netlist/internal/logging"
	"netlist/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server is the netlist HTTP API.
type Server struct {
	svc    service.Service
	log    *slog.Logger
	router *gin.Engine
}

// New creates a server over svc. A nil log discards.
func New(svc service.Service, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	s := &Server{
		svc:    svc,
		log:    log,
		router: router,
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleList)
		api.POST("/tasks", s.handleCreate)
		api.GET("/tasks/:id", s.handleGet)
		api.PUT("/tasks/:id", s.handleUpdate)
		api.POST("/tasks/:id/toggle", s.handleToggle)
		api.POST("/tasks/:id/delete", s.handleRequestDelete)
		api.POST("/deletions/:token", s.handleResolveDelete)
		api.GET("/stats", s.handleStats)
		api.GET("/view", s.handleGetView)
		api.PUT("/view", s.handleSetView)
	}

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("serving", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

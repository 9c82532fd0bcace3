package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"docingest/config"
	"docingest/internal/usecase"
)

// Server exposes the ingest pipeline over HTTP.
type Server struct {
	cfg      config.ServerConfig
	pipeline *usecase.Pipeline
	logger   *log.Logger
	engine   *gin.Engine
}

func New(cfg config.ServerConfig, pipeline *usecase.Pipeline, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = pipeline.MaxBytes()

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		logger:   logger,
		engine:   engine,
	}

	engine.POST("/api/upload", s.handleUpload)
	engine.GET("/healthz", s.handleHealth)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.ShutdownSec)*time.Second)
	defer cancel()

	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

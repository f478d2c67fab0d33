package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cticrawl/internal/config"
	"cticrawl/internal/crawler"
)

// Server holds the dependencies for the control HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	runner     *crawler.Runner
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, runner *crawler.Runner, logger *zap.Logger) *Server {
	s := &Server{
		config: cfg,
		runner: runner,
		logger: logger,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

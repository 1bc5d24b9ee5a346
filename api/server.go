// Package api serves the distribution engine and scenario catalogue over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cloudchase/sampling-visualizer/engine"
	"github.com/cloudchase/sampling-visualizer/registry"
)

// Server is the HTTP API server for the sampling visualizer.
type Server struct {
	engine   *engine.Engine
	manager  *registry.ScenarioManager
	defaults engine.Params
	addr     string
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server with its routes registered.
func NewServer(eng *engine.Engine, mgr *registry.ScenarioManager, defaults engine.Params, addr string, logger *zap.Logger) *Server {
	s := &Server{
		engine:   eng,
		manager:  mgr,
		defaults: defaults,
		addr:     addr,
		logger:   logger,
	}
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	RegisterRoutes(s.app, s)
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Start listens on the configured address (blocking).
func (s *Server) Start() error {
	s.logger.Info("starting sampling-visualizer API server", zap.String("listen", s.addr))
	return s.app.Listen(s.addr)
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

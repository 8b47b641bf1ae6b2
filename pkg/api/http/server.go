package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aescanero/treed/internal/application/forest"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	manager *forest.Manager
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port    int
	Manager *forest.Manager
	Logger  *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	// Set Gin mode based on logger
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogger(cfg.Logger))
	router.Use(corsMiddleware())

	s := &Server{
		router:  router,
		manager: cfg.Manager,
		logger:  cfg.Logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Tree API
	tree := s.router.Group("/api/tree")
	{
		tree.GET("", s.handleGetTree)
		tree.POST("", s.handleCreateNode)
	}

	// Flat node lookup
	s.router.GET("/api/nodes/:id", s.handleGetNode)
}

// SetupWebSocket adds WebSocket handler to the server
func (s *Server) SetupWebSocket(handler interface{}) {
	// Type assert to get the handler
	if wsHandler, ok := handler.(interface {
		HandleTreeStream(*gin.Context)
	}); ok {
		s.router.GET("/api/tree/ws", wsHandler.HandleTreeStream)
	}
}

// Router exposes the underlying gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}

// requestLogger is a middleware for request logging
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("request_id", c.Writer.Header().Get(requestIDHeader)),
			zap.String("client_ip", c.ClientIP()))
	}
}

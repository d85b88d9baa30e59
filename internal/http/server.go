package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	generationHTTP "github.com/ngoinfo/copilot-gateway/internal/generation/http"
	healthHTTP "github.com/ngoinfo/copilot-gateway/internal/health/http"
)

// RouterConfig carries the transport-level options for the API router.
type RouterConfig struct {
	CORSEnabled             bool
	CORSAllowOrigins        string
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
}

// Server is the API HTTP server.
type Server struct {
	server            *http.Server
	routerConfig      RouterConfig
	generationHandler *generationHTTP.GenerationHandler
	statusHandler     *healthHTTP.StatusHandler
	logger            *slog.Logger
}

// NewServer creates the API server.
func NewServer(
	host string,
	port int,
	routerConfig RouterConfig,
	generationHandler *generationHTTP.GenerationHandler,
	statusHandler *healthHTTP.StatusHandler,
	logger *slog.Logger,
) *Server {
	s := &Server{
		routerConfig:      routerConfig,
		generationHandler: generationHandler,
		statusHandler:     statusHandler,
		logger:            logger,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.SetupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// SetupRouter builds the gin engine with middleware and routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.routerConfig.CORSEnabled,
		s.routerConfig.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api")
	api.Use(PrincipalMiddleware())
	if s.routerConfig.RateLimitEnabled {
		api.Use(RateLimitMiddleware(
			s.routerConfig.RateLimitRequestsPerSec,
			s.routerConfig.RateLimitBurst,
			s.logger,
		))
	}

	api.POST("/generate", s.generationHandler.GenerateHandler)
	api.GET("/history", s.generationHandler.HistoryHandler)
	api.GET("/usage", s.statusHandler.UsageHandler)
	api.GET("/status", s.statusHandler.StatusHandler)

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

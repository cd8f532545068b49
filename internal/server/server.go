package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/supplier-invoice-service/internal/config"
	"github.com/ridwanfathin/supplier-invoice-service/internal/metrics"
	"github.com/ridwanfathin/supplier-invoice-service/internal/middleware"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// RouteRegistrar is implemented by handlers that mount routes under /api
type RouteRegistrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// Server represents the HTTP server of the bookkeeping service
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	logger     *logrus.Logger
	metrics    *metrics.Metrics
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics, handlers ...RouteRegistrar) *Server {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.RequestResponseLogger(middleware.LoggerConfig{
		Logger:    logger,
		SkipPaths: []string{"/health", "/metrics"},
	}))

	server := &Server{
		router:  router,
		config:  cfg,
		logger:  logger,
		metrics: m,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupRoutes(handlers)

	return server
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes(handlers []RouteRegistrar) {
	// Health check endpoint
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.HealthResponse{Status: "ok"})
	})

	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// API documentation endpoints
	// Access the Swagger UI at http://localhost:8080/api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)

	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	api := s.router.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Kind:    model.KindNotFound,
			Status:  http.StatusText(http.StatusNotFound),
			Message: "Route not found",
		})
	})
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Server listening on port %d", s.config.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	s.logger.Info("Shutting down server...")

	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("Server exited gracefully")
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

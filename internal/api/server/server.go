package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "whisper-web/internal/api/errors"
	"whisper-web/internal/api/middleware"
	v1routes "whisper-web/internal/api/v1/routes"
	"whisper-web/internal/api/v1/services"
	"whisper-web/internal/app/metrics"
	"whisper-web/internal/config"
	"whisper-web/web"
)

// Server represents the HTTP server: page, JSON API, health and metrics.
type Server struct {
	config     config.ServerConfig
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	transcriptions services.TranscriptionService,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger, m))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":                "healthy",
			"timestamp":             time.Now().Unix(),
			"provider":              transcriptions.ProviderName(),
			"credential_configured": transcriptions.Ready(),
		})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	web.NewPageHandler(transcriptions, cfg.MaxUploadBytes(), logger).Register(router)

	serviceContainer := &v1routes.ServiceContainer{
		TranscriptionService: transcriptions,
		MaxUploadBytes:       cfg.MaxUploadBytes(),
	}

	// Register API routes
	api := router.Group("/api")
	{
		v1 := api.Group("/v1")
		v1routes.RegisterRoutes(v1, serviceContainer)
	}
	router.NoRoute(notFound)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// notFound answers unknown API paths with the JSON envelope and everything
// else with gin's plain 404.
func notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		middleware.HandleError(c, apierrors.NewNotFoundError("route "+c.Request.URL.Path))
		return
	}
	c.String(http.StatusNotFound, "404 page not found")
}

// Start binds the listen address and serves in the background. Bind
// failures are returned; later serve errors are logged.
func (s *Server) Start() error {
	s.logger.Info("Starting server",
		zap.String("host", s.config.Host),
		zap.Int("port", s.config.Port),
		zap.String("environment", s.config.Environment),
	)

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	s.logger.Info("Server started successfully",
		zap.String("address", "http://"+listener.Addr().String()),
	)

	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("Server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

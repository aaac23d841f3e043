package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientsapi/internal/api/docs"
	"github.com/martijn/clientsapi/internal/api/handler"
	"github.com/martijn/clientsapi/internal/api/middleware"
	"github.com/martijn/clientsapi/internal/core/service"
	"github.com/martijn/clientsapi/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger *slog.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, clientService *service.ClientService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.NoRoute(middleware.NotFoundHandler)

	// Initialize handlers
	clientHandler := handler.NewClientHandler(clientService)
	healthHandler := handler.NewHealthHandler(clientService, cfg.Backend)

	router.GET("/api/test", healthHandler.Test)
	router.GET("/health", healthHandler.Health)

	// Same client routes under every prefix
	for _, prefix := range cfg.RoutePrefixes {
		registerClientRoutes(router.Group(prefix+"/clients"), clientHandler)
	}

	// API documentation
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.OpenAPI)
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))

	return &Server{
		router: router,
		srv: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort),
			Handler:        router,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		config: cfg,
		logger: logger,
	}
}

func registerClientRoutes(clients *gin.RouterGroup, h *handler.ClientHandler) {
	clients.POST("", h.CreateClient)
	clients.GET("", h.ListClients)
	clients.GET("/:id", h.GetClient)
	clients.PUT("/:id", h.UpdateClient)
	clients.DELETE("/:id", h.DeleteClient)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called, then returns http.ErrServerClosed
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.srv.Addr, "prefixes", s.config.RoutePrefixes)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server. Safe to call before Start.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

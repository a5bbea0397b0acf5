package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/k-shtanenko/city-weather/docs"
	"github.com/k-shtanenko/city-weather/internal/config"
	"github.com/k-shtanenko/city-weather/internal/domain/ports"
	"github.com/k-shtanenko/city-weather/internal/pkg/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type APIServer struct {
	server     *http.Server
	router     *gin.Engine
	handler    *APIHandler
	middleware *Middleware
	config     *config.Config
	logger     logger.Logger
}

// NewAPIServer builds the router with every route registered. Start only
// binds the listener.
func NewAPIServer(service ports.WeatherService, cfg *config.Config, log logger.Logger) *APIServer {
	if log == nil {
		log = logger.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	if cfg.App.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	s := &APIServer{
		router:     gin.New(),
		handler:    NewAPIHandler(service, cfg.App.Version, log),
		middleware: NewMiddleware(cfg.API, log),
		config:     cfg,
		logger:     log.WithField("component", "api_server"),
	}
	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(s.middleware.Recovery())
	s.router.Use(s.middleware.RequestID())
	s.router.Use(s.middleware.Logging())
	s.router.Use(s.middleware.CORS())
	s.router.Use(s.middleware.RateLimit())

	s.router.GET("/", s.handler.Index)
	s.router.GET("/health", s.handler.HealthCheck)

	weather := s.router.Group("/api/weather")
	{
		weather.GET("", s.handler.ListWeather)
		weather.GET("/search/*query", s.handler.SearchWeather)
		weather.GET("/:city", s.handler.GetWeatherByCity)
		weather.POST("", s.handler.CreateWeather)
		weather.PUT("/:id", s.handler.UpdateWeather)
		weather.DELETE("/:id", s.handler.DeleteWeather)
	}

	s.router.GET("/api/export/weather", s.handler.ExportWeather)

	if s.config.API.EnableSwagger {
		docs.SwaggerInfo.Version = s.config.App.Version
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
		s.logger.Info("Swagger documentation enabled at /swagger/index.html")
	}

	s.router.NoRoute(s.handler.NotFound)
}

// Handler exposes the router, mainly for httptest.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.App.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.API.ReadTimeout,
		WriteTimeout: s.config.API.WriteTimeout,
		IdleTimeout:  s.config.API.IdleTimeout,
	}

	go func() {
		s.logger.Infof("Starting API server on port %d", s.config.App.Port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	return nil
}

func (s *APIServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.App.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	s.logger.Info("API server stopped")
	return nil
}

package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/k-shtanenko/city-weather/internal/application"
	"github.com/k-shtanenko/city-weather/internal/config"
	"github.com/k-shtanenko/city-weather/internal/domain/ports"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/api"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/database"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/excel"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/messaging"
	"github.com/k-shtanenko/city-weather/internal/pkg/logger"
	"github.com/k-shtanenko/city-weather/internal/validation"
)

type App struct {
	config         *config.Config
	logger         logger.Logger
	weatherRepo    ports.WeatherRepository
	publisher      ports.EventPublisher
	weatherService *application.WeatherService
	apiServer      ports.APIServer
}

func Bootstrap() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.App.LogLevel, cfg.App.Env).WithField("service", cfg.App.Name)
	appLogger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	app := NewApp(cfg, appLogger)

	if err := app.initComponents(); err != nil {
		app.shutdownComponents(context.Background())
		appLogger.Fatalf("Failed to initialize components: %v", err)
	}

	if err := app.start(); err != nil {
		app.shutdownComponents(context.Background())
		appLogger.Fatalf("Failed to start application: %v", err)
	}

	app.waitForShutdown()
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	return &App{
		config: cfg,
		logger: log,
	}
}

func (a *App) initComponents() error {
	a.logger.Info("Initializing components...")

	a.logger.Infof("Initializing %s repository...", a.config.Database.Driver)
	weatherRepo, err := database.NewGormWeatherRepository(a.config.Database, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create weather repository: %w", err)
	}
	a.weatherRepo = weatherRepo

	if a.config.Events.Enabled {
		a.logger.Info("Initializing Kafka publisher...")
		publisher, err := messaging.NewKafkaPublisher(a.config.Events, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		a.publisher = publisher
	} else {
		a.logger.Info("Change events disabled")
		a.publisher = messaging.NopPublisher{}
	}

	a.logger.Info("Initializing application services...")
	a.weatherService = application.NewWeatherService(
		a.weatherRepo,
		a.publisher,
		excel.NewWorkbookExporter(a.logger),
		validation.Options{
			EnforceRanges: a.config.Validation.EnforceRanges,
			SanitizeCity:  a.config.Validation.SanitizeCity,
		},
		a.logger,
	)

	a.logger.Info("Initializing API server...")
	a.apiServer = api.NewAPIServer(a.weatherService, a.config, a.logger)

	a.logger.Info("All components initialized successfully")
	return nil
}

func (a *App) start() error {
	a.logger.Info("Starting API server...")
	if err := a.apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	a.logger.Infof("Weather API server running on port %d", a.config.App.Port)
	return nil
}

func (a *App) waitForShutdown() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-signalChan
	a.logger.Infof("Received signal: %v. Shutting down...", sig)

	a.shutdownComponents(context.Background())

	a.logger.Info("Application shutdown completed")
}

// shutdownComponents stops intake first, then the publisher, then releases
// the database handle.
func (a *App) shutdownComponents(ctx context.Context) {
	if a.apiServer != nil {
		a.logger.Info("Stopping API server...")
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Errorf("Failed to stop API server: %v", err)
		}
	}

	if a.publisher != nil {
		a.logger.Info("Closing event publisher...")
		if err := a.publisher.Close(); err != nil {
			a.logger.Errorf("Failed to close event publisher: %v", err)
		}
	}

	if a.weatherRepo != nil {
		a.logger.Info("Closing weather repository...")
		if err := a.weatherRepo.Close(); err != nil {
			a.logger.Errorf("Failed to close weather repository: %v", err)
		}
	}
}

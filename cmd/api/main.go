package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/fitbuddy/backend/config"
	"github.com/pageza/fitbuddy/backend/internal/api"
	"github.com/pageza/fitbuddy/backend/internal/catalog"
	"github.com/pageza/fitbuddy/backend/internal/logger"
	"github.com/pageza/fitbuddy/backend/internal/router"
	"github.com/pageza/fitbuddy/backend/internal/server"
	"github.com/pageza/fitbuddy/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(logger.Config{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		LogstashURL:  cfg.LogstashURL,
		ElasticURL:   cfg.ElasticURL,
		ElasticIndex: cfg.ElasticIndex,
	})
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logg.WithField("config", cfg.String()).Info("Starting FitBuddy API")

	// Initialize upstream clients
	llm, err := service.NewLLMService(service.LLMConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.UpstreamTimeout,
	}, logg)
	if err != nil {
		logg.WithError(err).Fatal("Failed to create LLM service")
	}

	nutrition, err := service.NewNutritionService(service.NutritionConfig{
		APIKey:  cfg.USDAAPIKey,
		BaseURL: cfg.USDABaseURL,
		Timeout: cfg.UpstreamTimeout,
	}, logg)
	if err != nil {
		logg.WithError(err).Fatal("Failed to create nutrition service")
	}

	source, err := service.NewPlanSource(context.Background(), service.PlanSourceConfig{
		Source:      cfg.FitnessPlanSource,
		CatalogPath: cfg.CatalogPath,
		NewS3: func(ctx context.Context) (catalog.ObjectGetter, error) {
			return cfg.NewS3Client(ctx)
		},
	}, llm, logg)
	if err != nil {
		logg.WithError(err).Fatal("Failed to create fitness plan source")
	}

	// Initialize services and handlers
	plans := api.NewPlanHandler(
		service.NewMotivationService(llm),
		service.NewFitnessService(source),
		service.NewFoodPlanService(nutrition),
		cfg.ErrorMode,
		logg,
	)

	srv := server.New(cfg.Addr(), router.SetupRouter(plans, cfg.CORSAllowedOrigins, logg), logg)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logg.WithError(err).Fatal("Server error")
		}
		return
	case sig := <-quit:
		logg.WithField("signal", sig.String()).Info("Received signal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.WithError(err).Error("Server shutdown error")
		return
	}
	logg.Info("Server stopped")
}

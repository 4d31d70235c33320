package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"refrescoBot/app/echo-server/router"
	"refrescoBot/business/categorizer"
	"refrescoBot/business/decision"
	"refrescoBot/business/learning"
	"refrescoBot/business/predictor"
	"refrescoBot/business/recommend"
	"refrescoBot/internal/repository/memory"
	psqlRepo "refrescoBot/internal/repository/postgres"
	redisRepo "refrescoBot/internal/repository/redis"
	"refrescoBot/internal/rest"
	"refrescoBot/pkg/config"
	"refrescoBot/pkg/database"
	redisClient "refrescoBot/pkg/database/redis"
	"refrescoBot/pkg/logger"
	"refrescoBot/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting RefrescoBot", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init repo
	questionRepo := psqlRepo.NewQuestionRepository(db)
	beverageRepo := psqlRepo.NewBeverageRepository(db)
	ratingRepo := psqlRepo.NewRatingRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := questionRepo.EnsureSeeded(ctx); err != nil {
		logger.Fatal("Failed to seed questions", "error", err)
	}
	if err := beverageRepo.EnsureSeeded(ctx); err != nil {
		logger.Fatal("Failed to seed beverages", "error", err)
	}

	// Sessions live in Redis when available, process memory otherwise
	var sessionStore recommend.SessionStore
	if cfg.Redis.Enabled {
		client, err := redisClient.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisClient.CloseRedisClient(client)
		sessionStore = redisRepo.NewSessionRepository(client)
		logger.Info("Session store: redis")
	} else {
		sessionStore = memory.NewSessionRepository()
		logger.Info("Session store: in-memory")
	}

	// Init service
	modelCfg := predictor.Config{
		Trees:      cfg.Engine.EnsembleTrees,
		MinSamples: cfg.Engine.MinTrainingSamples,
		Seed:       cfg.Engine.Seed,
	}
	predictorService := predictor.NewService(modelCfg)

	categorizerService := categorizer.NewService(beverageRepo, beverageRepo, categorizer.Config{
		Clusters: cfg.Engine.CatalogClusters,
		Seed:     cfg.Engine.Seed,
	})

	learningService := learning.NewService(ratingRepo, beverageRepo, predictorService, learning.Config{
		RetrainThreshold: cfg.Engine.RetrainThreshold,
		Model:            modelCfg,
	})
	learningService.Start(ctx)

	engine := decision.NewEngine(decision.DefaultRules(), cfg.Engine.DecisionTolerance)

	recommendService := recommend.NewService(
		sessionStore,
		questionRepo,
		beverageRepo,
		engine,
		predictorService,
		learningService,
		learningService,
		recommend.Config{
			TotalQuestions:    cfg.Engine.TotalQuestions,
			MaxInitial:        cfg.Engine.MaxInitialResults,
			MaxMore:           cfg.Engine.MaxMoreResults,
			MaxHealthyInitial: cfg.Engine.MaxHealthyInitial,
			MaxHealthyUser:    cfg.Engine.MaxHealthyUserResults,
		},
	)

	// Classify the catalog and warm the model before serving
	if _, err := categorizerService.ClassifyAll(ctx); err != nil {
		logger.Error("Startup classification failed", "error", err)
	}
	if err := learningService.Retrain(ctx); err != nil {
		logger.Error("Startup model training failed", "error", err)
	}

	// Periodic reclassification picks up catalog edits
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Engine.ClassifySchedule, func() {
		if _, err := categorizerService.ClassifyAll(ctx); err != nil {
			logger.Error("Scheduled classification failed", "error", err)
		}
	})
	if err != nil {
		logger.Fatal("Invalid classification schedule", "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Init handler
	sessionHandler := rest.NewSessionHandler(recommendService)
	catalogHandler := rest.NewCatalogHandler(beverageRepo, categorizerService, learningService, predictorService, ratingRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	metrics.Init()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupSessionRoutes(api, sessionHandler)
	router.SetupCatalogRoutes(api, catalogHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Shutdown server
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lucasrivero/brandforge-backend/api/routes"
	"github.com/lucasrivero/brandforge-backend/internal/brands"
	"github.com/lucasrivero/brandforge-backend/internal/generation"
	"github.com/lucasrivero/brandforge-backend/internal/llm"
	"github.com/lucasrivero/brandforge-backend/internal/themes"
	"github.com/lucasrivero/brandforge-backend/pkg/config"
	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/gemini"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
	"github.com/lucasrivero/brandforge-backend/pkg/metrics"
	"github.com/lucasrivero/brandforge-backend/pkg/openai"
	"github.com/lucasrivero/brandforge-backend/pkg/redis"
	"github.com/lucasrivero/brandforge-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "brandforge"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "brandforge",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	docStore, err := firestore.NewClient(ctx, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap firestore", err)
		os.Exit(1)
	}
	defer func() {
		if err := docStore.Close(); err != nil {
			logg.Error(ctx, "error closing firestore", err)
		}
	}()

	blobStore, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	openaiClient, err := openai.NewClient(ctx, cfg.OpenAI, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap openai", err)
		os.Exit(1)
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap gemini", err)
		os.Exit(1)
	}
	defer func() {
		if err := geminiClient.Close(); err != nil {
			logg.Error(ctx, "error closing gemini", err)
		}
	}()

	brandsRepo := brands.NewRepository(docStore, cfg.Firestore.BrandsCollection)
	themesRepo := themes.NewRepository(docStore, cfg.Firestore.ThemesCollection)

	brandsService, err := brands.NewService(brandsRepo)
	if err != nil {
		logg.Error(ctx, "failed to create brands service", err)
		os.Exit(1)
	}

	themesService, err := themes.NewService(themesRepo, brandsRepo)
	if err != nil {
		logg.Error(ctx, "failed to create themes service", err)
		os.Exit(1)
	}

	llmService, err := llm.NewService(openaiClient)
	if err != nil {
		logg.Error(ctx, "failed to create llm service", err)
		os.Exit(1)
	}

	generationMetrics := metrics.NewGenerationMetrics(prometheus.DefaultRegisterer)

	generationService, err := generation.NewService(
		brandsRepo,
		themesRepo,
		openaiClient,
		geminiClient,
		geminiClient,
		blobStore,
		cfg.Generation,
		generationMetrics,
		logg,
	)
	if err != nil {
		logg.Error(ctx, "failed to create generation service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			docStore,
			blobStore,
			redisClient,
			brandsService,
			themesService,
			generationService,
			llmService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(startCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docsummary/internal/ai"
	"docsummary/internal/cache"
	"docsummary/internal/config"
	"docsummary/internal/database"
	"docsummary/internal/database/migration"
	"docsummary/internal/extract"
	handlers "docsummary/internal/http/handler"
	"docsummary/internal/http/middleware"
	"docsummary/internal/logger"
	"docsummary/internal/otel"
	"docsummary/internal/repository/postgres"
	"docsummary/internal/service"
	"docsummary/internal/storage"
)

// maxRequestBodyBytes leaves headroom above the 20 MiB upload limit for
// the multipart envelope.
const maxRequestBodyBytes = 32 * 1024 * 1024

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer shutdownTracing(context.Background())

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	var docCache cache.DocumentCache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		docCache = redisCache
	}

	completer, err := ai.NewOpenAICompleter(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize completion client")
	}
	generator := ai.NewGenerator(ai.NewRateLimiter(), completer)

	extractor := extract.NewOCRExtractor(
		extract.NewFitzRenderer(),
		extract.NewTesseractFactory(),
		cfg.OCR.Language,
	)

	docRepo := postgres.NewDocumentPostgres(db)
	sumRepo := postgres.NewSummaryPostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo, sumRepo, extractor, docCache, log)
	sumSvc := service.NewSummaryService(docRepo, sumRepo, docSvc, generator, docCache, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    maxRequestBodyBytes,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, docSvc, sumSvc)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

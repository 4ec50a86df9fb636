package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/cv-screener/internal/config"
	"alfredoptarigan/cv-screener/internal/handlers"
	"alfredoptarigan/cv-screener/internal/logger"
	"alfredoptarigan/cv-screener/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(logger.Options{
		Format:  cfg.Server.LogFormat,
		Debug:   cfg.IsDevelopment(),
		Service: "cv-screener-api",
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	if !cfg.EnvFileLoaded {
		zl.Info("no .env file found, using environment")
	}

	// Initialize services
	matcher, err := services.NewSkillMatcher(cfg.Scoring.Matcher)
	if err != nil {
		zl.Fatal("invalid skill matcher", zap.Error(err))
	}

	ctx := context.Background()
	gateway, err := services.NewInferenceGateway(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize inference gateway", zap.Error(err))
	}
	zl.Info("inference gateway initialized", zap.String("provider", gateway.Name()))

	screener := services.NewScreenerService(
		services.NewDocumentParser(),
		gateway,
		services.NewReconciler(matcher),
		zl,
	)
	worker := services.NewBatchWorker(screener, cfg.Batch.Concurrency, zl)
	uploadService := services.NewUploadService(cfg.Upload.MaxFileSize)

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(uploadService, screener, zl)
	batchHandler := handlers.NewBatchHandler(uploadService, worker, cfg.Batch.MaxFiles, zl)
	reviewHandler := handlers.NewReviewHandler(uploadService, screener, zl)

	// Writes wait on the model, which can take minutes for a batch.
	app := fiber.New(fiber.Config{
		AppName:      "AI CV Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    cfg.BodyLimit(),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"provider": gateway.Name(),
			"time":     time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/analyze/batch", batchHandler.HandleBatch)
	api.Post("/review", reviewHandler.HandleReview)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI CV Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/analyze",
				"POST /api/analyze/batch",
				"POST /api/review",
				"GET /api/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

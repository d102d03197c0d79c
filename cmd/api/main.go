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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hrassist/resume-screener/internal/config"
	"hrassist/resume-screener/internal/handlers"
	"hrassist/resume-screener/internal/repositories"
	"hrassist/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	extractor := services.NewTextExtractor()
	chunker := services.NewTextChunker()
	analytics := services.NewAnalyticsService()

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Text generation goes through OpenRouter when its key is configured;
	// embeddings stay on Gemini either way.
	var llm services.LLMClient = geminiService
	if cfg.OpenRouter.APIKey != "" {
		llm = services.NewOpenRouterService(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model)
		log.Printf("✅ OpenRouter selected for text generation (%s)\n", cfg.OpenRouter.Model)
	}

	evaluatorService := services.NewEvaluatorService(llm, cfg.Evaluator.MaxRetries)
	log.Println("✅ Evaluator service initialized")

	// Qdrant is optional. Without it the API runs with similarity search
	// disabled instead of refusing to start.
	var qdrantService services.QdrantService
	var resumeIndexer services.Indexer
	qdrantService, err = services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err == nil {
		err = qdrantService.InitCollection()
	}
	if err != nil {
		log.Printf("⚠️ Qdrant unavailable, similarity search disabled: %v\n", err)
		qdrantService = nil
	} else {
		log.Println("✅ Qdrant initialized successfully")
		resumeIndexer = services.NewIndexer(
			evalRepo,
			extractor,
			chunker,
			geminiService,
			qdrantService,
			cfg.Indexer.Concurrency,
			cfg.Indexer.QueueSize,
		)
		resumeIndexer.Start(context.Background())
	}

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(jobRepo)
	evaluationHandler := handlers.NewEvaluationHandler(
		jobRepo,
		evalRepo,
		extractor,
		evaluatorService,
		geminiService,
		qdrantService,
		resumeIndexer,
		cfg.Upload.MaxFileSize,
	)
	analyticsHandler := handlers.NewAnalyticsHandler(jobRepo, evalRepo, analytics)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize) * 10,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Jobs
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Delete("/jobs/:id", jobHandler.HandleDeleteJob)
	api.Get("/jobs/:id/criteria", jobHandler.HandleGetCriteria)

	// Evaluations
	api.Post("/jobs/:id/evaluations", evaluationHandler.HandleBatchEvaluate)
	api.Get("/evaluations", evaluationHandler.HandleListEvaluations)
	api.Get("/evaluations/:id", evaluationHandler.HandleGetEvaluation)
	api.Get("/evaluations/:id/resume", evaluationHandler.HandleDownloadResume)
	api.Get("/evaluations/:id/export", evaluationHandler.HandleExportJSON)
	api.Get("/evaluations/:id/report", evaluationHandler.HandleDownloadReport)
	api.Get("/evaluations/:id/similar", evaluationHandler.HandleSimilar)
	api.Delete("/evaluations", evaluationHandler.HandleClearEvaluations)

	// Analytics
	api.Get("/dashboard", analyticsHandler.HandleDashboard)
	api.Get("/analytics/stats", analyticsHandler.HandleStats)
	api.Get("/analytics/trend", analyticsHandler.HandleTrend)
	api.Get("/analytics/jobs", analyticsHandler.HandleJobDistribution)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"POST /api/v1/jobs/:id/evaluations",
				"GET /api/v1/evaluations",
				"GET /api/v1/evaluations/:id",
				"GET /api/v1/dashboard",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if resumeIndexer != nil {
			resumeIndexer.Stop()
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/config"
	"alfredoptarigan/interview-practice/internal/handlers"
	"alfredoptarigan/interview-practice/internal/models"
	"alfredoptarigan/interview-practice/internal/repositories"
	"alfredoptarigan/interview-practice/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := config.InitLogger(cfg)
	log.Info("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize database")
	}

	sessionRepo := repositories.NewSessionRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Report storage
	reportStorage := services.NewReportStorage(cfg.Storage.ReportsPath)
	if err := reportStorage.EnsureReportDir(); err != nil {
		log.WithError(err).Fatal("❌ Failed to create reports directory")
	}

	// Generation client
	generationClient, err := services.NewGenerationClient(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize generation client")
	}
	log.WithField("provider", cfg.LLM.Provider).Info("✅ Generation client initialized")

	// Gemini also backs embeddings and transcription when a key is present
	var gemini services.GeminiService
	if cfg.LLM.GeminiAPIKey != "" {
		gemini, err = services.NewGeminiService(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel, cfg.LLM.EmbeddingModel, log)
		if err != nil {
			log.WithError(err).Fatal("❌ Failed to initialize Gemini")
		}
	}

	questionBank := initQuestionBank(ctx, cfg, gemini, log)

	// Initialize services
	prompts := services.NewPromptBuilder()
	parser := services.NewDocumentParserService(services.NewResumeExtractor(), log)
	generator := services.NewQuestionGeneratorService(generationClient, prompts, questionBank, cfg.Interview, log)
	evaluator := services.NewAnswerEvaluatorService(generationClient, prompts, cfg.Interview.EvalConcurrency, log)
	composer := services.NewReportComposerService(generationClient, prompts, log)
	interview := services.NewInterviewService(sessionRepo, parser, generator, evaluator, composer, reportStorage, log)
	log.Info("✅ Services initialized successfully")

	// Initialize Handlers
	routes := handlers.Handlers{
		Provider:   cfg.LLM.Provider,
		Document:   handlers.NewDocumentHandler(parser, cfg.Storage.MaxFileSize, log),
		Interview:  handlers.NewInterviewHandler(generator, evaluator, composer, log),
		Session:    handlers.NewSessionHandler(interview, cfg.Storage.MaxFileSize, log),
		// a nil transcriber answers 503
		Transcribe: handlers.NewTranscribeHandler(gemini, cfg.Storage.MaxFileSize, log),
	}
	log.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Practice API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
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
	handlers.RegisterRoutes(app.Group("/api/v1"), routes)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(models.NewResponse(fiber.Map{
			"message": "AI Interview Practice API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/documents/parse",
				"POST /api/v1/questions",
				"POST /api/v1/evaluations",
				"POST /api/v1/reports",
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"POST /api/v1/sessions/:id/questions",
				"POST /api/v1/sessions/:id/answers",
				"POST /api/v1/sessions/:id/report",
				"GET /api/v1/sessions/:id/report.pdf",
				"POST /api/v1/transcribe",
			},
		}))
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("❌ Failed to start server")
	}
}

// initQuestionBank returns nil when the bank is disabled or cannot be reached;
// question generation then runs without reference questions.
func initQuestionBank(ctx context.Context, cfg *config.Config, embedder services.Embedder, log *logrus.Logger) services.QuestionBank {
	if !cfg.Qdrant.Enabled {
		return nil
	}
	if embedder == nil {
		log.Warn("⚠️ Question bank needs GEMINI_API_KEY for embeddings, disabled")
		return nil
	}

	store, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log)
	if err != nil {
		log.WithError(err).Warn("⚠️ Failed to initialize Qdrant, question bank disabled")
		return nil
	}
	if err := store.InitCollection(ctx); err != nil {
		log.WithError(err).Warn("⚠️ Failed to initialize Qdrant collection, question bank disabled")
		return nil
	}

	log.Info("✅ Question bank initialized")
	return services.NewQuestionBank(embedder, store, services.NewTextChunker(), log)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.NewError(err.Error()))
}

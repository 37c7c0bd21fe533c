package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SaiNikheel/tenderBot/internal/config"
	"github.com/SaiNikheel/tenderBot/internal/handlers"
	"github.com/SaiNikheel/tenderBot/internal/services"
)

const version = "1.0.0"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg := config.Load()
	log.Info().Msg("✅ Config loaded successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}

	pdfParser := services.NewPDFParserService()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}
	log.Info().Str("model", cfg.Gemini.Model).Msg("✅ Gemini AI initialized successfully")

	analyzerService := services.NewAnalyzerService(geminiService, pdfParser)
	log.Info().Msg("✅ Analyzer service initialized")

	analyzeHandler := handlers.NewAnalyzeHandler(
		storageService,
		analyzerService,
		cfg.Storage.MaxFileSize,
	)
	chatHandler := handlers.NewChatHandler(analyzerService)

	app := fiber.New(fiber.Config{
		AppName: "TenderBot API",
		// Two documents plus multipart overhead
		BodyLimit:    int(2*cfg.Storage.MaxFileSize) + 1<<20,
		ReadTimeout:  cfg.Gemini.Timeout + 5*time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 5*time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":     "TenderBot API is running!",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Server.Env,
			"version":     version,
			"endpoints": fiber.Map{
				"analyze": "/api/analyze",
				"chat":    "/api/chat",
				"health":  "/health",
			},
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		geminiKey := "missing"
		if cfg.Gemini.APIKey != "" {
			geminiKey = "configured"
		}
		return c.JSON(fiber.Map{
			"status":      "healthy",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Server.Env,
			"geminiKey":   geminiKey,
		})
	})

	api := app.Group("/api")
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/chat", chatHandler.HandleChat)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
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

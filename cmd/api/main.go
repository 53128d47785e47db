package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/johnquangdev/note-cleaner/internal/adapter/handler"
	notesuse "github.com/johnquangdev/note-cleaner/internal/usecase/notes"
	"github.com/johnquangdev/note-cleaner/pkg/config"
	pkgvalidator "github.com/johnquangdev/note-cleaner/pkg/validator"
)

// @title           Note Cleaner API
// @version         1.0
// @description     Generates transcript-grounded meeting notes through a validation and repair pipeline

// @contact.name   API Support
// @contact.email  support@infoquang.id.vn

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	validator := pkgvalidator.New()
	e.Validator = validator

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Request-ID", "x-test-mode", "x-test-id"},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Test-mode registry is only constructed when explicitly enabled
	var registry *notesuse.TestModeRegistry
	if cfg.Engine.EnableTestMode {
		log.Println("🧪 Test mode enabled, fault-injection headers active")
		registry = notesuse.NewTestModeRegistry()
	}

	// Initialize notes service with the configured provider
	log.Println("🤖 Initializing notes service...")
	notesService, err := notesuse.NewService(cfg, validator, registry, logger)
	if err != nil {
		log.Fatalf("Failed to initialize notes service: %v", err)
	}

	// Initialize notes handler
	notesHandler := handler.NewNotes(notesService, cfg.Engine.EnableTestMode, logger)
	log.Println("✅ Notes handler initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, notesHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.Addr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lendflow-los/internal/adapters/http/middleware"
	"lendflow-los/internal/adapters/http/routes"
	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/config"
	"lendflow-los/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "lendflow-los/docs" // Swagger docs
)

// @title LendFlow LOS API
// @version 1.0
// @description Loan origination system API: customers, KYC, loan applications and decisioning.

// @contact.name API Support
// @contact.email support@lendflow.app

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the initial admin account
	if err := config.SeedDefaultAdmin(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin user: %v", err)
	}

	// Start maintenance cron (expired token cleanup, 03:30 daily)
	maintenance := services.NewMaintenanceService(repositories.NewRefreshTokenRepository(db))
	maintenance.Start()
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LendFlow LOS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass cfg and db for dependency injection)
	routes.Setup(app, cfg, db)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

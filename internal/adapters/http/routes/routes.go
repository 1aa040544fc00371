package routes

import (
	"lendflow-los/internal/adapters/http/handlers"
	"lendflow-los/internal/adapters/http/middleware"
	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/config"
	"lendflow-los/internal/core/services"
	"lendflow-los/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services, handlers and routes
func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	appRepo := repositories.NewLoanApplicationRepository(db)
	historyRepo := repositories.NewStatusHistoryRepository(db)

	// Services
	codec := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, codec, cfg)
	customerService := services.NewCustomerService(customerRepo)
	applicationService := services.NewApplicationService(appRepo, historyRepo, customerRepo)
	dashboardService := services.NewDashboardService(appRepo, customerRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Identity resolution runs on every request but never rejects;
	// RequireAuth / role guards below decide per route group.
	app.Use(middleware.Authenticate(cfg, codec, userRepo))

	// Public
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.RequireAuth(), authHandler.LogoutAll)
	auth.Get("/me", middleware.RequireAuth(), authHandler.Me)

	// Customers
	customers := api.Group("/customers", middleware.RequireAuth())
	customers.Post("/", middleware.OfficerOrAdmin(), customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", middleware.OfficerOrAdmin(), customerHandler.Update)
	customers.Delete("/:id", middleware.AdminOnly(), customerHandler.Delete)
	customers.Patch("/:id/kyc", middleware.OfficerOrAdmin(), customerHandler.UpdateKYC)
	customers.Get("/:id/applications", applicationHandler.ListByCustomer)

	// Loan applications
	applications := api.Group("/applications", middleware.RequireAuth())
	applications.Post("/", applicationHandler.Create)
	applications.Get("/", applicationHandler.List)
	applications.Get("/:id", applicationHandler.Get)
	applications.Get("/:id/history", applicationHandler.History)
	applications.Post("/:id/submit", applicationHandler.Submit)
	applications.Post("/:id/review", middleware.OfficerOrAdmin(), applicationHandler.StartReview)
	applications.Post("/:id/approve", middleware.OfficerOrAdmin(), applicationHandler.Approve)
	applications.Post("/:id/reject", middleware.OfficerOrAdmin(), applicationHandler.Reject)

	// Dashboard
	dashboard := api.Group("/dashboard", middleware.RequireAuth(), middleware.OfficerOrAdmin())
	dashboard.Get("/stats", dashboardHandler.Stats)
}

// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and groups
// routes by authentication requirement.
package routes

import (
	"saudapakka/internal/handlers"
	"saudapakka/internal/mailer"
	"saudapakka/internal/middleware"
	"saudapakka/internal/repositories"
	"saudapakka/internal/services/auth"
	"saudapakka/internal/services/kyc"
	"saudapakka/internal/services/moderation"
	"saudapakka/internal/services/property"
	"saudapakka/internal/services/user"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	propertyRepo := repositories.NewPropertyRepository(repositories.DB)
	interactionRepo := repositories.NewInteractionRepository(repositories.DB)
	kycRepo := repositories.NewKycRepository(repositories.DB)
	moderationRepo := repositories.NewModerationRepository(repositories.DB)

	// Initialize services
	authService := auth.NewService(userRepo, mailer.New())
	kycService := kyc.NewService(kycRepo, kyc.AutoApproveProvider{})
	userService := user.NewService(userRepo, kycRepo)

	listingCache := property.NewListingCache(repositories.CacheService)
	propertyService := property.NewService(propertyRepo, interactionRepo, listingCache)
	moderationService := moderation.NewService(propertyRepo, userRepo, moderationRepo, listingCache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	kycHandler := handlers.NewKycHandler(kycService)
	userHandler := handlers.NewUserHandler(userService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	adminHandler := handlers.NewAdminHandler(moderationService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Saudapakka API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Auth endpoints (no auth required)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.RequestOTP)
	authGroup.Post("/verify", authHandler.VerifyOTP)
	authGroup.Post("/admin-login", authHandler.AdminLogin)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	api.Post("/logout", authMiddleware.Handler, authHandler.Logout)

	// Listings: reads resolve an optional principal so guests get the
	// verified-only view while owners also see their own. The static
	// my_* routes must register before the :id matcher.
	properties := api.Group("/properties")
	properties.Get("/", authMiddleware.OptionalHandler, propertyHandler.List)
	properties.Get("/my_saved", authMiddleware.Handler, propertyHandler.MySaved)
	properties.Get("/my_recent", authMiddleware.Handler, propertyHandler.MyRecent)
	properties.Get("/:id", authMiddleware.OptionalHandler, propertyHandler.Get)

	properties.Post("/", authMiddleware.Handler, propertyHandler.Create)
	properties.Put("/:id", authMiddleware.Handler, propertyHandler.Update)
	properties.Patch("/:id", authMiddleware.Handler, propertyHandler.Update)
	properties.Delete("/:id", authMiddleware.Handler, propertyHandler.Delete)
	properties.Post("/:id/save_property", authMiddleware.Handler, propertyHandler.ToggleSave)
	properties.Get("/:id/record_view", authMiddleware.Handler, propertyHandler.RecordView)

	// Public broker/seller directory
	api.Get("/search-profiles", userHandler.SearchProfiles)

	// Account routes
	protected := api.Use(authMiddleware.Handler)
	protected.Get("/user/me", userHandler.Me)
	protected.Patch("/user/me", userHandler.UpdateMe)
	protected.Post("/user/upgrade", userHandler.UpgradeRole)
	protected.Post("/kyc/submit", kycHandler.Submit)
	protected.Get("/kyc/status", kycHandler.Status)

	// Admin panel (superuser only)
	admin := app.Group("/api/admin-panel", authMiddleware.Handler, middleware.SuperuserOnly)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/properties", adminHandler.ListProperties)
	admin.Post("/properties/:id/action", adminHandler.PropertyAction)
	admin.Get("/properties/:id/history", adminHandler.PropertyHistory)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users/:id/action", adminHandler.UserAction)
}

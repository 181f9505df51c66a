package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/example/dentacademy/internal/catalog"
	"github.com/example/dentacademy/internal/config"
	"github.com/example/dentacademy/internal/handlers"
	"github.com/example/dentacademy/internal/middleware"
	"github.com/example/dentacademy/internal/services"
	"github.com/example/dentacademy/internal/storage"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, redisClient *redis.Client, objectStore storage.ObjectStore) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	mailer := services.LogMailer{}

	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	passwordResetHandler := handlers.NewPasswordResetHandler(db, cfg, mailer)
	orderHandler := handlers.NewOrderHandler(db, telegramService)
	adminHandler := handlers.NewAdminHandler(db)
	cartHandler := handlers.NewCartHandler(redisClient, cfg.CartTTL)
	uploadHandler := handlers.NewUploadHandler(objectStore)

	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.RequireAdmin(db)

	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify", authHandler.Verify)
	authGroup.Post("/forgot-password", passwordResetHandler.ForgotPassword)
	authGroup.Post("/verify-reset-code", passwordResetHandler.VerifyResetCode)
	authGroup.Post("/reset-password", passwordResetHandler.ResetPassword)

	// Catalog resources: public reads, admin-gated mutations.
	handlers.NewResourceHandler(db, catalog.Courses()).Register(api.Group("/courses"), auth, admin)
	handlers.NewResourceHandler(db, catalog.Exams()).Register(api.Group("/exams"), auth, admin)
	handlers.NewResourceHandler(db, catalog.TestSeriesDesc()).Register(api.Group("/test-series"), auth, admin)
	handlers.NewResourceHandler(db, catalog.Videos()).Register(api.Group("/videos"), auth, admin)
	handlers.NewResourceHandler(db, catalog.Notes()).Register(api.Group("/notes"), auth, admin)
	handlers.NewResourceHandler(db, catalog.Reviews()).Register(api.Group("/reviews"), auth, admin)
	handlers.NewResourceHandler(db, catalog.DentistRegistrations()).Register(api.Group("/dentist-registrations"), auth, admin)

	// Visitor cart, keyed by cookie; no authentication required.
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)
	cartGroup.Delete("/", cartHandler.Clear)

	// Session-scoped routes
	api.Get("/users/me", auth, authHandler.Me)
	api.Get("/users/role", auth, authHandler.Role)
	api.Post("/orders", auth, orderHandler.CreateOrder)
	api.Get("/orders", auth, orderHandler.ListOrders)
	api.Get("/orders/:id", auth, orderHandler.GetOrder)

	// Admin surface
	adminGroup := api.Group("/admin", auth, admin)
	adminGroup.Get("/stats", adminHandler.DashboardStats)
	adminGroup.Get("/users", adminHandler.ListAllUsers)
	adminGroup.Put("/users/:id/role", adminHandler.UpdateUserRole)
	adminGroup.Get("/orders", adminHandler.ListAllOrders)
	adminGroup.Get("/uploads/sign", uploadHandler.Sign)
}

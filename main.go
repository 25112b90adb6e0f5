// main.go
package main

import (
	"log"
	"os"
	"time"

	"vasool/database"
	"vasool/handlers"
	"vasool/middleware"
	"vasool/models"
	"vasool/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()
	database.RunMigrations()

	// Wire stores, services and handlers
	db := database.GetDB()
	teamStore := database.NewTeamStore(db)
	memberStore := database.NewMemberStore(db)
	transactionStore := database.NewTransactionStore(db)
	userStore := database.NewUserStore(db)

	teamService := services.NewTeamService(teamStore, memberStore, transactionStore, nil)
	reportService := services.NewReportService(teamStore, transactionStore)

	handlers.InitUserHandlers(userStore)
	handlers.InitTeamHandlers(teamService)
	handlers.InitReportHandlers(reportService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// User and auth routes
	users := api.Group("/users")
	users.Post("/login", middleware.AuthRateLimitMiddleware(), handlers.Login)
	users.Post("/register_super_admin", middleware.AuthRateLimitMiddleware(), handlers.RegisterSuperAdmin)
	users.Post("/register", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), handlers.RegisterUser)
	users.Get("/", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), handlers.ListUsers)
	users.Put("/:id", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleSuperAdmin), handlers.EditUser)
	users.Delete("/:id", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleSuperAdmin), handlers.DeleteUser)

	// Team routes. Member and transaction routes are registered before
	// the parameterized team routes so /:day does not swallow them.
	teams := api.Group("/teams", middleware.AuthMiddleware)
	teams.Post("/members", handlers.AddMember)
	teams.Put("/members/:id", handlers.EditMember)
	teams.Delete("/members/:id", handlers.DeleteMember)
	teams.Get("/members/:id", handlers.ListMembers)
	teams.Post("/transactions", handlers.AddTransaction)
	teams.Delete("/transactions/:id", handlers.DeleteTransaction)
	teams.Get("/transactions/:teamId", handlers.ListTransactions)
	teams.Post("/", handlers.CreateTeam)
	teams.Get("/single/:id", handlers.GetTeam)
	teams.Get("/:day", handlers.GetTeamsByDay)
	teams.Put("/:id", handlers.EditTeam)
	teams.Delete("/:id", handlers.DeleteTeam)

	// Report routes
	reports := api.Group("/reports", middleware.AuthMiddleware)
	reports.Get("/", handlers.GetRangeReport)
	reports.Get("/:day", handlers.GetDayReport)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("HTTP server starting on port %s", port)
	log.Printf("Environment: %s", getEnv("APP_ENV", "development"))

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("SUPER_ADMIN_SECRET") == "" {
		log.Println("WARNING: SUPER_ADMIN_SECRET not set, super admin registration is disabled")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

// Helper functions

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

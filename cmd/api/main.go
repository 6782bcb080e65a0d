package main

import (
	"fmt"
	"net/http"
	"os"

	"minhasfinancas/internal/auth"
	"minhasfinancas/internal/config"
	"minhasfinancas/internal/database"
	"minhasfinancas/internal/handlers"
	"minhasfinancas/internal/logger"
	"minhasfinancas/internal/middleware"
	"minhasfinancas/internal/services"
	"minhasfinancas/internal/validator"
	"minhasfinancas/internal/watch"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Minhas Finanças API
// @version         1.0
// @description     Minhas Finanças is a personal finance tracker: accounts, income and expense events, categories, and live balance summaries.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager and apply migrations
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services. The hub fans table change notifications out to
	// the live summary streams.
	db := dbManager.DB()
	hub := watch.NewHub()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, hub)
	accountTypeService := services.NewAccountTypeService(db, hub)
	accountService := services.NewAccountService(db, hub)
	categoryService := services.NewCategoryService(db, hub)
	eventService := services.NewEventService(db, accountService, hub)
	summaryService := services.NewSummaryService(accountService, eventService, hub)

	// The API has no biometric sensor; devices verify locally and call
	// the biometric login endpoint with the verified user.
	authManager := auth.NewManager(userService, auth.StaticProbe(auth.BiometricAvailable))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, authManager, auditService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	accountTypeHandler := handlers.NewAccountTypeHandler(accountTypeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	eventHandler := handlers.NewEventHandler(eventService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes. Register is open only until the first user exists.
	authRoutes := v1.Group("/auth")
	authRoutes.GET("/state", authHandler.State)
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/biometric", authHandler.BiometricLogin)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/auth/profile", authHandler.GetProfile)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.POST("/:id/archive", accountHandler.ArchiveAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	protected.GET("/banks", accountHandler.ListBanks)

	// Account type routes
	accountTypes := protected.Group("/account-types")
	accountTypes.GET("", accountTypeHandler.ListAccountTypes)
	accountTypes.GET("/:id", accountTypeHandler.GetAccountType)
	accountTypes.POST("", accountTypeHandler.CreateAccountType)
	accountTypes.PUT("/:id", accountTypeHandler.UpdateAccountType)
	accountTypes.DELETE("/:id", accountTypeHandler.DeleteAccountType)

	// Category routes
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Event routes
	events := protected.Group("/events")
	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.ListEvents)
	events.GET("/:id", eventHandler.GetEvent)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.PATCH("/:id/effective", eventHandler.SetEffective)
	events.DELETE("/:id", eventHandler.DeleteEvent)

	// Summary routes
	summary := protected.Group("/summary")
	summary.GET("/balance", summaryHandler.GetBalance)
	summary.GET("/balance/stream", summaryHandler.StreamBalance)
	summary.GET("/month", summaryHandler.GetMonthSummary)
	summary.GET("/month/stream", summaryHandler.StreamMonthSummary)

	log.Infof("Starting Minhas Finanças backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

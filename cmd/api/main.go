package main

import (
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/email"
	"fintrack/internal/graph"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	mailer := email.NewResendSender(appConfig.ResendAPIKey)
	uploader, err := storage.NewS3Uploader(storage.Config{
		Endpoint:  appConfig.S3Endpoint,
		AccessKey: appConfig.S3AccessKey,
		SecretKey: appConfig.S3SecretKey,
		Bucket:    appConfig.S3Bucket,
		UseSSL:    appConfig.S3UseSSL,
		PublicURL: appConfig.S3PublicURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create object storage client: %w", err)
	}

	authService := services.NewAuthService(db, mailer)
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)

	// Build the executable schema
	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:         authService,
		Users:        userService,
		Categories:   categoryService,
		Transactions: transactionService,
		Storage:      uploader,
	})
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// GraphQL endpoint
	router.POST("/graphql", middleware.Auth(), graph.Handler(schema))

	log.Infof("Starting fintrack backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

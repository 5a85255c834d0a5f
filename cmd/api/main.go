package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/marketplace-backend/config"
	"github.com/dustin/marketplace-backend/internal/adapter"
	"github.com/dustin/marketplace-backend/internal/category"
	"github.com/dustin/marketplace-backend/internal/enrichment"
	"github.com/dustin/marketplace-backend/internal/product"
	"github.com/dustin/marketplace-backend/internal/recommendation"
	"github.com/dustin/marketplace-backend/internal/repository"
	"github.com/dustin/marketplace-backend/internal/review"
	"github.com/dustin/marketplace-backend/internal/user"
	"github.com/dustin/marketplace-backend/internal/worker"
	"github.com/dustin/marketplace-backend/pkg/database"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger with validation and defaults
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	appLogger.Info("Starting marketplace backend service")

	// Connect to database with validation and defaults
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: " + err.Error())
	}

	appLogger.Info("Database connection established")

	// Run database migrations for all feature models
	if err := db.AutoMigrate(&user.User{}, &category.Category{}, &product.Product{}, &review.Review{}); err != nil {
		appLogger.Fatal("Failed to migrate database: " + err.Error())
	}

	// One active review per (user, product); deactivated rows stay behind
	// for history so a plain unique index would reject legitimate re-reviews
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_one_active_per_buyer
		ON reviews (user_id, product_id) WHERE status = 'active'`).Error; err != nil {
		appLogger.Fatal("Failed to create active review index: " + err.Error())
	}

	appLogger.Info("Database migration completed")

	// Initialize GORM-based repositories
	userRepo := repository.NewGORMUserRepository(db, appLogger)
	categoryRepo := repository.NewGORMCategoryRepository(db, appLogger)
	productRepo := repository.NewGORMProductRepository(db, appLogger)
	reviewRepo := repository.NewGORMReviewRepository(db, appLogger)
	recommendationRepo := repository.NewGORMRecommendationRepository(db, appLogger)

	// Initialize source page extractor with validation and defaults
	metadataExtractorImpl, err := enrichment.NewReadabilityExtractor(&cfg.Enrichment, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize metadata extractor: " + err.Error())
	}

	// Create adapter to bridge interface compatibility
	metadataExtractor := adapter.NewExtractorToMetadataExtractor(metadataExtractorImpl)

	// Initialize business services with dependency injection
	userService, err := user.NewService(&cfg.JWT, userRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize user service: " + err.Error())
	}
	categoryService := category.NewService(categoryRepo, appLogger)
	productService := product.NewService(productRepo, metadataExtractor, appLogger)

	// Review lifecycle resolves products and categories through narrowed gateways
	reviewProductGateway := adapter.NewProductServiceToReviewProductGateway(productService)
	reviewCategoryGateway := adapter.NewCategoryServiceToReviewCategoryGateway(categoryService)
	ratingAggregator := review.NewAggregator(appLogger)
	reviewService := review.NewService(reviewRepo, reviewProductGateway, reviewCategoryGateway, ratingAggregator, appLogger)

	recommendationService := recommendation.NewService(recommendationRepo, recommendation.NewEngine(), appLogger)

	// Initialize HTTP handlers
	userHandler := user.NewHandler(userService)
	categoryHandler := category.NewHandler(categoryService)
	productHandler := product.NewHandler(productService)
	reviewHandler := review.NewHandler(reviewService)
	recommendationHandler := recommendation.NewHandler(recommendationService)

	// Initialize background worker for enrichment retries
	enrichmentRetryWorker, err := worker.NewRetryWorker(
		&cfg.Worker,
		"enrichment-retry",
		productService.RetryFailedEnrichment,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize retry worker: " + err.Error())
	}

	// Start background processing
	if err := enrichmentRetryWorker.Start(); err != nil {
		appLogger.Error("Failed to start enrichment retry worker: " + err.Error())
	}

	// Setup HTTP router with middleware
	router := gin.New()

	// Configure standard middleware stack
	router.Use(requestid.New())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	// Health check endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "marketplace-backend",
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "healthy",
			"timestamp":    time.Now(),
			"service":      "marketplace-backend",
			"retry_worker": enrichmentRetryWorker.IsRunning(),
			"database":     "connected",
			"extractor":    metadataExtractorImpl.IsHealthy(),
		})
	})

	// Auth middleware resolves the user so role checks downstream see the
	// current role, not the one minted into the token
	authMiddleware := userHandler.AuthMiddleware()

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Register feature routes - each feature manages its own routes
		userHandler.RegisterRoutes(v1, authMiddleware)
		categoryHandler.RegisterRoutes(v1, authMiddleware)
		productHandler.RegisterRoutes(v1, authMiddleware)
		reviewHandler.RegisterRoutes(v1, authMiddleware)
		recommendationHandler.RegisterRoutes(v1, authMiddleware)
	}

	// Parse server configuration with defaults
	serverPort := cfg.Server.Port
	if serverPort == "" {
		serverPort = "8080" // default
	}

	serverReadTimeout := 30 * time.Second // default
	if cfg.Server.ReadTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.ReadTimeout); err == nil {
			serverReadTimeout = duration
		}
	}

	serverWriteTimeout := 30 * time.Second // default
	if cfg.Server.WriteTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.WriteTimeout); err == nil {
			serverWriteTimeout = duration
		}
	}

	serverEnvironment := cfg.Server.Environment
	if serverEnvironment == "" {
		serverEnvironment = "development" // default
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server: " + err.Error())
		}
	}()

	appLogger.Info("Server started successfully on port " + serverPort + " (" + serverEnvironment + " environment)")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop retry worker first
	if err := enrichmentRetryWorker.Stop(); err != nil {
		appLogger.Error("Error stopping retry worker: " + err.Error())
	}

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown: " + err.Error())
	}

	appLogger.Info("Server shutdown complete")
}

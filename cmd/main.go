package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	echojwt "github.com/labstack/echo-jwt/v4"

	"homestock/internal/caching"
	"homestock/internal/handlers"
	"homestock/internal/jobs/background"
	"homestock/internal/middleware"
	"homestock/internal/repositories"
	"homestock/internal/services"
	"homestock/pkg/database"
)

// @title Homestock API
// @version 1.0
// @description Household inventory API. Authentication is delegated to an
// @description external identity provider; requests carry its bearer token.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Auth provider JWKS. SUPABASE_URL is the common deployment shape;
	// AUTH_JWKS_URL overrides it for other providers.
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL == "" {
		supabaseURL := os.Getenv("SUPABASE_URL")
		if supabaseURL == "" {
			log.Fatal("AUTH_JWKS_URL or SUPABASE_URL environment variable is required")
		}
		jwksURL = strings.TrimRight(supabaseURL, "/") + "/auth/v1/.well-known/jwks.json"
	}

	keyFunc, err := middleware.NewJWKSKeyfunc(jwksURL)
	if err != nil {
		log.Fatalf("Failed to fetch JWKS from %s: %v", jwksURL, err)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	photoBucket := os.Getenv("MINIO_BUCKET")
	if photoBucket == "" {
		photoBucket = "homestock-photos"
	}

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	householdRepo := repositories.NewHouseholdRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	listRepo := repositories.NewItemListRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	userSyncSvc := services.NewUserSyncService(userRepo)
	householdSvc := services.NewHouseholdService(householdRepo, cacheSvc)
	itemSvc := services.NewItemService(itemRepo, householdRepo, minioSvc, photoBucket)
	listSvc := services.NewItemListService(listRepo, householdRepo)

	// Create handlers
	householdHandlers := handlers.NewHouseholdHandlers(householdSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(itemSvc)
	listHandlers := handlers.NewListHandlers(listSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, photoBucket)

	// Background photo sweep
	sweeper, err := background.NewPhotoSweeper(itemRepo, minioSvc, photoBucket)
	if err != nil {
		log.Fatalf("Failed to initialize photo sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	allowedOrigins := []string{"http://localhost:4200"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		allowedOrigins = strings.Split(raw, ";")
	}
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: allowedOrigins,
	}))

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes (bearer token required)
	api := e.Group("/api")
	api.Use(middleware.RateLimit(cacheSvc, 120, time.Minute))
	api.Use(echojwt.WithConfig(middleware.JWTConfig(keyFunc)))
	api.Use(middleware.IdentityContext())
	api.Use(middleware.UserSync(userSyncSvc))

	// Household routes
	api.GET("/household", householdHandlers.ListMyHouseholds)
	api.GET("/household/:id", householdHandlers.GetHousehold)
	api.POST("/household", householdHandlers.CreateHousehold)
	api.POST("/household/join/:code", householdHandlers.JoinHousehold)

	// Inventory routes
	api.GET("/inventory/items", inventoryHandlers.ListItems)
	api.GET("/inventory/items/:id", inventoryHandlers.GetItem)
	api.POST("/inventory/items", inventoryHandlers.CreateItem)
	api.PUT("/inventory/items/:id", inventoryHandlers.UpdateItem)
	api.DELETE("/inventory/items/:id", inventoryHandlers.DeleteItem)
	api.POST("/inventory/items/:id/photo", inventoryHandlers.UploadItemPhoto)

	// Item list routes
	api.GET("/inventory/lists", listHandlers.ListLists)
	api.POST("/inventory/lists", listHandlers.CreateList)
	api.DELETE("/inventory/lists/:id", listHandlers.DeleteList)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Homestock server starting on port %s", port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}

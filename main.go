package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"local-services-server/config"
	"local-services-server/database"
	"local-services-server/middleware"
	"local-services-server/routes"
	"local-services-server/services"
	ws "local-services-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed service categories
	if err := seedServiceCategories(); err != nil {
		log.Printf("⚠️ Category seeding failed: %v", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Local Services Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Live job posting feed for workers
	jobHub := ws.NewHub()
	go jobHub.Run()
	routes.SetJobHub(jobHub)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Category routes (public)
		routes.RegisterCategoryRoutes(api)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protectedAuth := protected.Group("/auth")
			routes.RegisterProtectedAuthRoutes(protectedAuth)

			jobPostingRoutes := protected.Group("/job-postings")
			routes.RegisterJobPostingRoutes(jobPostingRoutes)

			applicationRoutes := protected.Group("/applications")
			routes.RegisterApplicationRoutes(applicationRoutes)

			bookingRoutes := protected.Group("/bookings")
			routes.RegisterBookingRoutes(bookingRoutes)

			addressRoutes := protected.Group("/addresses")
			routes.RegisterAddressRoutes(addressRoutes)

			routes.RegisterReviewRoutes(protected)
			routes.RegisterWorkerRoutes(protected)
			routes.RegisterWorkerMediaRoutes(protected)
			routes.RegisterWebSocketRoutes(protected, jobHub)
		}
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Daily cleanup of expired refresh tokens
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			jwtService := services.NewJWTService(database.DB)
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		}
	}()

	// Hourly cleanup of idle rate limiters
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			middleware.CleanupRateLimiters()
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

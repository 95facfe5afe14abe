package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth_service/internal/config"
	"auth_service/internal/handler"
	"auth_service/internal/middleware"
	"auth_service/internal/repository"
	"auth_service/internal/service"
	"auth_service/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	tokenCfg, err := config.LoadTokenConfig()
	if err != nil {
		log.Fatalf("Failed to load token config: %v", err)
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(tokenCfg.Secret, tokenCfg.AccessTTL, tokenCfg.RefreshTTL)

	// --- Initialize Repositories ---
	accountRepo := repository.NewAccountRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(accountRepo, jwtUtil)
	accountService := service.NewAccountService(accountRepo)

	// --- Seed Initial Admin ---
	initialAdminPhone := os.Getenv("INITIAL_ADMIN_PHONE")
	initialAdminPassword := os.Getenv("INITIAL_ADMIN_PASSWORD")
	if initialAdminPhone != "" && initialAdminPassword != "" {
		if err := accountService.EnsureAdmin(context.Background(), initialAdminPhone, initialAdminPassword); err != nil {
			log.Fatalf("Failed to seed initial admin: %v", err)
		}
	} else {
		log.Println("INITIAL_ADMIN_PHONE / INITIAL_ADMIN_PASSWORD not set, skipping admin seeding")
	}

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminRoleMW := middleware.AdminMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1") // Base path for API
	authHandler.RegisterAuthRoutes(apiGroup)
	accountHandler.RegisterAccountRoutes(apiGroup, jwtAuthMW, adminRoleMW)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		// Check DB connection
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

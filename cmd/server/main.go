package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nestgirl/internal/ai"
	"nestgirl/internal/config"
	"nestgirl/internal/feed"
	"nestgirl/internal/handler"
	"nestgirl/internal/middleware"
	"nestgirl/internal/repository"
	"nestgirl/internal/service"
	"nestgirl/internal/session"
	"nestgirl/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("failed to load configuration", "error", err)
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		logger.Fatalw("failed to auto-migrate database", "error", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecretKey, cfg.JWTExpirationHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	postRepo := repository.NewPostRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	articleRepo := repository.NewArticleRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	sessionRepo := repository.NewSessionRepository(dbPool)

	// --- Sessions and Live Feeds ---
	sessions := session.NewStore(sessionRepo, userRepo, logger)
	hub := feed.NewHub()

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, sessions, jwtUtil, hub, cfg.AdminPhone, logger)
	profileService := service.NewProfileService(userRepo, hub)
	communityService := service.NewCommunityService(postRepo, hub, logger)
	storeService := service.NewStoreService(productRepo, orderRepo, hub, cfg.DeliveryFee, logger)
	articleService := service.NewArticleService(articleRepo, hub)

	// --- AI Assistant ---
	assistant, err := ai.New(context.Background(), cfg.GeminiAPIKey, cfg.GreetingModel, cfg.ChatModel, logger)
	if err != nil {
		logger.Fatalw("failed to initialize assistant", "error", err)
	}

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, logger)
	profileHandler := handler.NewProfileHandler(profileService, sessions, logger)
	communityHandler := handler.NewCommunityHandler(communityService, sessions, hub, logger)
	storeHandler := handler.NewStoreHandler(storeService, sessions, hub, logger)
	articleHandler := handler.NewArticleHandler(articleService, hub, logger)
	aiHandler := handler.NewAIHandler(assistant, sessions, logger)
	adminHandler := handler.NewAdminHandler(profileService, storeService, articleService, hub, logger)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	// For production, configure specific origins, methods, headers
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
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
	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW)
	profileHandler.RegisterProfileRoutes(apiGroup, jwtAuthMW)
	communityHandler.RegisterCommunityRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	storeHandler.RegisterStoreRoutes(apiGroup, jwtAuthMW)
	articleHandler.RegisterArticleRoutes(apiGroup, jwtAuthMW)
	aiHandler.RegisterAIRoutes(apiGroup, jwtAuthMW)
	adminHandler.RegisterAdminRoutes(apiGroup, jwtAuthMW, adminRoleMW)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Infow("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("listen failed", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalw("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}

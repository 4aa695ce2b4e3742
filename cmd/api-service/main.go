package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"sttock-tracker/internal/tracker/config"
	delivery "sttock-tracker/internal/tracker/delivery/http"
	_ "sttock-tracker/internal/tracker/docs"
	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/internal/tracker/service"
	"sttock-tracker/pkg/credentials"
	"sttock-tracker/pkg/logger"
	"sttock-tracker/pkg/postgres"
	"sttock-tracker/pkg/redis"
	"sttock-tracker/pkg/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	// Initialize database when any backend needs it
	var db *postgres.DB
	if cfg.Storage.Driver == "postgres" || cfg.Auth.Driver == "postgres" {
		postgresCfg := postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		}
		db, err = postgres.NewDB(postgresCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories; the storage and auth backends are selected
	// here once, the services never branch on them.
	var watchlistRepo repository.WatchlistRepository
	switch cfg.Storage.Driver {
	case "postgres":
		watchlistRepo = repository.NewPostgresWatchlistRepository(db.DB)
	default:
		watchlistRepo = repository.NewFileWatchlistRepository(cfg.Storage.DataDir)
	}

	var userRepo repository.UserRepository
	var sessionRepo repository.SessionRepository
	switch cfg.Auth.Driver {
	case "postgres":
		userRepo = repository.NewUserRepository(db.DB)
		sessionRepo = repository.NewSessionRepository(db.DB)
	default:
		userRepo, err = repository.NewStaticUserRepository(cfg.Auth.StaticUsers, cfg.Auth.EmailDomain)
		if err != nil {
			appLogger.Fatal("Failed to initialize static credential store", logger.ErrorField(err))
		}
		sessionRepo = repository.NewRedisSessionRepository(redisClient.Client)
	}

	verificationRepo := repository.NewVerificationRepository(redisClient.Client)
	credsProvider := credentials.NewFileProvider(filepath.Join(cfg.Storage.DataDir, "credentials.json"))
	newsRepo := repository.NewGeminiNewsRepository(cfg, appLogger, credsProvider)

	// Initialize services
	accessTokenExpiry := cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}
	tokenMgr := token.NewManager(cfg.Auth.JWTSecret, accessTokenExpiry)
	emailSvc := service.NewEmailService(cfg, appLogger)
	authSvc := service.NewAuthService(cfg, userRepo, sessionRepo, verificationRepo, emailSvc, tokenMgr, appLogger)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, newsRepo, appLogger)

	// Start expired-session sweep
	cleanupSvc := service.NewSessionCleanupService(sessionRepo, appLogger, cfg.Cleanup.SessionSweepSchedule)
	if err := cleanupSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start session cleanup", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	// Initialize handlers and routes
	authMW := delivery.NewAuthMiddleware(tokenMgr, sessionRepo, appLogger)

	apiV1 := e.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	authGroup.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(10))))
	authHandler := delivery.NewAuthHandler(authSvc, watchlistSvc, authMW, appLogger)
	authHandler.RegisterRoutes(authGroup)

	stocksGroup := apiV1.Group("/stocks", authMW.Authenticate)
	watchlistHandler := delivery.NewWatchlistHandler(watchlistSvc, appLogger)
	watchlistHandler.RegisterRoutes(stocksGroup)

	settingsGroup := apiV1.Group("/settings", authMW.Authenticate)
	settingsHandler := delivery.NewSettingsHandler(credsProvider, appLogger)
	settingsHandler.RegisterRoutes(settingsGroup)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Sttock Tracker API
// @version 1.0
// @description Backend for the sttock watchlist: authenticated users track
// @description stock symbols with AI-generated news summaries.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}

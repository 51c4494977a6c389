// Package main provides the main entry point for the CasinoRadar API
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casinoradar/casinoradar/app/handlers"
	"github.com/casinoradar/casinoradar/app/middleware"
	"github.com/casinoradar/casinoradar/app/router"
	"github.com/casinoradar/casinoradar/app/services"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/casinoradar/casinoradar/config"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting CasinoRadar API...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Graceful shutdown: drain in-flight requests first so they can still
	// record activity, then stop the background workers.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	for _, fn := range app.stopFuncs {
		fn()
	}

	log.Println("Server stopped")
}

// setupLogging points the standard logger at the configured sink. File
// output rotates through lumberjack.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(rotated)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// Returns nil when caching is disabled; the permission flow runs uncached.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeEmailService initializes the email service used for report
// acknowledgements
func initializeEmailService(cfg *config.ProductionConfig) services.EmailService {
	var provider services.EmailProvider
	if cfg.Email.Host != "" {
		provider = services.NewSMTPEmailProvider(
			cfg.Email.Host,
			cfg.Email.Port,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.FromEmail,
		)
	} else {
		provider = services.NewMockEmailProvider()
	}
	return services.NewEmailService(provider)
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, cfg.Cache.DefaultTTL)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Initialize repositories
	adminRepo := repository.NewAdminUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	alertRepo := repository.NewSecurityAlertRepository(db)
	casinoRepo := repository.NewCasinoRepository(db)
	reportRepo := repository.NewCasinoReportRepository(db)
	homepageRepo := repository.NewHomepageRepository(db)

	// Initialize services
	emailService := initializeEmailService(cfg)

	tokenService, err := services.NewTokenService(
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		cfg.Auth.UseRSAKeys,
		cfg.Auth.PublicKey,
		cfg.Auth.PrivateKey,
		cfg.Auth.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Log that services are initialized
	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.Auth.Issuer, cfg.Auth.Audience)

	// Initialize flows
	permissionFlow := businessflow.NewPermissionFlow(adminRepo, alertRepo, rc)

	activityFlow := businessflow.NewActivityFlow(activityRepo, alertRepo)
	stopFuncs = append(stopFuncs, activityFlow.Close)

	alertFlow := businessflow.NewSecurityAlertFlow(alertRepo, activityFlow)

	casinoFlow := businessflow.NewCasinoFlow(casinoRepo)

	reportFlow := businessflow.NewCasinoReportFlow(
		reportRepo,
		casinoRepo,
		activityFlow,
		emailService,
	)

	homepageFlow := businessflow.NewHomepageFlow(homepageRepo, activityFlow)

	// Initialize handlers
	casinoHandler := handlers.NewCasinoHandler(casinoFlow)
	reportHandler := handlers.NewReportHandler(reportFlow)
	reportAdminHandler := handlers.NewCasinoReportAdminHandler(reportFlow, permissionFlow)
	homepageHandler := handlers.NewHomepageHandler(homepageFlow, permissionFlow)
	monitoringHandler := handlers.NewMonitoringAdminHandler(permissionFlow, activityFlow, alertFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, permissionFlow)

	// Initialize router
	appRouter := router.NewFiberRouter(
		authMiddleware,
		casinoHandler,
		reportHandler,
		reportAdminHandler,
		homepageHandler,
		monitoringHandler,
		cfg.Security.AllowedOrigins,
	)

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}

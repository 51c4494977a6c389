// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/app/handlers"
	"github.com/casinoradar/casinoradar/app/middleware"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app               *fiber.App
	authMiddleware    *middleware.AuthMiddleware
	casinoHandler     handlers.CasinoHandlerInterface
	reportHandler     handlers.ReportHandlerInterface
	reportAdmin       handlers.CasinoReportAdminHandlerInterface
	homepageHandler   handlers.HomepageHandlerInterface
	monitoringHandler handlers.MonitoringAdminHandlerInterface
	allowedOrigins    []string
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	authMiddleware *middleware.AuthMiddleware,
	casinoHandler handlers.CasinoHandlerInterface,
	reportHandler handlers.ReportHandlerInterface,
	reportAdmin handlers.CasinoReportAdminHandlerInterface,
	homepageHandler handlers.HomepageHandlerInterface,
	monitoringHandler handlers.MonitoringAdminHandlerInterface,
	allowedOrigins []string,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "CasinoRadar API",
		ServerHeader: "CasinoRadar",
		ErrorHandler: errorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:               app,
		authMiddleware:    authMiddleware,
		casinoHandler:     casinoHandler,
		reportHandler:     reportHandler,
		reportAdmin:       reportAdmin,
		homepageHandler:   homepageHandler,
		monitoringHandler: monitoringHandler,
		allowedOrigins:    allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	api := r.app.Group("/api")

	// Health and metrics routes (no rate limiting)
	api.Get("/health", r.healthCheck)
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// General rate limiting for all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        utils.GlobalRateLimit,
		Expiration: utils.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))

	// Public casino listing with its own, stricter per-IP budget
	casinos := api.Group("/casinos")
	casinos.Use(limiter.New(limiter.Config{
		Max:        utils.ListingRateLimit,
		Expiration: utils.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))
	casinos.Get("/", r.casinoHandler.ListCasinos)
	casinos.Get("/:id", r.casinoHandler.GetCasino)

	// Public report submission and homepage read. Submissions carry optional
	// auth so a logged-in reporter is attributed without requiring a session.
	api.Post("/reports", r.authMiddleware.OptionalAuth(), r.reportHandler.SubmitReport)
	api.Get("/homepage", r.homepageHandler.GetHomepage)

	// Homepage writes require an admin session
	api.Post("/homepage", r.authMiddleware.AdminAuthenticate(), r.homepageHandler.UpsertHomepage)
	api.Put("/homepage", r.authMiddleware.AdminAuthenticate(), r.homepageHandler.UpsertHomepage)
	api.Delete("/homepage", r.authMiddleware.AdminAuthenticate(), r.homepageHandler.DeleteHomepage)

	// Admin routes
	admin := api.Group("/admin", r.authMiddleware.AdminAuthenticate())
	admin.Use(limiter.New(limiter.Config{
		Max:        utils.AdminWriteRateLimit,
		Expiration: utils.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))

	admin.Get("/me", r.monitoringHandler.GetAdminInfo)

	admin.Get("/casino-reports", r.reportAdmin.ListReports)
	admin.Post("/casino-reports", r.reportAdmin.CreateReport)
	admin.Put("/casino-reports/:id", r.reportAdmin.UpdateReport)
	admin.Delete("/casino-reports/:id", r.reportAdmin.DeleteReport)
	admin.Get("/casino-reports/export", r.reportAdmin.ExportReports)

	admin.Get("/monitoring/summary", r.monitoringHandler.GetActivitySummary)
	admin.Get("/monitoring/alerts", r.monitoringHandler.ListAlerts)
	admin.Post("/monitoring/alerts/:id/resolve", r.monitoringHandler.ResolveAlert)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error: dto.ErrorDetail{
			Code: "RATE_LIMIT_EXCEEDED",
		},
	})
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                31536000, // 1 year
		HSTSExcludeSubdomains:     false,
		ContentSecurityPolicy:     "default-src 'self'; img-src 'self' data: https:; connect-src 'self' https:; frame-ancestors 'none';",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// CORS middleware with production settings
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.allowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"X-Session-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"Retry-After",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			contentType := c.Get("Content-Type")
			return strings.Contains(contentType, "image/") ||
				strings.Contains(contentType, "video/")
		},
	}))

	// Prometheus metrics for every request
	r.app.Use(middleware.Metrics())

	// JSON request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/health" || c.Path() == "/metrics"
		},
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "casinoradar-api",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

package main

import (
	"bank_backend/internal/api"        // Custom package for API handlers
	"bank_backend/internal/config"     // Custom package for configuration
	"bank_backend/internal/db"         // Custom package for database access
	"bank_backend/internal/middleware" // Custom package for middleware
	"bank_backend/internal/service"    // Custom package for business services
	"bank_backend/internal/utils"      // Custom package for utilities
	"context"                          // context package is needed for Redis operations
	"time"                             // Startup timeouts

	"github.com/gin-gonic/gin"                       // Gin web framework
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics
	"github.com/redis/go-redis/v9"                   // Redis client
	"github.com/shopspring/decimal"                  // Exact decimal balances
	"github.com/sirupsen/logrus"                     // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	setupLogger(cfg)

	// Connect to the database
	conn, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client when configured; without it account listings are not cached
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = redisClient.Ping(ctx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, account cache disabled")
	}

	// Build services once and hand them to the handlers
	hasher := utils.NewHasher(cfg.BCryptCost)
	authService := service.NewAuthService(conn, hasher)
	accountService := service.NewAccountService(
		conn,
		hasher,
		utils.NewAccountNumberAllocator(cfg.AccountNumberMaxAttempts),
		redisClient,
		cfg.AccountCacheTTL,
	)

	// The web client reads balances as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	r.Use(
		gin.Recovery(),                                // Turn panics into 500s
		middleware.RequestIDMiddleware(),              // Tag each request
		middleware.LoggerMiddleware(),                 // Access log
		metrics.Middleware(),                          // Request metrics
		middleware.CORSMiddleware(cfg.AllowedOrigins), // Cross-origin access for the web client
	)

	// Operational routes
	r.GET("/healthz", api.HealthHandler(conn)) // Health endpoint
	r.GET("/metrics", metrics.Handler())       // Prometheus endpoint

	// Auth and account routes
	api.RegisterRoutes(r, authService, accountService)

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start

	// Start the server on port cfg.AppPort
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger configures the global logrus logger
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

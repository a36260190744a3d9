package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/trcsocial/shopify-csv-uploader/controllers"
	"github.com/trcsocial/shopify-csv-uploader/database"
	"github.com/trcsocial/shopify-csv-uploader/models"
	aws_pkg "github.com/trcsocial/shopify-csv-uploader/pkg/aws"
	"github.com/trcsocial/shopify-csv-uploader/providers"
	"github.com/trcsocial/shopify-csv-uploader/repository"
	"github.com/trcsocial/shopify-csv-uploader/routes"
	"github.com/trcsocial/shopify-csv-uploader/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	// Load .env if present (local development)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	strategy := cfg.Strategy()
	logger.Info("Lookup strategy selected", zap.String("strategy", string(strategy)))

	// Lookup cache (optional)
	var cache *services.ReleaseCache
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Warn("Invalid REDIS_URL, lookup cache disabled", zap.Error(err))
	} else if redisClient != nil {
		cache = services.NewReleaseCache(redisClient)
		logger.Info("Lookup cache enabled")
	}

	// Run history (optional)
	var runRepo repository.RunRepository
	if cfg.PostgresHost != "" {
		db, dbErr := database.ConnectPostgres(cfg.PostgresConfig(), logger, &models.ExportRun{})
		if dbErr != nil {
			logger.Warn("Run history database unavailable, history disabled", zap.Error(dbErr))
		} else {
			runRepo = repository.NewGormRunRepository(db)
			defer database.Close(db) //nolint:errcheck
		}
	}

	// Bundle archive (optional)
	var archiver services.BundleArchiver
	if cfg.ExportS3Bucket != "" {
		awsCfg, awsErr := aws_pkg.LoadAWSConfig(context.Background())
		if awsErr != nil {
			logger.Warn("AWS config unavailable, bundle archive disabled", zap.Error(awsErr))
		} else {
			uploader := aws_pkg.NewS3Uploader(awsCfg)
			archiver = services.NewS3BundleArchiver(uploader, cfg.ExportS3Bucket, cfg.ExportS3Prefix)
			logger.Info("Bundle archive enabled", zap.String("bucket", cfg.ExportS3Bucket))
		}
	}

	var live providers.CatalogProvider
	if strategy == models.StrategyLive {
		live = providers.NewJunoProvider(providers.JunoConfig{
			Endpoint: cfg.JunoAPIBase,
			APIKey:   cfg.JunoAPIKey,
			Timeout:  cfg.JunoTimeout,
		})
	}
	lookup := services.NewReleaseLookup(strategy, live, providers.NewFallbackProvider(), cache)
	exportService := services.NewExportService(lookup, runRepo, archiver, cfg.LookupConcurrency, logger)
	exportController := controllers.NewExportController(exportService, controllers.NewRequestValidator())

	r := gin.New()
	r.Use(gin.Recovery())

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})

	// 120-second request timeout; a full sheet of live lookups can take a while
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "shopify-csv-uploader"})
	})

	routes.RegisterExportRoutes(r, exportController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Shopify CSV uploader started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}

	logger.Info("Server exited cleanly")
}

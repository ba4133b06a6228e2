package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"news-pulse/config"
	"news-pulse/models"
	"news-pulse/providers/newsapi"
	"news-pulse/services"
	"news-pulse/storage"
)

var (
	articlesLoadedCounter prometheus.Counter
	lastRunStatusGauge    prometheus.Gauge
)

func init() {
	articlesLoadedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_loaded_total",
			Help: "Total number of articles loaded into the database.",
		},
	)
	lastRunStatusGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_last_run_status",
			Help: "Status of the last pipeline run (0=FAILED, 1=WARNING, 2=SUCCESS).",
		},
	)
	prometheus.MustRegister(articlesLoadedCounter, lastRunStatusGauge)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup database (local analytical file, created on first run)
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Fatal("Failed to create database directory", zap.Error(err))
		}
	}
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	logging.Info("Database opened", zap.String("path", cfg.DBPath))

	// Setup artifact store with optional S3 archival
	artifacts := storage.NewArtifactStore(cfg.DataDir, logging)
	if cfg.S3Enabled() {
		s3Client, err := storage.NewS3Client(cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		artifacts.S3Client = s3Client
		artifacts.Bucket = cfg.S3Bucket
		logging.Info("Artifact archival enabled", zap.String("bucket", cfg.S3Bucket))
	}

	// Wire the pipeline
	fetcher := newsapi.NewFetcher(cfg, logging)
	runner := services.NewRunner(
		fetcher,
		services.NewValidator(logging),
		services.NewSentimentService(logging),
		services.NewDBLoader(db, logging),
		artifacts,
		logging,
	)

	status := executeRun(context.Background(), runner, artifacts, logging)

	if !cfg.Serve {
		if code := status.ExitCode(); code != 0 {
			logging.Sync()
			os.Exit(code)
		}
		return
	}

	// Setup operator HTTP surface
	router := gin.Default()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	setupHealthRoutes(router)
	setupStatsRoutes(router, services.NewStatsService(db), logging)
	setupRunRoutes(router, runner, artifacts, logging)

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// executeRun runs the pipeline once and updates the run metrics.
func executeRun(ctx context.Context, runner *services.Runner, artifacts *storage.ArtifactStore, log *zap.Logger) *models.RunStatus {
	status, _ := runner.Run(ctx)

	switch status.Overall {
	case models.RunSuccess:
		lastRunStatusGauge.Set(2)
		articlesLoadedCounter.Add(float64(status.RecordsLoaded))
	case models.RunWarning:
		lastRunStatusGauge.Set(1)
	default:
		lastRunStatusGauge.Set(0)
	}

	if status.Overall != models.RunFailed {
		if err := artifacts.Archive(ctx); err != nil {
			log.Warn("Artifact archival failed", zap.Error(err))
		}
	}

	return status
}

func setupHealthRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupStatsRoutes exposes read-only aggregates over the news_sentiment table.
func setupStatsRoutes(router *gin.Engine, stats *services.StatsService, log *zap.Logger) {
	router.GET("/stats", func(c *gin.Context) {
		report, err := stats.Query(c.Request.Context())
		if err != nil {
			log.Error("Stats query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, report)
	})
}

// setupRunRoutes allows triggering an on-demand pipeline run. Only one run
// may be in flight at a time.
func setupRunRoutes(router *gin.Engine, runner *services.Runner, artifacts *storage.ArtifactStore, log *zap.Logger) {
	var running int32

	router.POST("/run", func(c *gin.Context) {
		if !atomic.CompareAndSwapInt32(&running, 0, 1) {
			c.JSON(http.StatusConflict, gin.H{"error": "a pipeline run is already in progress"})
			return
		}

		go func() {
			defer atomic.StoreInt32(&running, 0)
			status := executeRun(context.Background(), runner, artifacts, log)
			log.Info("Async pipeline run completed", zap.String("status", status.Overall))
		}()

		c.JSON(http.StatusAccepted, gin.H{"message": "Pipeline run triggered."})
	})
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/user/log-extractor/internal/adapter/logfile"
	"github.com/user/log-extractor/internal/adapter/metrics"
	filerepo "github.com/user/log-extractor/internal/adapter/repository/file"
	"github.com/user/log-extractor/internal/adapter/repository/postgres"
	redisrepo "github.com/user/log-extractor/internal/adapter/repository/redis"
	"github.com/user/log-extractor/internal/domain"
	"github.com/user/log-extractor/internal/pkg/config"
	"github.com/user/log-extractor/internal/pkg/logger"
	"github.com/user/log-extractor/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "" {
		fmt.Fprintf(os.Stderr, "usage: %s <YYYY-MM-DD>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	dateKey := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewExtractMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Optional Metrics Server ---
	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

		go func() {
			logger.Info("starting metrics server", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer metricsServer.Close()
	}

	// --- Initialize Index Store ---
	var store domain.IndexStore
	switch cfg.CacheBackend {
	case "redis":
		redisOpts, err := redis.ParseURL(cfg.RedisAddr)
		if err != nil {
			logger.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()
		store = redisrepo.NewIndexStore(redisClient, cfg.RedisKey, logger)
	default:
		store = filerepo.NewIndexStore(cfg.IndexPath, logger)
	}

	// --- Optional Query Audit Sink ---
	var audit domain.AuditRepository
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		auditRepo := postgres.NewAuditRepository(db, logger)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			logger.Warn("audit sink unavailable, continuing without it", "error", err)
		} else {
			audit = auditRepo
		}
	}

	// --- Initialize Use Cases ---
	source := logfile.NewSource(cfg.LogPath, cfg.StrictOrder, logger)
	indexUseCase := usecase.NewIndexUseCase(source, store, logger, m)
	extractUseCase := usecase.NewExtractUseCase(indexUseCase, source, audit, cfg.OutputDir, logger, m)

	path, count, err := extractUseCase.ExtractToFile(ctx, dateKey)
	switch {
	case errors.Is(err, domain.ErrNoEntries):
		logger.Info("no log entries for date", "date", dateKey)
		fmt.Printf("no logs for %s\n", dateKey)
	case err != nil:
		logger.Error("extraction failed", "error", err, "date", dateKey)
		os.Exit(1)
	default:
		fmt.Printf("wrote %d lines to %s\n", count, path)
	}
}

package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oasisrealty/leadcrm/internal/api/router"
	"github.com/oasisrealty/leadcrm/internal/auth"
	appconfig "github.com/oasisrealty/leadcrm/internal/config"
	"github.com/oasisrealty/leadcrm/internal/leads"
	"github.com/oasisrealty/leadcrm/internal/notes"
	"github.com/oasisrealty/leadcrm/internal/notifications"
	"github.com/oasisrealty/leadcrm/internal/observability/metrics"
	"github.com/oasisrealty/leadcrm/internal/worker"
	"github.com/oasisrealty/leadcrm/pkg/logging"
)

func main() {
	// Load .env if present (local development)
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadcrm API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	loc := cfg.Location()

	// Persistence: Postgres when configured, in-memory otherwise.
	var (
		leadsRepo  leads.Repository
		notifStore notifications.Store
		notesStore notes.Store
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		leadsRepo = leads.NewPostgresRepository(pool)
		notifStore = notifications.NewPostgresStore(pool)
		notesStore = notes.NewPostgresStore(pool)
		logger.Info("using postgres persistence")
	} else {
		leadsRepo = leads.NewInMemoryRepository()
		notifStore = notifications.NewInMemoryStore()
		notesStore = notes.NewInMemoryStore()
		logger.Warn("DATABASE_URL not set, using in-memory persistence")
	}

	// Redis marker for same-day notification dedup (optional).
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		defer func() { _ = redisClient.Close() }()
	}
	marker := notifications.NewDailyMarker(redisClient, logger)

	sweepMetrics := metrics.NewSweepMetrics(nil)
	sweepService := notifications.NewService(leadsRepo, notifStore, marker, sweepMetrics, loc, logger).
		WithNewContactSLA(cfg.NewContactSLA)

	followUpDelay := time.Duration(cfg.DefaultFollowUpDays) * 24 * time.Hour

	// Handlers
	leadsHandler := leads.NewHandler(leadsRepo, loc, logger).
		WithScheduling(cfg.NewContactSLA, followUpDelay)
	notesHandler := notes.NewHandler(notesStore, logger)
	notifHandler := notifications.NewHandler(notifStore, sweepService, logger)
	authHandler := auth.NewHandler(cfg.AdminJWTSecret, cfg.OperatorPassword, logger).
		WithTokenTTL(cfg.SessionTTL)

	r := router.New(&router.Config{
		Logger:               logger,
		LeadsHandler:         leadsHandler,
		NotesHandler:         notesHandler,
		NotificationsHandler: notifHandler,
		AuthHandler:          authHandler,
		AuthSecret:           cfg.AdminJWTSecret,
		MetricsHandler:       promhttp.Handler(),
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background sweeper
	workerCtx, stopWorker := context.WithCancel(context.Background())
	sweeper := worker.NewSweeper(sweepService, logger).WithInterval(cfg.SweepInterval)
	go sweeper.Start(workerCtx)

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

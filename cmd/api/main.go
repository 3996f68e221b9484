// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point of the Shopfront session gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the session store (memory, or Redis).
//  4. Open the profile source (REST backend, or PostgreSQL plus migrations).
//  5. Open the audit stream (Kafka, or the log).
//  6. Wire the session provider and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/shopfront/internal/api"
	"github.com/taibuivan/shopfront/internal/backend"
	"github.com/taibuivan/shopfront/internal/navigation"
	"github.com/taibuivan/shopfront/internal/platform/audit"
	"github.com/taibuivan/shopfront/internal/platform/config"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/migration"
	pgstore "github.com/taibuivan/shopfront/internal/platform/postgres"
	redisstore "github.com/taibuivan/shopfront/internal/platform/redis"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/users/profile"
	"github.com/taibuivan/shopfront/internal/users/session"
)

// pageRetryInterval is how soon the loading placeholder asks the browser to retry.
const pageRetryInterval = time.Second

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_store", cfg.SessionStore),
		slog.String("profile_source", cfg.ProfileSource),
	)

	// Background work (sweeper, rate limiter cleanup) stops with this context.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	var health api.HealthDependencies

	// ── 3. Session Store ──────────────────────────────────────────────────
	var store session.Store

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }

	default:
		memory := session.NewMemoryStore(cfg.SessionTTL)
		memory.StartSweeper(rootCtx)
		store = memory
	}

	// ── 4. Collaborators ──────────────────────────────────────────────────
	decoder, err := sec.NewTokenDecoder(cfg.JWTPubKeyPath)
	must(log, err, "initialize token decoder")

	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout)

	var profiles session.ProfileFetcher = client

	if cfg.ProfileSource == config.ProfileSourcePostgres {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{
			StatementTimeout: cfg.ProfileFetchTimeout,
		}, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		profiles = profile.NewPostgresRepository(pool, decoder)
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
	}

	// ── 5. Audit Stream ───────────────────────────────────────────────────
	var publisher audit.Publisher = audit.NewLogPublisher(log)

	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
		must(log, err, "connect to kafka")
		defer func() {
			if cerr := kafka.Close(); cerr != nil {
				log.Error("kafka_close_failed", slog.Any("error", cerr))
			}
		}()
		publisher = kafka
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	provider := session.NewProvider(store, client, profiles, decoder, publisher, log,
		session.WithProfilePolicy(cfg.ProfileFetchTimeout, cfg.ProfileMaxAttempts),
	)

	liveness, readiness := api.NewHealthHandlers(health, log)

	renderer := navigation.NewRenderer(constants.AppName, "/assets", pageRetryInterval)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Session:    session.NewHandler(provider),
		Navigation: navigation.NewHandler(navigation.DefaultTable(), provider, renderer),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
	}

	// Pending profile fetches still write to the store and the audit stream.
	provider.Wait()

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

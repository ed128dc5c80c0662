// cmd/intake-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"intake-service/internal/common/aws"
	"intake-service/internal/common/config"
	"intake-service/internal/common/database"
	"intake-service/internal/common/logger"
	"intake-service/internal/common/observability"
	"intake-service/internal/form/navigation"
	"intake-service/internal/form/session"
	"intake-service/internal/form/submission"
	"intake-service/internal/form/suggestion"
	"intake-service/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake service",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Redis (session store) ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis initialization")
	if err != nil {
		zapLog.Fatal("Redis unavailable", zap.Error(err))
	}
	defer redisClient.Close()

	// --- Postgres (submissions) ---
	var pgClient *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pgClient, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pgClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Postgres initialization")
	if err != nil {
		zapLog.Fatal("Postgres unavailable", zap.Error(err))
	}
	defer pgClient.Close()

	// --- Elasticsearch (back-office search, optional) ---
	var indexer *submission.Indexer
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch initialization")
		if err != nil {
			// search is an enrichment, not a dependency
			zapLog.Warn("Elasticsearch unavailable, continuing without indexing", zap.Error(err))
		} else {
			indexer = submission.NewIndexer(esClient, cfg.Database.Elasticsearch.Index, log)
		}
	}

	// --- SES (confirmation email, optional) ---
	var notifier *submission.Notifier
	if cfg.Notifications.AWS.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("SES unavailable, continuing without confirmation email", zap.Error(err))
		} else {
			notifier = submission.NewNotifier(sesClient, cfg.Notifications.AWS.SES.FromEmail, log)
		}
	}

	// --- Wire the form engine ---
	store := session.NewStore(redisClient, cfg.Session, log)
	debouncer := session.NewDebouncer(time.Duration(cfg.Session.DebounceWindow) * time.Millisecond)

	submitService := submission.NewService(
		cfg.Submission,
		submission.NewRepository(pgClient.GetDB(), log),
		indexer,
		notifier,
		log,
	)
	controller := navigation.NewController(store, submitService, log)
	aiClient := suggestion.NewOpenAIClient(cfg.AI, log)
	suggestions := suggestion.NewService(store, aiClient, log)

	srv := server.New(server.Deps{
		Config:      cfg,
		Log:         log,
		Store:       store,
		Debouncer:   debouncer,
		Controller:  controller,
		Suggestions: suggestions,
		Redis:       redisClient,
		Obs:         obs,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP shutdown error", zap.Error(err))
	}

	// every settled draft edit lands before the process exits
	debouncer.FlushAll()

	zapLog.Info("Shutdown complete")
}

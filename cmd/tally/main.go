package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/tally/internal/bot"
	"github.com/UnknownOlympus/tally/internal/config"
	"github.com/UnknownOlympus/tally/internal/kvstore"
	"github.com/UnknownOlympus/tally/internal/metrics"
	"github.com/UnknownOlympus/tally/internal/repository"
	"github.com/UnknownOlympus/tally/internal/server"
	"github.com/UnknownOlympus/tally/internal/service"
	"github.com/UnknownOlympus/tally/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Cancelled on interrupt for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Driver, err)
	}
	defer closeStore()
	logger.InfoContext(ctx, "Record store ready", "driver", cfg.Driver)

	svc := service.New(store, logger,
		service.WithLocation(cfg.Location),
		service.WithMetrics(appMetrics),
	)

	tallyBot, err := bot.NewBot(logger, svc, appMetrics, bot.Options{
		Token:         cfg.Telegram.Token,
		PollerTimeout: cfg.Telegram.PollerTimeout,
		OwnerID:       cfg.Telegram.OwnerID,
		Currency:      cfg.Currency,
		Location:      cfg.Location,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	go tallyBot.Start()
	go server.StartMonitoringServer(ctx, logger, reg, store, cfg.Monitoring)

	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	tallyBot.Stop()
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// openStore connects the configured record store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := repository.NewDatabase(
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, nil, err
		}
		if err = repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewRepository(pool), pool.Close, nil

	case config.DriverRedis:
		const redisTimeout = 5 * time.Second
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: redisTimeout,
		})
		store := kvstore.New(client, cfg.Redis.Prefix)

		pingCtx, cancel := context.WithTimeout(ctx, redisTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store, func() { _ = client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn, ReplaceAttr: dropTime}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError, ReplaceAttr: dropTime}))
		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

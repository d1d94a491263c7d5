package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/visitrack/internal/config"
	"github.com/dmitrymomot/visitrack/internal/geo"
	"github.com/dmitrymomot/visitrack/internal/handler"
	"github.com/dmitrymomot/visitrack/internal/notify"
	"github.com/dmitrymomot/visitrack/internal/visitor"
	"github.com/dmitrymomot/visitrack/pkg/httpserver"
	"github.com/dmitrymomot/visitrack/pkg/logger"
	"github.com/dmitrymomot/visitrack/pkg/webhook"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("service stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "visitrack"),
		logger.WithLevel(parseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
	)
	logger.SetAsDefault(log)

	store, cleanup, err := newStore(ctx, cfg.Visitor, log)
	if err != nil {
		return err
	}
	defer cleanup()

	tracker := visitor.NewTracker(store, cfg.Visitor.Window)
	resolver := geo.NewResolverFromConfig(cfg.Geo, geo.WithLogger(log))

	sinks, sinkCleanup, err := newSinks(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sinkCleanup()

	fanout := notify.NewFanout(sinks, notify.WithFanoutLogger(log))
	defer fanout.Wait()

	h := handler.New(tracker, resolver, fanout, handler.WithLogger(log))
	router := handler.Router(h, log)

	log.Info("starting",
		logger.Component("main"),
		slog.String("addr", cfg.Server.Addr),
		slog.Duration("window", cfg.Visitor.Window),
		slog.Int("sinks", fanout.Sinks()))

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// newStore picks the visit store: redis when a URL is configured,
// otherwise the bounded in-memory store.
func newStore(ctx context.Context, cfg visitor.Config, log *slog.Logger) (visitor.Store, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("using in-memory visit store",
			logger.Component("main"),
			slog.Int("capacity", cfg.Capacity))
		return visitor.NewMemoryStore(cfg.Capacity, cfg.Retention()), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	log.Info("using redis visit store", logger.Component("main"))
	store := visitor.NewRedisStore(client, visitor.WithRetention(cfg.Retention()))
	return store, func() { _ = client.Close() }, nil
}

// newSinks assembles the enabled notification sinks.
func newSinks(ctx context.Context, cfg config.Config, log *slog.Logger) ([]notify.Sink, func(), error) {
	var sinks []notify.Sink
	cleanup := func() {}
	sender := webhook.NewSender()

	if cfg.Telegram.Enabled {
		sinks = append(sinks, notify.NewTelegramSink(cfg.Telegram, sender))
	}
	if cfg.Discord.Enabled {
		sinks = append(sinks, notify.NewDiscordSink(cfg.Discord, sender))
	}
	if cfg.Email.Enabled {
		sinks = append(sinks, notify.NewEmailSink(cfg.Email))
	}
	if cfg.Datastore.Enabled {
		sinks = append(sinks, notify.NewDatastoreSink(cfg.Datastore, sender))
	}
	if cfg.Postgres.Enabled {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		pg := notify.NewPostgresSink(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		sinks = append(sinks, pg)
		cleanup = pool.Close
	}

	for _, s := range sinks {
		log.Info("sink enabled", logger.Component("main"), logger.Sink(s.Name()))
	}
	return sinks, cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

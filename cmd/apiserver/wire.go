package main

import (
	"context"
	"fmt"

	"github.com/turtacn/LexConnect/internal/application/account"
	"github.com/turtacn/LexConnect/internal/application/booking"
	"github.com/turtacn/LexConnect/internal/application/consultation"
	"github.com/turtacn/LexConnect/internal/application/directory"
	"github.com/turtacn/LexConnect/internal/config"
	bookingdomain "github.com/turtacn/LexConnect/internal/domain/booking"
	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/internal/infrastructure/ai"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres"
	pgrepo "github.com/turtacn/LexConnect/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/redis"
	"github.com/turtacn/LexConnect/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LexConnect/internal/infrastructure/storage/jsonfile"
	"github.com/turtacn/LexConnect/internal/infrastructure/storage/minio"
	"github.com/turtacn/LexConnect/internal/intelligence/classifier"
	httpserver "github.com/turtacn/LexConnect/internal/interfaces/http"
	"github.com/turtacn/LexConnect/internal/interfaces/http/handlers"
	"github.com/turtacn/LexConnect/internal/interfaces/http/middleware"
)

const eventSource = "lexconnect-apiserver"

// app holds the wired server and everything that must be released on exit.
type app struct {
	server  *httpserver.Server
	closers []func() error
	logger  logging.Logger
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", logging.Err(err))
		}
	}
}

type repositories struct {
	lawyers  lawyer.Repository
	users    user.Repository
	bookings bookingdomain.Repository
}

// build constructs every component selected by cfg.  On error the
// components built so far are already closed.
func build(ctx context.Context, cfg *config.Config, logger logging.Logger) (_ *app, err error) {
	a := &app{logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	// ── Knowledge base ─────────────────────────────────────────────────────
	kb, err := legal.Resolve(cfg.KnowledgeBase.Path)
	if err != nil {
		return nil, err
	}
	engine := classifier.New(kb)
	logger.Info("knowledge base loaded",
		logging.String("version", kb.Version),
		logging.Int("sub_specialties", kb.SubSpecialtyCount()))

	// ── Metrics ────────────────────────────────────────────────────────────
	var (
		collector metrics.MetricsCollector
		m         = metrics.NewNopMetrics()
	)
	if cfg.Metrics.Enabled {
		collector, err = metrics.NewMetricsCollector(metrics.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, err
		}
		m = metrics.NewAppMetrics(collector)
	}

	var checks []handlers.HealthChecker

	// ── Storage ────────────────────────────────────────────────────────────
	repos, check, err := openStorage(ctx, cfg, logger, a)
	if err != nil {
		return nil, err
	}
	checks = append(checks, check)

	// ── Redis ──────────────────────────────────────────────────────────────
	var (
		cache  redis.Cache
		locker booking.Locker
	)
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		cache = redis.NewRedisCache(client, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
		locker = redis.NewLocker(client, logger)
		checks = append(checks, handlers.CheckFunc{Component: "redis", Fn: client.Ping})
	}

	// ── Kafka ──────────────────────────────────────────────────────────────
	var events kafka.EventPublisher = kafka.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka, logger)
		if err != nil {
			return nil, err
		}
		bus := kafka.NewEventBus(producer, eventSource, logger)
		a.closers = append(a.closers, bus.Close)
		events = bus
	}

	// ── MinIO ──────────────────────────────────────────────────────────────
	var receipts minio.ReceiptStore
	if cfg.MinIO.Enabled {
		client, err := minio.NewClient(ctx, cfg.MinIO, logger)
		if err != nil {
			return nil, err
		}
		receipts = minio.NewReceiptStore(client, logger)
		checks = append(checks, handlers.CheckFunc{Component: "minio", Fn: client.Ping})
	}

	// ── AI ─────────────────────────────────────────────────────────────────
	var aiClassifier consultation.AIClassifier
	if cfg.AI.Enabled {
		backend, err := ai.NewBackend(ctx, cfg.AI)
		if err != nil {
			return nil, err
		}
		aiClassifier = ai.NewClassifier(backend, engine, cfg.AI.Breaker, cfg.AI.Timeout, logger, ai.WithMetrics(m))
		logger.Info("AI classifier enabled", logging.String("provider", backend.Name()))
	}

	// ── Services ───────────────────────────────────────────────────────────
	consult, err := consultation.NewService(consultation.Deps{
		Engine:   engine,
		Lawyers:  repos.lawyers,
		AI:       aiClassifier,
		Cache:    cache,
		CacheTTL: cfg.Redis.DefaultTTL,
		Events:   events,
		Metrics:  m,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	bookings, err := booking.NewService(booking.Deps{
		Bookings:      repos.bookings,
		Users:         repos.users,
		Lawyers:       repos.lawyers,
		Receipts:      receipts,
		Locker:        locker,
		Events:        events,
		Metrics:       m,
		Logger:        logger,
		Currency:      cfg.Payment.Currency,
		DeclineSuffix: cfg.Payment.DeclineSuffix,
	})
	if err != nil {
		return nil, err
	}

	// ── HTTP ───────────────────────────────────────────────────────────────
	cors := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.Server.CORSAllowedOrigins
	}
	logCfg := middleware.DefaultLoggingConfig()
	rc := httpserver.RouterConfig{
		CaseHandler:      handlers.NewCaseHandler(consult, logger),
		LawyerHandler:    handlers.NewLawyerHandler(directory.NewService(repos.lawyers, kb, logger), logger),
		AuthHandler:      handlers.NewAuthHandler(account.NewService(repos.users, logger), logger),
		BookingHandler:   handlers.NewBookingHandler(bookings, logger),
		HealthHandler:    handlers.NewHealthHandler(version, m, checks...),
		CORS:             &cors,
		Logging:          &logCfg,
		Logger:           logger,
		Metrics:          m,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.BurstSize = cfg.RateLimit.Burst
		rc.RateLimit = &rl
	}

	a.server = httpserver.NewServer(cfg.Server, httpserver.NewRouter(rc), logger)
	return a, nil
}

func openStorage(ctx context.Context, cfg *config.Config, logger logging.Logger, a *app) (repositories, handlers.HealthChecker, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database)); err != nil {
				return repositories{}, nil, err
			}
		}
		conn, err := postgres.NewConnection(cfg.Database, logger)
		if err != nil {
			return repositories{}, nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return repositories{
			lawyers:  pgrepo.NewPostgresLawyerRepo(conn, logger),
			users:    pgrepo.NewPostgresUserRepo(conn, logger),
			bookings: pgrepo.NewPostgresBookingRepo(conn, logger),
		}, handlers.CheckFunc{Component: "postgres", Fn: conn.Ping}, nil

	case config.StorageJSON:
		store, err := jsonfile.Open(cfg.Storage.JSONPath, jsonfile.Options{Seed: cfg.Storage.SeedRoster, Log: logger})
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.Storage.Watch {
			if err := store.Watch(ctx); err != nil {
				return repositories{}, nil, err
			}
		}
		return repositories{
			lawyers:  store.Lawyers(),
			users:    store.Users(),
			bookings: store.Bookings(),
		}, handlers.CheckFunc{Component: "store", Fn: store.Ping}, nil

	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

//Personal.AI order the ending

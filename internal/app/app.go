package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/auth"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/config"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/event"
	handler "github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/handler/http"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository/postgres"
	redisrepo "github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository/redis"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/session"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/migrations"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/health"
	pkgkafka "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/kafka"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/tracing"
)

const (
	serviceName = "storefront"

	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second

	recomputeGroupID    = "storefront-rating-recompute"
	recomputeRetries    = 3
	recomputeRetryWait  = 2 * time.Second
	idempotencyTTL      = 24 * time.Hour
	idempotencyKeySpace = "storefront:events:"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	dlq            *pkgkafka.DLQProducer
	recompute      *pkgkafka.Consumer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	// Initialize PostgreSQL connection pool.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		a.closeAll()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, serviceName)
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold, logger)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		a.closeAll()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Initialize Redis client.
	rdb, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		a.closeAll()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	logger.Info("connected to Redis", slog.String("addr", cfg.Redis().Addr()))

	// Events go to Kafka when enabled and are dropped otherwise.
	var publisher pkgkafka.Publisher = pkgkafka.NopPublisher{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = a.producer
		if err := a.producer.Ping(ctx); err != nil {
			logger.Warn("kafka unreachable, continuing in degraded mode", slog.String("error", err.Error()))
		} else {
			logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
		}
	}

	// Build the dependency graph.
	products := postgres.NewProductRepository(pool)
	carts := postgres.NewCartRepository(pool)
	reviews := postgres.NewReviewRepository(pool)
	users := postgres.NewUserRepository(pool)
	wishlist := postgres.NewWishlistRepository(pool)
	dashboard := postgres.NewDashboardRepository(pool)
	recentStore := redisrepo.NewRecentlyViewedStore(rdb, cfg.RecentlyViewedTTL, logger)
	denylist := redisrepo.NewTokenDenylist(rdb)

	eventProducer := event.NewProducer(publisher, logger)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	catalog := service.NewCatalogService(products, logger)
	reviewService := service.NewReviewService(reviews, products, eventProducer, logger)

	svc := handler.Services{
		Catalog:        catalog,
		Resolver:       service.NewResolver(products, cfg.CatalogResolveAnyFallback, logger),
		Reviews:        reviewService,
		RecentlyViewed: service.NewRecentlyViewedService(recentStore, logger),
		Auth:           service.NewAuthService(users, denylist, jwtManager, eventProducer, logger),
		Account:        service.NewAccountService(users, wishlist, logger),
		Admin:          service.NewAdminService(dashboard, users, products, logger),
		Sessions:       session.NewFactory(carts, cfg.CartMaxItemQuantity, logger),
	}

	// Failed rating recomputes are retried from Kafka.
	if cfg.KafkaEnabled {
		a.dlq = pkgkafka.NewDLQProducer(cfg.KafkaBrokers)
		recomputer := event.NewRatingRecomputeConsumer(reviewService, logger)
		idempotency := pkgkafka.NewRedisIdempotencyStore(rdb, idempotencyKeySpace, idempotencyTTL)
		a.recompute = pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers:    cfg.KafkaBrokers,
			GroupID:    recomputeGroupID,
			Topic:      event.TopicRatingRecomputeRequested,
			MaxRetries: recomputeRetries,
			RetryWait:  recomputeRetryWait,
		}, pkgkafka.IdempotentHandler(idempotency, recomputer.Handle, logger), a.dlq, logger)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if a.producer != nil {
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
	}

	// HTTP router.
	router := handler.NewRouter(
		svc,
		auth.NewTokenValidator(jwtManager, denylist),
		healthHandler,
		handler.RouterConfig{
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			PprofAllowedCIDRs:  cfg.PprofAllowedCIDRs,
			VisitorCookieTTL:   cfg.RecentlyViewedTTL,
			SecureCookies:      cfg.IsProduction(),
			AuthRateLimitRPS:   cfg.AuthRateLimitRPS,
			AuthRateLimitBurst: cfg.AuthRateLimitBurst,
		},
		logger,
	)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and the recompute consumer, then blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if a.recompute != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.recompute.Start(consumerCtx); err != nil {
				errCh <- fmt.Errorf("rating recompute consumer: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	stopConsumer()
	wg.Wait()

	if err := a.Shutdown(); err != nil {
		return err
	}
	return runErr
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		}
	}
	a.closeAll()

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}

// closeAll releases the backing connections that were opened.
func (a *App) closeAll() {
	if a.recompute != nil {
		if err := a.recompute.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.dlq != nil {
		if err := a.dlq.Close(); err != nil {
			a.logger.Error("kafka dlq close error", slog.String("error", err.Error()))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

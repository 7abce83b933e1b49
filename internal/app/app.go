package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/eventdocs/internal/config"
	"github.com/kirinyoku/eventdocs/internal/document"
	"github.com/kirinyoku/eventdocs/internal/document/pdf"
	"github.com/kirinyoku/eventdocs/internal/imagefetch"
	"github.com/kirinyoku/eventdocs/internal/postgres"
	"github.com/kirinyoku/eventdocs/internal/pricing"
	"github.com/kirinyoku/eventdocs/internal/redis"
	postgresrepo "github.com/kirinyoku/eventdocs/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/eventdocs/internal/repository/redis"
	"github.com/kirinyoku/eventdocs/internal/service"
	"github.com/kirinyoku/eventdocs/internal/service/admin"
	"github.com/kirinyoku/eventdocs/internal/service/documents"
	httpgin "github.com/kirinyoku/eventdocs/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *goredis.Client
	pubsub     *redisrepo.EventsPubSub
	services   *service.Services
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	// Initialize dependencies
	pgxPool, err := postgres.New(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN(),
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewEventsPubSub(rdb)

	var limiter httpgin.Limiter
	if cfg.RateLimit.Documents > 0 {
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "documents", cfg.RateLimit.Documents, cfg.RateLimit.Window)
	}

	// Pricing
	calc, money, err := newPricing(cfg.Pricing)
	if err != nil {
		pgxPool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to initialize pricing: %w", err)
	}

	// Documents
	images := imagefetch.NewCachedProvider(
		imagefetch.NewHTTPProvider(imagefetch.Config{
			Timeout:  cfg.Documents.ImageTimeout,
			MaxBytes: cfg.Documents.ImageMaxBytes,
		}),
		cache,
		cfg.Documents.ImageCacheTTL,
	)

	var measurer document.Measurer = document.ApproxMeasurer{}
	if cfg.Documents.UseFontMetrics {
		measurer = pdf.NewMeasurer()
	}

	composer := document.New(measurer, images, logger, document.Config{
		ImageTimeout: cfg.Documents.ImageTimeout,
	})

	// Initialize services
	services := service.NewServices(
		documents.New(
			documents.NewStoreSource(store, cache, cfg.Documents.EventCacheTTL),
			composer,
			pdf.NewRenderer(logger),
			logger,
		),
		admin.New(cache, pubsub, logger),
		calc,
		money,
	)

	// Initialize Gin router
	router := httpgin.NewRouter(services, httpgin.Options{
		Limiter:   limiter,
		JWTSecret: cfg.Auth.JWTSecret,
	}, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		pool:     pgxPool,
		rdb:      rdb,
		pubsub:   pubsub,
		services: services,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func newPricing(cfg config.PricingConfig) (*pricing.Calculator, *pricing.Formatter, error) {
	cat := pricing.DefaultCatalog()
	if cfg.CatalogPath != "" {
		var err error
		cat, err = pricing.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
	} else if cfg.Currency != "" {
		cat.Currency = cfg.Currency
	}

	calc, err := pricing.NewCalculator(cat)
	if err != nil {
		return nil, nil, err
	}

	money, err := pricing.NewFormatter(calc.Currency(), cfg.Locale)
	if err != nil {
		return nil, nil, err
	}

	return calc, money, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer a.pool.Close()
	defer a.rdb.Close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Drop cached event records changed through any instance
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, a.services.Admin.HandleEventChanged)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("events subscriber: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

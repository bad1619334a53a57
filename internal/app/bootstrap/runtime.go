package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"gorm.io/gorm"

	cacheadapter "github.com/arceusss10/sports-news-dashboard/internal/adapters/cache"
	eventadapter "github.com/arceusss10/sports-news-dashboard/internal/adapters/events"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/export"
	grpcadapter "github.com/arceusss10/sports-news-dashboard/internal/adapters/grpc"
	httpadapter "github.com/arceusss10/sports-news-dashboard/internal/adapters/http"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/news"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/postgres"
	"github.com/arceusss10/sports-news-dashboard/internal/adapters/security"
	"github.com/arceusss10/sports-news-dashboard/internal/application"
	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	outbox     *eventadapter.OutboxWorker
	rates      *application.RateStore
	// inProcessOutbox is set when rates live in memory; a separate worker
	// process could never see those outbox rows.
	inProcessOutbox bool
	cleanupFn       func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, logCloser := newLogger(cfg)
	logger.Info("bootstrapping sports news dashboard",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"news_source", cfg.NewsSource,
	)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = logCloser.Close()
	}

	repos, db, err := openRepositories(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, err
	}
	if db != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			closers = append(closers, func() { _ = sqlDB.Close() })
		}
	} else {
		logger.Warn("DB_URL not set; rates are kept in process memory")
	}

	var rateCache ports.RateCache
	if cfg.RedisURL != "" {
		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, err
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			cleanup()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		rateCache = cacheadapter.NewRedisRateCache(redisClient, cfg.RedisTTL)
	}

	var publisher ports.EventPublisher = eventadapter.NewLoggingPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			contracts.EventRatesUpdated: cfg.KafkaTopic,
		})
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("init kafka publisher: %w", err)
		}
		closers = append(closers, func() { _ = kafkaPublisher.Close() })
		publisher = kafkaPublisher
	}

	content, err := newContentSource(cfg)
	if err != nil {
		cleanup()
		return nil, err
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	credentials, err := security.NewStaticCredentialStore(cfg.Users, hasher)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("load users: %w", err)
	}

	tokenSigner, err := security.NewJWTSigner(cfg.JWTKeyID, cfg.JWTPrivateKeyPEM)
	if err != nil {
		if !cfg.AllowEphemeralJWT {
			cleanup()
			return nil, fmt.Errorf("init jwt signer: %w", err)
		}
		logger.Warn("using ephemeral JWT keys for local/dev runtime")
		tokenSigner, err = security.NewEphemeralJWTSigner(cfg.JWTKeyID)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("init ephemeral jwt signer: %w", err)
		}
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:      cfg.ServiceID,
			RatesScope:       cfg.RatesScope,
			SeedMode:         cfg.RatesSeed,
			SeedRates:        domain.RateTable{ArticleRate: cfg.SeedArticleRate, BlogRate: cfg.SeedBlogRate},
			TokenTTL:         cfg.TokenTTL,
			DefaultNewsQuery: cfg.DefaultNewsQuery,
			DefaultPageSize:  cfg.DefaultPageSize,
			MaxPageSize:      cfg.MaxPageSize,
		},
		Rates:     repos.Rates,
		RateCache: rateCache,
		Outbox:    repos.Outbox,
		Content:   content,
		Encoders: export.NewEncoders(export.Config{
			PDFFontPath:    cfg.PDFFontPath,
			PDFCompression: cfg.PDFCompression,
		}),
		Credentials: credentials,
		Hasher:      hasher,
		TokenSigner: tokenSigner,
	})
	handler := httpadapter.NewHandler(svc, httpadapter.Options{
		RequestTimeout: cfg.RequestTimeout,
		RateLimits: map[string]httpadapter.RateLimit{
			"session": {RequestsPerMinute: cfg.SessionPerMinute, Burst: cfg.SessionBurst},
			"exports": {RequestsPerMinute: cfg.ExportPerMinute, Burst: cfg.ExportBurst},
		},
		Observability: httpadapter.ObservabilityConfig{
			ServiceName:   cfg.ServiceID,
			MetricsPrefix: cfg.MetricsPrefix,
		},
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpadapter.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	grpcadapter.Register(grpcServer, grpcadapter.NewPayoutInternalServer(svc))

	outbox := eventadapter.NewOutboxWorker(logger, repos.Outbox, publisher, eventadapter.WorkerConfig{
		Interval:   cfg.OutboxPollInterval,
		BatchSize:  cfg.OutboxBatchSize,
		ClaimTTL:   cfg.OutboxClaimTTL,
		MaxRetries: cfg.OutboxMaxRetries,
		EventTypes: []string{contracts.EventRatesUpdated},
		Scopes:     []string{cfg.RatesScope},
	})

	return &Runtime{
		cfg:             cfg,
		logger:          logger,
		httpServer:      httpServer,
		grpcServer:      grpcServer,
		outbox:          outbox,
		rates:           svc.RateStore(),
		inProcessOutbox: db == nil,
		cleanupFn: func(context.Context) {
			cleanup()
		},
	}, nil
}

func openRepositories(ctx context.Context, cfg Config) (postgres.Repositories, *gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return postgres.NewMemoryRepositories(), nil, nil
	}
	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return postgres.Repositories{}, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return postgres.Repositories{}, nil, fmt.Errorf("run migrations: %w", err)
	}
	return postgres.NewRepositories(db), db, nil
}

func newContentSource(cfg Config) (ports.ContentSource, error) {
	clientCfg := news.DefaultClientConfig()
	clientCfg.Timeout = cfg.NewsTimeout
	client := news.NewHTTPClient(clientCfg)

	switch cfg.NewsSource {
	case NewsSourceNewsAPI:
		return news.NewNewsAPISource(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, client), nil
	case NewsSourceRSS:
		return news.NewRSSSource(cfg.RSSFeeds, client), nil
	case NewsSourceFixture:
		return news.NewFixtureSource(nil), nil
	default:
		return nil, fmt.Errorf("unknown news source %q", cfg.NewsSource)
	}
}

// prepareAPI loads the persisted rate table, seeding it on first start. Only
// the API owns the rate table; the worker just relays its outbox.
func (r *Runtime) prepareAPI(ctx context.Context) error {
	if err := r.rates.Load(ctx); err != nil {
		return fmt.Errorf("load rates: %w", err)
	}
	return nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.prepareAPI(ctx); err != nil {
		r.cleanupFn(ctx)
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", r.cfg.GRPCPort))
	if err != nil {
		r.cleanupFn(ctx)
		return fmt.Errorf("listen gRPC: %w", err)
	}

	errCh := make(chan error, 3)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc server started", "addr", lis.Addr().String())
		if err := r.grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	if r.inProcessOutbox {
		go func() {
			r.logger.Info("outbox worker started in-process")
			if err := r.outbox.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("outbox worker: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case runErr = <-errCh:
		r.logger.Error("server failure", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return runErr
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if r.inProcessOutbox {
		r.logger.Warn("worker started without DB_URL; it only sees events written by this process")
	}
	r.logger.Info("outbox worker started")
	err := r.outbox.Run(ctx)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

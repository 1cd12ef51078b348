package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/landgov/backend/api/handler"
	"github.com/landgov/backend/internal/config"
	"github.com/landgov/backend/internal/infrastructure/monitor"
	"github.com/landgov/backend/internal/infrastructure/outbox"
	pgInfra "github.com/landgov/backend/internal/infrastructure/postgres"
	redisInfra "github.com/landgov/backend/internal/infrastructure/redis"
	"github.com/landgov/backend/internal/middleware"
	"github.com/landgov/backend/internal/router"
	"github.com/landgov/backend/internal/seed"
	"github.com/landgov/backend/internal/services"
	"github.com/landgov/backend/internal/services/lifecycle"
	"github.com/landgov/backend/pkg/httpcontext"
	"github.com/landgov/backend/pkg/logger"
	"github.com/landgov/backend/repository"
	memRepo "github.com/landgov/backend/repository/memory"
	pgRepo "github.com/landgov/backend/repository/postgres"
	redisRepo "github.com/landgov/backend/repository/redis"
	adminUC "github.com/landgov/backend/usecase/admin"
	authUC "github.com/landgov/backend/usecase/auth"
	inboxUC "github.com/landgov/backend/usecase/inbox"
	registryUC "github.com/landgov/backend/usecase/registry"
	"github.com/landgov/backend/usecase/workflow"
)

type repositories struct {
	users         repository.UserRepository
	plots         repository.PlotRepository
	applications  repository.ApplicationRepository
	payments      repository.PaymentRepository
	notifications repository.NotificationRepository
	sessions      repository.SessionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	journal, err := outbox.Open(cfg.Outbox.Path, "outbox")
	if err != nil {
		zapLogger.Fatal("failed to open notification outbox", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return journal.Close()
	})

	repos, mon := buildStorage(appCtx, cfg, manager, journal, zapLogger)

	outboxProcessor := services.NewOutboxProcessor(journal, repos.notifications, zapLogger, services.ProcessorConfig{
		Interval:   cfg.Outbox.DrainInterval,
		BatchSize:  cfg.Outbox.BatchSize,
		MaxRetries: cfg.Outbox.MaxRetry,
	})
	outboxProcessor.Start()
	manager.Register("outbox_processor", func(ctx context.Context) error {
		outboxProcessor.Stop(ctx)
		return nil
	})

	notifier := services.NewStoreNotifier(repos.notifications, journal, zapLogger)

	sampleData, err := seed.Sample()
	if err != nil {
		zapLogger.Fatal("failed to build seed data", zap.Error(err))
	}
	if !cfg.UsesPostgres() {
		// The memory driver always boots empty; load the demo dataset.
		if err := seed.Apply(appCtx, sampleData, repos.users, repos.plots); err != nil {
			zapLogger.Fatal("failed to seed sample data", zap.Error(err))
		}
	}

	engine := workflow.New(repos.applications, repos.plots, repos.users, repos.payments, notifier, zapLogger)
	authUseCase := authUC.New(repos.users, repos.sessions, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.SessionTTL, zapLogger)
	registryUseCase := registryUC.New(repos.plots, zapLogger)
	inboxUseCase := inboxUC.New(repos.notifications, zapLogger)
	adminUseCase := adminUC.New(repos.applications, repos.payments, repos.notifications, repos.users, repos.plots, sampleData, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:         apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Application:  apiHandler.NewApplicationHandler(engine, ctxAdapter, zapLogger),
		Plot:         apiHandler.NewPlotHandler(registryUseCase, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(inboxUseCase, ctxAdapter, zapLogger),
		Admin:        apiHandler.NewAdminHandler(adminUseCase, ctxAdapter, zapLogger),
		Health:       apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage_driver", cfg.Storage.Driver))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// buildStorage wires the repository set for the configured driver. The
// memory driver needs no external services; postgres adds pgx, Redis
// sessions, migrations, and a connection monitor.
func buildStorage(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, journal *outbox.Journal, zapLogger *zap.Logger) (repositories, *monitor.Monitor) {
	if !cfg.UsesPostgres() {
		mon := monitor.New(nil, nil, journal, 10*time.Second, zapLogger)
		mon.Start()
		manager.Register("monitor", func(ctx context.Context) error {
			mon.Stop()
			return nil
		})
		return repositories{
			users:         memRepo.NewUserRepository(),
			plots:         memRepo.NewPlotRepository(),
			applications:  memRepo.NewApplicationRepository(),
			payments:      memRepo.NewPaymentRepository(),
			notifications: memRepo.NewNotificationRepository(),
			sessions:      memRepo.NewSessionRepository(),
		}, mon
	}

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(ctx, cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, journal, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	return repositories{
		users:         pgRepo.NewUserRepository(pool),
		plots:         pgRepo.NewPlotRepository(pool),
		applications:  pgRepo.NewApplicationRepository(pool),
		payments:      pgRepo.NewPaymentRepository(pool),
		notifications: pgRepo.NewNotificationRepository(pool),
		sessions:      redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL),
	}, mon
}

package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"

	config "github.com/shopline/storefront/internal/cfg"
	v1Http "github.com/shopline/storefront/internal/delivery/v1/http"
	"github.com/shopline/storefront/internal/infrastructure/kafka"
	"github.com/shopline/storefront/internal/repository/pgdb"
	pgdbConv "github.com/shopline/storefront/internal/repository/pgdb/converter"
	"github.com/shopline/storefront/internal/repository/redis"
	redisConv "github.com/shopline/storefront/internal/repository/redis/converter"
	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/clients"
	"github.com/shopline/storefront/pkg/closer"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
	"github.com/shopline/storefront/pkg/postgres"
)

// App собирает все зависимости магазина и управляет их жизненным циклом.
// Ресурсы регистрируются в closer в порядке создания и закрываются в обратном.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	producer     *kafka.Producer
	outboxWorker *kafka.OutboxWorker
	httpServer   *v1Http.Server
	closer       *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	const shutdownForcedTimeout = 2 * time.Second

	app := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(shutdownForcedTimeout),
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	app.db = db
	app.closer.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	app.redisClient = redisClient
	app.closer.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	app.producer = producer
	app.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.NewCategoryConverter())
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	adminRepo := pgdb.NewAdminRepo(db.Pool, pgdbConv.NewAdminConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())
	sessionRepo := redis.NewSessionRepo(redisClient, redisConv.NewCartItemConverter(), cfg.Session, log)

	catalogUC := usecase.NewCatalogUC(categoryRepo, productRepo, log)
	cartUC := usecase.NewCartUC(sessionRepo, productRepo, log)
	adminUC := usecase.NewAdminUC(categoryRepo, productRepo, adminRepo, sessionRepo, outboxRepo, db.Pool, log)

	app.outboxWorker = kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(cfg.Session, catalogUC, cartUC, adminUC)

	app.httpServer = v1Http.NewServer(r, cfg.Http)

	return app, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала завершения
// или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.outboxWorker.Start(workerCtx)
	a.closer.Add(func(ctx context.Context) error {
		workerCancel()
		a.outboxWorker.Stop()
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "resource shutdown error")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

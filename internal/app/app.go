package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-backend/internal/infrastructure/console"
	"github.com/DRSN-tech/catalog-backend/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/catalog-backend/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/catalog-backend/internal/repository/minio"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/repository/redis"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/clients"
	"github.com/DRSN-tech/catalog-backend/pkg/closer"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/DRSN-tech/catalog-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	forcedTimeout   = 2 * time.Second
)

// App собирает зависимости сервиса и управляет его жизненным циклом.
// Ресурсы регистрируются в closer по мере создания и закрываются
// в обратном порядке при остановке.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	closer  *closer.Closer

	outboxWorker *kafka.OutboxWorker
	workerCtx    context.Context
	workerCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(forcedTimeout),
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(_ context.Context) error {
		db.Close()
		log.Infof("Database connections closed")
		return nil
	})

	productRepo := pgdb.NewProductRepo(db.Pool, converter.NewProductConverter())
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, converter.NewCategoryConverter())
	brandRepo := pgdb.NewBrandRepo(db.Pool, converter.NewBrandConverter())
	dummyRepo := pgdb.NewDummyRepo(db.Pool, converter.NewDummyConverter())

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(_ context.Context) error {
		return redisClient.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, cfg.Redis, log)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
	err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
	minioCancel()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, context.Background())
	a.closer.Add(func(ctx context.Context) error {
		// Дожидаемся компенсирующих удалений, чтобы не оставить сирот в бакете.
		if err := imagesInfra.WaitForCleanup(ctx); err != nil {
			return err
		}
		log.Infof("MinIO cleanup completed")
		return nil
	})

	publisher, err := a.initPublisher(db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	productUC := usecase.NewProductUC(
		productRepo,
		categoryRepo,
		brandRepo,
		db.Pool,
		imagesInfra,
		publisher,
		cacheRepo,
		log,
	)
	categoryUC := usecase.NewCategoryUC(categoryRepo, db.Pool, log)
	brandUC := usecase.NewBrandUC(brandRepo, log)
	dummyUC := usecase.NewDummyUC(dummyRepo, db.Pool, publisher, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(productUC, categoryUC, brandUC, dummyUC)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add(func(ctx context.Context) error {
		if err := a.httpSrv.Stop(ctx); err != nil {
			return err
		}
		log.Infof("HTTP server stopped")
		return nil
	})

	return a, nil
}

// Run запускает серверы и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	if a.outboxWorker != nil {
		a.outboxWorker.Start(a.workerCtx)
		a.logger.Infof("Outbox worker started")
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// initPublisher выбирает бэкенд публикации доменных событий.
// Kafka работает через outbox: событие пишется в таблицу в той же
// транзакции, что и изменение данных, доставку ведёт фоновый воркер.
func (a *App) initPublisher(db *postgres.PgDatabase) (usecase.EventPublisher, error) {
	if a.cfg.App.EventsBackend != config.EventsBackendKafka {
		a.logger.Infof("Using console event publisher")
		return console.NewPublisher(a.logger), nil
	}

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := producer.EnsureTopic(initTimeout); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, converter.NewOutboxEventConverter())

	a.workerCtx, a.workerCancel = context.WithCancel(context.Background())
	a.outboxWorker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db.Dsn)
	a.closer.Add(func(_ context.Context) error {
		a.workerCancel()
		a.outboxWorker.Stop()
		if err := producer.Close(); err != nil {
			return err
		}
		a.logger.Infof("Outbox worker stopped")
		return nil
	})

	a.logger.Infof("Using kafka event publisher with topic %s", a.cfg.Kafka.Topic)

	return kafka.NewOutboxPublisher(outboxRepo), nil
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

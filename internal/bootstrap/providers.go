package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"projects-service/internal/application"
	"projects-service/internal/config"
	httpserver "projects-service/internal/infrastructure/http"
	"projects-service/internal/infrastructure/logx"
	"projects-service/internal/infrastructure/memstore"
	"projects-service/internal/infrastructure/pg"
	redisstore "projects-service/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORAGE=pg")

// ReadyCheck probes the backing store for /readyz. Nil means always ready.
type ReadyCheck func(ctx context.Context) error

type Storage struct {
	UoW   application.UnitOfWorkFactory
	Ready ReadyCheck
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

// ProvideStorage picks the unit-of-work backend from STORAGE ("pg" or "memory").
func ProvideStorage(ctx context.Context, log *zap.Logger, cfg config.Config) (Storage, func(), error) {
	switch cfg.Storage {
	case "memory":
		log.Warn("using in-memory storage; data is lost on restart")
		return Storage{UoW: memstore.New()}, func() {}, nil
	case "", "pg":
	default:
		return Storage{}, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
	if cfg.DatabaseURL == "" {
		return Storage{}, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return Storage{}, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return Storage{}, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return Storage{UoW: pg.NewFactory(db), Ready: db.Ping}, cleanup, nil
}

func ProvideRedisClient(cfg config.Config) (*redis.Client, func(), error) {
	if cfg.IdempotencyBackend != "redis" {
		return nil, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }, nil
}

func ProvideIdempotency(client *redis.Client, cfg config.Config) application.IdempotencyStore {
	if client == nil {
		return application.NoopIdempotency{}
	}
	return redisstore.New(client, cfg.RedisTTL)
}

func ProvideProjectService(st Storage, idem application.IdempotencyStore, log *zap.Logger) *application.ProjectService {
	return application.NewProjectService(st.UoW,
		application.WithIdempotency(idem),
		application.WithLogger(log.With(zap.String("component", "project_service"))),
	)
}

func ProvideServer(svc *application.ProjectService, st Storage) *httpserver.Server {
	srv := httpserver.NewServer(svc)
	if st.Ready != nil {
		srv.SetReadyCheck(st.Ready)
	}
	return srv
}

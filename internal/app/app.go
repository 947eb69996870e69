// Package app wires configuration into stores and services. Both the HTTP
// server and the hoopsctl CLI build their dependencies through New.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"alcyxob/hoops-trainer/internal/config"
	"alcyxob/hoops-trainer/internal/identity"
	"alcyxob/hoops-trainer/internal/logger"
	"alcyxob/hoops-trainer/internal/oembed"
	"alcyxob/hoops-trainer/internal/repository"
	"alcyxob/hoops-trainer/internal/repository/memory"
	"alcyxob/hoops-trainer/internal/repository/mongo"
	redisstore "alcyxob/hoops-trainer/internal/repository/redis"
	sqlstore "alcyxob/hoops-trainer/internal/repository/sql"
	"alcyxob/hoops-trainer/internal/service"
	"alcyxob/hoops-trainer/internal/storage"
)

// App holds the wired services and the connections they depend on.
type App struct {
	Provider  *identity.Provider
	Library   service.LibraryService
	Titles    service.TitleService
	Resources service.ResourceService
	Plans     service.PlanService

	closers []func() error
}

// New opens the configured backends and builds every service on top of them.
// Call Close when done, also after an error.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	data, err := a.openDataStore(ctx, cfg)
	if err != nil {
		return a, fmt.Errorf("storage backend %q: %w", cfg.Storage.Backend, err)
	}
	tabs, err := a.openSessionStore(ctx, cfg)
	if err != nil {
		return a, fmt.Errorf("session backend %q: %w", cfg.Session.Backend, err)
	}

	var sessions identity.SessionLookup = identity.StubLookup{}
	if cfg.JWT.Secret != "" {
		sessions = identity.NewJWTLookup(cfg.JWT.Secret)
	} else {
		logger.Warn().Msg("JWT secret not set; all callers are anonymous")
	}
	a.Provider = identity.NewProvider(sessions, tabs, cfg.Session.Key)

	a.Library = service.NewLibraryService(data, cfg.Storage.LibraryKey)
	a.Resources = service.NewResourceService(data, cfg.Storage.ResourcesKey, nil)
	a.Plans = service.NewPlanService(data, cfg.Storage.PlansKey, a.Library, nil)

	fetcher := oembed.NewClient(&http.Client{Timeout: cfg.Enrichment.Timeout}, cfg.Enrichment.OEmbedEndpoint)
	limiter := service.NewLimiter(cfg.Enrichment.RatePerSecond, cfg.Enrichment.Burst)
	a.Titles = service.NewTitleService(a.Library, fetcher, limiter)

	return a, nil
}

func (a *App) openDataStore(ctx context.Context, cfg config.Config) (repository.SlotStore, error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		logger.Warn().Msg("Using in-memory storage; data is lost on exit")
		return memory.NewSlotStore(), nil

	case "mongo", "mongodb":
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return mongo.DisconnectDB(client) })
		logger.Info().Str("database", cfg.Database.Name).Msg("Connected to MongoDB")
		return mongo.NewMongoSlotRepository(client.Database(cfg.Database.Name)), nil

	case "sqlite", "postgres", "postgresql":
		db, err := sqlstore.Open(cfg.Storage.Backend, cfg.SQL.DSN)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sqlDB.Close)
		logger.Info().Str("driver", cfg.Storage.Backend).Msg("Connected to SQL database")
		return sqlstore.NewSlotStore(db), nil

	case "s3":
		return storage.NewS3SlotStore(ctx, cfg.S3)
	}
	return nil, errors.New("unknown backend")
}

func (a *App) openSessionStore(ctx context.Context, cfg config.Config) (repository.SlotStore, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return memory.NewExpiringSlotStore(cfg.Session.TTL), nil
	case "redis":
		client, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Session.TTL).Msg("Connected to Redis session store")
		return redisstore.NewSlotStore(client, cfg.Session.TTL), nil
	}
	return nil, errors.New("unknown backend")
}

// Close releases the backend connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

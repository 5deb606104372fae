package setup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unforum-dev/unforum/backend/internal/handler"
	"github.com/unforum-dev/unforum/backend/internal/reactions"
	"github.com/unforum-dev/unforum/backend/internal/seed"
	"github.com/unforum-dev/unforum/backend/internal/service"
	"github.com/unforum-dev/unforum/backend/internal/storage/memory"
	"github.com/unforum-dev/unforum/backend/internal/storage/mongo"
	"github.com/unforum-dev/unforum/backend/internal/storage/pg"
	"github.com/unforum-dev/unforum/shared/config"
	"github.com/unforum-dev/unforum/shared/identity"
	"github.com/unforum-dev/unforum/shared/logger"
	mw "github.com/unforum-dev/unforum/shared/middleware"
)

// Store is the document store together with its lifecycle hooks.
type Store interface {
	service.Storage
	Ping(ctx context.Context) error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Store
	Forum          *service.Forum
	Likes          reactions.Guard
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth

	closers []func() error
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg}

	store, err := deps.openStore(ctx)
	if err != nil {
		return nil, err
	}
	deps.Storage = store

	likes, err := newLikeGuard(cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Likes = likes
	deps.closers = append(deps.closers, likes.Close)

	deps.Forum = service.NewForum(store, cfg.Public.Storage.LegacyReplyCount)
	seeder := seed.New(store)
	deps.Handler = handler.New(deps.Forum, seeder, likes, store, cfg)
	deps.AuthMiddleware = mw.NewAuth(
		identity.NewVerifier(cfg.IdentitySecret()),
		identity.AdminPolicy{
			Email:              cfg.Public.Admin.Email,
			AllowLocalOverride: cfg.Public.Admin.AllowLocalOverride,
		},
	)

	if cfg.Public.Admin.AllowLocalOverride {
		logger.Log.Warn("client-side admin mode is enabled, do not use in production")
	}
	return deps, nil
}

func (d *Dependencies) openStore(ctx context.Context) (Store, error) {
	driver := d.Config.Public.Storage.Driver
	logger.Log.Info("opening store", "driver", driver)

	switch driver {
	case config.DriverMemory:
		store := memory.New()
		d.closers = append(d.closers, store.Close)
		return store, nil
	case config.DriverPg:
		store, err := pg.New(d.Config)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		d.closers = append(d.closers, store.Cleanup)
		return store, nil
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		store, err := mongo.New(connectCtx, d.Config.Private.Mongo.URL)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		d.closers = append(d.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return store.Close(closeCtx)
		})
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func newLikeGuard(cfg *config.Config) (reactions.Guard, error) {
	hasher, err := reactions.NewHasher(cfg.Private.ReactionsKey)
	if err != nil {
		return nil, err
	}
	ttl := cfg.Public.Reactions.LikeTTL
	if cfg.Private.Redis.URL == "" {
		return reactions.NewMemoryGuard(hasher, ttl), nil
	}
	guard, err := reactions.NewRedisGuard(cfg.Private.Redis.URL, hasher, ttl)
	if err != nil {
		return nil, fmt.Errorf("open redis: %w", err)
	}
	return guard, nil
}

// Close releases every opened resource in reverse order.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

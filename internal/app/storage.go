package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/proconnect-api/internal/config"
	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	cacherepo "github.com/riskibarqy/proconnect-api/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/repository/rediscache"
	"github.com/riskibarqy/proconnect-api/internal/platform/cache"
	"github.com/riskibarqy/proconnect-api/internal/platform/logging"
)

const maxCacheEntries = 50_000

type repositories struct {
	users     user.Repository
	investors investor.Repository
	unlocks   unlock.Repository
}

// buildRepositories layers the read path as process cache, then redis, then
// the storage driver. Each layer is optional except the last.
func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, CloseFunc, error) {
	var closers []CloseFunc
	closeAll := func(ctx context.Context) error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i](ctx))
		}
		return errors.Join(errs...)
	}

	var repos repositories
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Info("using in-memory storage with demo seed")
		repos = repositories{
			users:     memory.NewUserRepository(memory.SeedUsers()),
			investors: memory.NewInvestorRepository(memory.SeedInvestors()),
			unlocks:   memory.NewUnlockRepository(memory.SeedUnlocks()),
		}
	case config.StorageDriverPostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		closers = append(closers, func(context.Context) error { return db.Close() })

		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = closeAll(ctx)
				return repositories{}, nil, err
			}
			logger.Info("database bootstrap seed checked")
		}

		repos = repositories{
			users:     postgres.NewUserRepository(db),
			investors: postgres.NewInvestorRepository(db),
			unlocks:   postgres.NewUnlockRepository(db),
		}
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.RedisEnabled {
		client, err := rediscache.NewClient(cfg.RedisURL)
		if err != nil {
			_ = closeAll(ctx)
			return repositories{}, nil, fmt.Errorf("build redis client: %w", err)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping failed, shared cache will degrade to storage", "error", err)
		}
		closers = append(closers, func(context.Context) error { return client.Close() })

		opts := rediscache.Options{Prefix: cfg.RedisKeyPrefix, Logger: logger}
		repos.users = rediscache.NewUserRepository(repos.users, client, opts)
		repos.investors = rediscache.NewInvestorRepository(repos.investors, client, opts)
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cache.Options{
			TTL:           cfg.CacheTTL,
			MaxEntries:    maxCacheEntries,
			SweepInterval: cfg.CacheTTL,
		})
		closers = append(closers, func(context.Context) error {
			store.Close()
			return nil
		})

		repos.users = cacherepo.NewUserRepository(repos.users, store)
		repos.investors = cacherepo.NewInvestorRepository(repos.investors, store)
		repos.unlocks = cacherepo.NewUnlockRepository(repos.unlocks, store)
	}

	return repos, closeAll, nil
}

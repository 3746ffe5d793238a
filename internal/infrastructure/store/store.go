package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/config"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/internal/infrastructure/memory"
	"github.com/oksasatya/edu-platform/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/edu-platform/internal/infrastructure/postgres"
)

// Open connects the driver named by cfg.StoreDriver and prepares its schema.
// The returned func releases the connection.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*repository.Store, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return pginfra.NewStore(pool), pool.Close, nil

	case "mongodb":
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongodb: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			closeFn()
			return nil, nil, err
		}
		if !cfg.MongoTransactions {
			logger.Warn("mongodb transactions disabled: multi-document writes are not atomic")
		}
		return mongodb.NewStore(client, db, cfg.MongoTransactions), closeFn, nil

	case "memory":
		logger.Warn("using in-memory store: data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

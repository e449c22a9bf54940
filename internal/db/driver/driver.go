// Package driver opens the db.Store selected by configuration.
package driver

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tablefinder/internal/config"
	"github.com/kailas-cloud/tablefinder/internal/db"
	"github.com/kailas-cloud/tablefinder/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/tablefinder/internal/db/redis"
)

// SchemaCreator is implemented by stores that need DDL before the first write.
type SchemaCreator interface {
	CreateSchema(ctx context.Context) error
}

// Open creates the store for dbCfg.Driver. It does not wait for readiness.
func Open(dbCfg config.DatabaseConfig, storage config.StorageConfig) (db.Store, error) {
	switch dbCfg.Driver {
	case config.DriverValkey, config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     dbCfg.Addrs,
			Password:  dbCfg.Password,
			KeyPrefix: storage.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.NewStore(postgres.Config{
			DSN:   dbCfg.DSN,
			Table: dbCfg.Table,
		})
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", dbCfg.Driver)
	}
}

// EnsureSchema runs CreateSchema when the store supports it.
func EnsureSchema(ctx context.Context, s db.Store) error {
	sc, ok := s.(SchemaCreator)
	if !ok {
		return nil
	}
	if err := sc.CreateSchema(ctx); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

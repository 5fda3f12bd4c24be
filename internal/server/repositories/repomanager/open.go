package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/doccatalog/internal/server/config"
)

// Open builds the manager selected by cfg.Storage and runs its migrations.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		m, err = NewPostgresRepositoryManager(cfg.DatabaseDSN)
	case config.StorageBolt:
		m, err = NewBoltRepositoryManager(cfg.BoltPath)
	default:
		return nil, fmt.Errorf("%w: unknown storage %q", config.ErrInvalidConfig, cfg.Storage)
	}
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}

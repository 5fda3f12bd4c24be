package repomanager

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dmitrijs2005/doccatalog/internal/dbx"
	"github.com/dmitrijs2005/doccatalog/internal/filex"
	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/quotations"
)

// BoltRepositoryManager vends bbolt-backed repositories stored in a single
// database file.
type BoltRepositoryManager struct {
	db *bolt.DB
}

// NewBoltRepositoryManager opens the database at path, creating the file
// and its directory when missing.
func NewBoltRepositoryManager(path string) (*BoltRepositoryManager, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &BoltRepositoryManager{db: db}, nil
}

// RunMigrations creates the buckets.
func (m *BoltRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{documents.Bucket, quotations.Bucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

func (m *BoltRepositoryManager) Repositories() Repositories {
	return boltRepositories(m.db)
}

func (m *BoltRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.BoltWithTx(ctx, m.db, func(ctx context.Context, tx dbx.BoltTX) error {
		return fn(ctx, boltRepositories(tx))
	})
}

func (m *BoltRepositoryManager) Close() error {
	return m.db.Close()
}

func boltRepositories(db dbx.BoltTX) Repositories {
	return Repositories{
		Documents:  documents.NewBoltRepository(db),
		Quotations: quotations.NewBoltRepository(db),
	}
}

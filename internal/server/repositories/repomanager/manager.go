// Package repomanager vends the catalog repositories for the configured
// storage backend (PostgreSQL or bbolt) and runs work transactionally
// across them.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/quotations"
)

// Repositories groups the repositories bound to one handle (connection
// pool or transaction).
type Repositories struct {
	Documents  documents.Repository
	Quotations quotations.Repository
}

type RepositoryManager interface {
	// RunMigrations brings the storage schema up to date.
	RunMigrations(ctx context.Context) error
	// Repositories returns repositories working outside any transaction.
	Repositories() Repositories
	// WithTx runs fn with repositories sharing one transaction; it commits
	// when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}

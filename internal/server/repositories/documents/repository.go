// Package documents provides the catalog document repositories: a
// PostgreSQL implementation over dbx.DBTX and an embedded bbolt one.
package documents

import (
	"context"

	"github.com/dmitrijs2005/doccatalog/internal/server/models"
)

// Repository stores catalog documents. Missing ids yield common.ErrorNotFound.
// List returns documents oldest first.
type Repository interface {
	Create(ctx context.Context, doc *models.Document) error
	List(ctx context.Context) ([]*models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	MarkMigrated(ctx context.Context, id string) error
}

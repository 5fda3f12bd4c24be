// Package quotations provides repositories for the ordered text sections
// derived from catalog documents.
package quotations

import (
	"context"

	"github.com/dmitrijs2005/doccatalog/internal/server/models"
)

// Repository stores quotations. List orders by group then sequence number;
// ListByGroup by sequence number. DeleteByGroup on an empty group is not an
// error.
type Repository interface {
	CreateBatch(ctx context.Context, qs []*models.Quotation) error
	List(ctx context.Context) ([]*models.Quotation, error)
	ListByGroup(ctx context.Context, groupID string) ([]*models.Quotation, error)
	Get(ctx context.Context, id string) (*models.Quotation, error)
	DeleteByGroup(ctx context.Context, groupID string) error
	MarkMigrated(ctx context.Context, id string) error
}

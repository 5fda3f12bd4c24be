package client

import (
	"context"

	"github.com/dmitrijs2005/doccatalog/internal/client/models"
)

// Client is the contract of the remote catalog service.
type Client interface {
	List(ctx context.Context) ([]models.DocumentRecord, error)
	Upload(ctx context.Context, draft models.UploadDraft) (*models.DocumentRecord, error)
	Remove(ctx context.Context, id string) error
	MarkMigrated(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (*models.DocumentRecord, error)
	ListQuotations(ctx context.Context, groupID string) ([]models.Quotation, error)
	Ping(ctx context.Context) error
}

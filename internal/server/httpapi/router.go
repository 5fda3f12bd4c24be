// Package httpapi exposes the catalog service over HTTP with JSON bodies and
// multipart uploads.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/doccatalog/internal/logging"
	"github.com/dmitrijs2005/doccatalog/internal/server/catalog"
	"github.com/dmitrijs2005/doccatalog/internal/server/models"
)

// Catalog is the service behind the HTTP handlers.
type Catalog interface {
	Upload(ctx context.Context, cmd catalog.UploadCommand) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	File(ctx context.Context, id string) (*models.Document, []byte, error)
	Delete(ctx context.Context, id string) error
	MarkMigrated(ctx context.Context, id string) error
	ListQuotations(ctx context.Context) ([]*models.Quotation, error)
	ListQuotationsByGroup(ctx context.Context, groupID string) ([]*models.Quotation, error)
	GetQuotation(ctx context.Context, id string) (*models.Quotation, error)
	MarkQuotationMigrated(ctx context.Context, id string) error
}

// Options tune the router.
type Options struct {
	MaxUploadSize  int64
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// NewRouter wires the catalog routes and middleware.
func NewRouter(svc Catalog, logger logging.Logger, opts Options) http.Handler {
	h := &Handler{svc: svc, logger: logger, maxUploadSize: opts.MaxUploadSize}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors(opts.CORSOrigins))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/", h.Health)
	r.Post("/upload", h.Upload)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.ListDocuments)
		r.Get("/{id}", h.GetDocument)
		r.Get("/{id}/file", h.DocumentFile)
		r.Delete("/{id}", h.DeleteDocument)
		r.Post("/{id}/mark-migrated", h.MarkDocumentMigrated)
	})

	r.Route("/quotations", func(r chi.Router) {
		r.Get("/", h.ListQuotations)
		r.Get("/group/{id}", h.ListQuotationsByGroup)
		r.Get("/{id}", h.GetQuotation)
		r.Post("/{id}/mark-migrated", h.MarkQuotationMigrated)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

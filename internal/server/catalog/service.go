// Package catalog implements the document catalog service: accepting
// uploads, deriving quotations from document text and serving both back.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/dmitrijs2005/doccatalog/internal/common"
	"github.com/dmitrijs2005/doccatalog/internal/logging"
	"github.com/dmitrijs2005/doccatalog/internal/server/blob"
	"github.com/dmitrijs2005/doccatalog/internal/server/models"
	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/repomanager"
)

// UnknownCompany replaces company names the uploader did not supply.
const UnknownCompany = "Unknown Company"

const quotationContentType = "text"

// UploadCommand carries one multipart upload. HasFile is false when the
// request had no file part at all.
type UploadCommand struct {
	HasFile        bool
	FileName       string
	ContentType    string
	Data           []byte
	Category       string
	CompanyFrom    string
	CompanyTo      string
	CustomFileName string
	FileText       string
}

type Service struct {
	repos     repomanager.RepositoryManager
	blobs     blob.Store
	logger    logging.Logger
	chunkSize int
	now       func() time.Time
	newID     func() string
}

func NewService(repos repomanager.RepositoryManager, blobs blob.Store, logger logging.Logger) *Service {
	return &Service{
		repos:     repos,
		blobs:     blobs,
		logger:    logger,
		chunkSize: DefaultChunkSize,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Upload validates cmd, archives the file bytes and stores the document
// together with its quotations in one transaction.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (*models.Document, error) {
	if !cmd.HasFile {
		return nil, ErrNoFile
	}
	category := strings.TrimSpace(cmd.Category)
	if category == "" {
		return nil, ErrMissingCategory
	}

	contentType := detectContentType(cmd.ContentType, cmd.Data)
	now := s.now()

	doc := &models.Document{
		ID:          s.newID(),
		FileName:    documentFileName(cmd),
		Category:    category,
		CompanyFrom: companyOrUnknown(cmd.CompanyFrom),
		CompanyTo:   companyOrUnknown(cmd.CompanyTo),
		FileText:    documentText(cmd.FileText, contentType, cmd.Data),
		PageCount:   s.extractPDFPageCount(ctx, cmd.Data, contentType),
		ContentType: contentType,
		Size:        int64(len(cmd.Data)),
		CreatedAt:   now,
	}

	if s.blobs != nil {
		key := blob.NewKey()
		if err := s.blobs.Put(ctx, key, contentType, cmd.Data); err != nil {
			return nil, fmt.Errorf("archive file: %w", err)
		}
		doc.BlobKey = key
	}

	quotes := s.quotationsFor(doc)

	err := s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := r.Documents.Create(ctx, doc); err != nil {
			return err
		}
		if len(quotes) == 0 {
			return nil
		}
		return r.Quotations.CreateBatch(ctx, quotes)
	})
	if err != nil {
		s.dropBlob(ctx, doc.BlobKey)
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	s.logger.Info(ctx, "document uploaded",
		"document_id", doc.ID,
		"file_name", doc.FileName,
		"quotations", len(quotes),
	)
	return doc, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Document, error) {
	return s.repos.Repositories().Documents.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Document, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	doc, err := s.repos.Repositories().Documents.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return doc, nil
}

// File returns the archived bytes of a document.
func (s *Service) File(ctx context.Context, id string) (*models.Document, []byte, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.blobs == nil || doc.BlobKey == "" {
		return nil, nil, ErrFileNotStored
	}
	data, err := s.blobs.Get(ctx, doc.BlobKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, nil, ErrFileNotStored
		}
		return nil, nil, err
	}
	return doc, data, nil
}

// Delete removes the document and its quotations, then its archived file.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	var blobKey string
	err := s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		doc, err := r.Documents.Get(ctx, id)
		if err != nil {
			return err
		}
		blobKey = doc.BlobKey
		if err := r.Quotations.DeleteByGroup(ctx, id); err != nil {
			return err
		}
		return r.Documents.Delete(ctx, id)
	})
	if err != nil {
		return mapNotFound(err, ErrNotFound)
	}

	s.dropBlob(ctx, blobKey)
	s.logger.Info(ctx, "document deleted", "document_id", id)
	return nil
}

func (s *Service) MarkMigrated(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.repos.Repositories().Documents.MarkMigrated(ctx, id); err != nil {
		return mapNotFound(err, ErrNotFound)
	}
	return nil
}

func (s *Service) ListQuotations(ctx context.Context) ([]*models.Quotation, error) {
	return s.repos.Repositories().Quotations.List(ctx)
}

// ListQuotationsByGroup returns the quotations of one document in sequence
// order. An empty group is reported as ErrEmptyGroup.
func (s *Service) ListQuotationsByGroup(ctx context.Context, groupID string) ([]*models.Quotation, error) {
	if !validID(groupID) {
		return nil, ErrEmptyGroup
	}
	qs, err := s.repos.Repositories().Quotations.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, ErrEmptyGroup
	}
	return qs, nil
}

func (s *Service) GetQuotation(ctx context.Context, id string) (*models.Quotation, error) {
	if !validID(id) {
		return nil, ErrQuotationNotFound
	}
	q, err := s.repos.Repositories().Quotations.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrQuotationNotFound)
	}
	return q, nil
}

func (s *Service) MarkQuotationMigrated(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrQuotationNotFound
	}
	if err := s.repos.Repositories().Quotations.MarkMigrated(ctx, id); err != nil {
		return mapNotFound(err, ErrQuotationNotFound)
	}
	return nil
}

func (s *Service) quotationsFor(doc *models.Document) []*models.Quotation {
	chunks := chunkText(doc.FileText, s.chunkSize)
	qs := make([]*models.Quotation, 0, len(chunks))
	for i, chunk := range chunks {
		qs = append(qs, &models.Quotation{
			ID:             s.newID(),
			GroupID:        doc.ID,
			SequenceNumber: i,
			Category:       doc.Category,
			CompanyFrom:    doc.CompanyFrom,
			CompanyTo:      doc.CompanyTo,
			FileName:       doc.FileName,
			FileText:       chunk,
			ContentType:    quotationContentType,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return qs
}

func (s *Service) dropBlob(ctx context.Context, key string) {
	if s.blobs == nil || key == "" {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "failed to delete archived file", "blob_key", key, "error", err)
	}
}

func (s *Service) extractPDFPageCount(ctx context.Context, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		s.logger.Warn(ctx, "failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}

// validID reports whether id can name a stored record. Ids are UUIDs on
// every backend, and Postgres rejects anything else at query time.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func mapNotFound(err, target error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return target
	}
	return err
}

func documentFileName(cmd UploadCommand) string {
	if name := strings.TrimSpace(cmd.CustomFileName); name != "" {
		return name
	}
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(cmd.FileName, `\`, "/")))
	if name == "/" || name == "." {
		return "upload.bin"
	}
	return name
}

// documentText prefers the text supplied with the upload; otherwise plain
// text files contribute their own contents.
func documentText(inline, contentType string, data []byte) string {
	if strings.TrimSpace(inline) != "" {
		return inline
	}
	if strings.HasPrefix(contentType, "text/") && utf8.Valid(data) {
		return string(data)
	}
	return ""
}

func companyOrUnknown(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		s = UnknownCompany
	}
	return &s
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

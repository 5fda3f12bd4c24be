package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/doccatalog/internal/logging"
	"github.com/dmitrijs2005/doccatalog/internal/server/catalog"
	"github.com/dmitrijs2005/doccatalog/internal/server/models"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

const healthMessage = "Document catalog service is running"

type Handler struct {
	svc           Catalog
	logger        logging.Logger
	maxUploadSize int64
}

type uploadResponse struct {
	Message  string           `json:"message"`
	Document *models.Document `json:"document"`
}

type documentsResponse struct {
	Documents []*models.Document `json:"documents"`
}

type quotationsResponse struct {
	Quotations []*models.Quotation `json:"quotations"`
}

// Health handles GET /
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, healthMessage)
}

// Upload handles POST /upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.fail(w, r, catalog.ErrNoFile)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	cmd := catalog.UploadCommand{
		Category:       r.FormValue("category"),
		CompanyFrom:    r.FormValue("company_from"),
		CompanyTo:      r.FormValue("company_to"),
		CustomFileName: r.FormValue("file_name"),
		FileText:       r.FormValue("file_text"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		h.fail(w, r, err)
		return
	default:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		cmd.HasFile = true
		cmd.FileName = header.Filename
		cmd.ContentType = header.Header.Get("Content-Type")
		cmd.Data = data
	}

	doc, err := h.svc.Upload(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Message: "File uploaded successfully", Document: doc})
}

// ListDocuments handles GET /documents
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	writeJSON(w, http.StatusOK, documentsResponse{Documents: docs})
}

// GetDocument handles GET /documents/{id}
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DocumentFile handles GET /documents/{id}/file
func (h *Handler) DocumentFile(w http.ResponseWriter, r *http.Request) {
	doc, data, err := h.svc.File(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(doc.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DeleteDocument handles DELETE /documents/{id}
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, "Document deleted successfully")
}

// MarkDocumentMigrated handles POST /documents/{id}/mark-migrated
func (h *Handler) MarkDocumentMigrated(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkMigrated(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, "Document marked as migrated")
}

// ListQuotations handles GET /quotations
func (h *Handler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	qs, err := h.svc.ListQuotations(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if qs == nil {
		qs = []*models.Quotation{}
	}
	writeJSON(w, http.StatusOK, quotationsResponse{Quotations: qs})
}

// ListQuotationsByGroup handles GET /quotations/group/{id}
func (h *Handler) ListQuotationsByGroup(w http.ResponseWriter, r *http.Request) {
	qs, err := h.svc.ListQuotationsByGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quotationsResponse{Quotations: qs})
}

// GetQuotation handles GET /quotations/{id}
func (h *Handler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.GetQuotation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// MarkQuotationMigrated handles POST /quotations/{id}/mark-migrated
func (h *Handler) MarkQuotationMigrated(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkQuotationMigrated(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, "Quotation marked as migrated")
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := catalog.MapHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}
	writeError(w, status, catalog.PublicMessage(err))
}

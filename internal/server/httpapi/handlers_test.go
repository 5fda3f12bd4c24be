package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/doccatalog/internal/logging"
	"github.com/dmitrijs2005/doccatalog/internal/server/blob"
	"github.com/dmitrijs2005/doccatalog/internal/server/catalog"
	"github.com/dmitrijs2005/doccatalog/internal/server/models"
	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/repomanager"
)

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	m, err := repomanager.NewBoltRepositoryManager(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))

	svc := catalog.NewService(m, blob.NewMemoryStore(), logging.Discard())
	if opts.MaxUploadSize == 0 {
		opts.MaxUploadSize = 1 << 20
	}
	return NewRouter(svc, logging.Discard(), opts)
}

type part struct {
	name, value string
}

func multipartBody(t *testing.T, fileName string, data []byte, fields ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	for _, f := range fields {
		require.NoError(t, w.WriteField(f.name, f.value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func do(t *testing.T, h http.Handler, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func upload(t *testing.T, h http.Handler) *models.Document {
	t.Helper()
	body, ct := multipartBody(t, "memo.txt", []byte("first line\nsecond line"),
		part{"category", "memo"}, part{"company_to", "Globex"})
	rec := do(t, h, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[uploadResponse](t, rec)
	assert.Equal(t, "File uploaded successfully", resp.Message)
	require.NotNil(t, resp.Document)
	return resp.Document
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, Options{})
	rec := do(t, h, http.MethodGet, "/", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, healthMessage, decode[messageBody](t, rec).Message)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestUpload_Success(t *testing.T) {
	h := newTestRouter(t, Options{})
	doc := upload(t, h)

	assert.Equal(t, "memo.txt", doc.FileName)
	assert.Equal(t, "memo", doc.Category)
	assert.Equal(t, catalog.UnknownCompany, *doc.CompanyFrom)
	assert.Equal(t, "Globex", *doc.CompanyTo)
	assert.Equal(t, "first line\nsecond line", doc.FileText)
}

func TestUpload_Errors(t *testing.T) {
	h := newTestRouter(t, Options{})

	t.Run("no file part", func(t *testing.T) {
		body, ct := multipartBody(t, "", nil, part{"category", "memo"})
		rec := do(t, h, http.MethodPost, "/upload", body, ct)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file part", decode[errorBody](t, rec).Error)
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/upload", bytes.NewBufferString(`{}`), "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file part", decode[errorBody](t, rec).Error)
	})

	t.Run("missing category", func(t *testing.T) {
		body, ct := multipartBody(t, "a.txt", []byte("x"))
		rec := do(t, h, http.MethodPost, "/upload", body, ct)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing category", decode[errorBody](t, rec).Error)
	})
}

func TestUpload_TooLarge(t *testing.T) {
	h := newTestRouter(t, Options{MaxUploadSize: 1024})

	body, ct := multipartBody(t, "big.bin", bytes.Repeat([]byte("a"), 4096), part{"category", "memo"})
	rec := do(t, h, http.MethodPost, "/upload", body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "File too large", decode[errorBody](t, rec).Error)
}

func TestDocuments(t *testing.T) {
	h := newTestRouter(t, Options{})

	rec := do(t, h, http.MethodGet, "/documents", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"documents":[]}`, rec.Body.String())

	doc := upload(t, h)

	list := decode[documentsResponse](t, do(t, h, http.MethodGet, "/documents", nil, ""))
	require.Len(t, list.Documents, 1)
	assert.Equal(t, doc.ID, list.Documents[0].ID)

	rec = do(t, h, http.MethodGet, "/documents/"+doc.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doc.ID, decode[models.Document](t, rec).ID)

	rec = do(t, h, http.MethodGet, "/documents/"+doc.ID+"/file", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "first line\nsecond line", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `"memo.txt"`)

	rec = do(t, h, http.MethodPost, "/documents/"+doc.ID+"/mark-migrated", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Document marked as migrated", decode[messageBody](t, rec).Message)
	assert.True(t, decode[models.Document](t, do(t, h, http.MethodGet, "/documents/"+doc.ID, nil, "")).IsMigrated)

	rec = do(t, h, http.MethodDelete, "/documents/"+doc.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Document deleted successfully", decode[messageBody](t, rec).Message)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/documents/" + doc.ID},
		{http.MethodDelete, "/documents/" + doc.ID},
		{http.MethodPost, "/documents/" + doc.ID + "/mark-migrated"},
	} {
		rec = do(t, h, tc.method, tc.path, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
		assert.Equal(t, "Document not found", decode[errorBody](t, rec).Error)
	}
}

func TestQuotations(t *testing.T) {
	h := newTestRouter(t, Options{})
	doc := upload(t, h)

	rec := do(t, h, http.MethodGet, "/quotations/group/"+doc.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	group := decode[quotationsResponse](t, rec).Quotations
	require.Len(t, group, 1)
	assert.Equal(t, 0, group[0].SequenceNumber)
	assert.Equal(t, doc.ID, group[0].GroupID)

	all := decode[quotationsResponse](t, do(t, h, http.MethodGet, "/quotations", nil, "")).Quotations
	assert.Len(t, all, 1)

	id := group[0].ID
	rec = do(t, h, http.MethodGet, "/quotations/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode[models.Quotation](t, rec).ID)

	rec = do(t, h, http.MethodPost, "/quotations/"+id+"/mark-migrated", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Quotation marked as migrated", decode[messageBody](t, rec).Message)

	rec = do(t, h, http.MethodGet, "/quotations/group/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No quotations found for this group", decode[errorBody](t, rec).Error)

	rec = do(t, h, http.MethodGet, "/quotations/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Quotation not found", decode[errorBody](t, rec).Error)
}

func TestRouting(t *testing.T) {
	h := newTestRouter(t, Options{})

	rec := do(t, h, http.MethodGet, "/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode[errorBody](t, rec).Error)

	rec = do(t, h, http.MethodPut, "/documents", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t, Options{CORSOrigins: []string{"http://ui.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "http://ui.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://ui.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	open := newTestRouter(t, Options{CORSOrigins: []string{"*"}})
	rec = httptest.NewRecorder()
	open.ServeHTTP(rec, req)
	assert.Equal(t, "http://evil.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

type panickingCatalog struct{ Catalog }

func (panickingCatalog) List(context.Context) ([]*models.Document, error) {
	panic("boom")
}

func TestRecoverer(t *testing.T) {
	h := NewRouter(panickingCatalog{}, logging.Discard(), Options{RequestTimeout: time.Second})

	rec := do(t, h, http.MethodGet, "/documents", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "json", "info")
	m, err := repomanager.NewBoltRepositoryManager(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.RunMigrations(context.Background()))

	h := NewRouter(catalog.NewService(m, nil, logger), logger, Options{MaxUploadSize: 1 << 20})
	do(t, h, http.MethodGet, "/documents", nil, "")

	line := buf.String()
	assert.True(t, strings.Contains(line, `"msg":"request"`), line)
	assert.Contains(t, line, `"path":"/documents"`)
	assert.Contains(t, line, `"status":200`)
}

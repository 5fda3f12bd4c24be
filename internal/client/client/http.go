package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/doccatalog/internal/client/models"
)

const (
	opList           = "list documents"
	opGet            = "get document"
	opUpload         = "upload document"
	opRemove         = "delete document"
	opMarkMigrated   = "mark document migrated"
	opListQuotations = "list quotations"
	opPing           = "ping"

	maxErrorBody = 64 << 10
)

// HTTPClient talks to the catalog service over HTTP. It is safe for
// concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request. Zero means no limit. The client set by
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		c := *h.http
		c.Timeout = d
		h.http = &c
	}
}

// NewHTTPClient builds a client for the catalog service rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{baseURL: trimmed, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type documentsEnvelope struct {
	Documents []models.DocumentRecord `json:"documents"`
}

type uploadEnvelope struct {
	Message  string                 `json:"message"`
	Document *models.DocumentRecord `json:"document"`
}

type quotationsEnvelope struct {
	Quotations []models.Quotation `json:"quotations"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) List(ctx context.Context) ([]models.DocumentRecord, error) {
	var env documentsEnvelope
	if err := c.do(ctx, opList, http.MethodGet, "/documents", nil, "", &env); err != nil {
		return nil, err
	}
	if env.Documents == nil {
		return []models.DocumentRecord{}, nil
	}
	return env.Documents, nil
}

func (c *HTTPClient) Get(ctx context.Context, id string) (*models.DocumentRecord, error) {
	var doc models.DocumentRecord
	if err := c.do(ctx, opGet, http.MethodGet, "/documents/"+url.PathEscape(id), nil, "", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Upload sends the draft as a multipart submission. Callers must ensure the
// draft carries a file and a category; a missing one is a programming error
// and is reported as ErrValidation without contacting the server.
func (c *HTTPClient) Upload(ctx context.Context, draft models.UploadDraft) (*models.DocumentRecord, error) {
	if draft.File == nil || !draft.HasCategory() {
		return nil, &APIError{Kind: ErrValidation, Op: opUpload, Message: "file and category are required"}
	}

	body, contentType, err := encodeUpload(draft)
	if err != nil {
		return nil, &APIError{Kind: ErrValidation, Op: opUpload, Err: err}
	}

	var env uploadEnvelope
	if err := c.do(ctx, opUpload, http.MethodPost, "/upload", body, contentType, &env); err != nil {
		return nil, err
	}
	return env.Document, nil
}

func (c *HTTPClient) Remove(ctx context.Context, id string) error {
	return c.do(ctx, opRemove, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, "", nil)
}

func (c *HTTPClient) MarkMigrated(ctx context.Context, id string) error {
	return c.do(ctx, opMarkMigrated, http.MethodPost, "/documents/"+url.PathEscape(id)+"/mark-migrated", nil, "", nil)
}

func (c *HTTPClient) ListQuotations(ctx context.Context, groupID string) ([]models.Quotation, error) {
	var env quotationsEnvelope
	if err := c.do(ctx, opListQuotations, http.MethodGet, "/quotations/group/"+url.PathEscape(groupID), nil, "", &env); err != nil {
		return nil, err
	}
	if env.Quotations == nil {
		return []models.Quotation{}, nil
	}
	return env.Quotations, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, opPing, http.MethodGet, "/", nil, "", nil)
}

func encodeUpload(draft models.UploadDraft) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := draft.File.Name
	if name == "" {
		name = "upload.bin"
	}
	part, err := w.CreateFormFile(FieldFile, name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(draft.File.Data); err != nil {
		return nil, "", err
	}

	for _, f := range UploadFields(draft) {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// endpoint joins the base URL with an already-escaped path.
func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL + path
}

// do performs one round trip. A non-nil out is filled from a 2xx JSON body.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return &APIError{Kind: ErrTransport, Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: ErrTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &APIError{Kind: ErrTransport, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// mapError turns a non-success response into an *APIError, picking up the
// server's {"error": "..."} explanation when one is present.
func (c *HTTPClient) mapError(op string, resp *http.Response) error {
	apiErr := &APIError{
		Kind:   kindForStatus(op, resp.StatusCode),
		Op:     op,
		Status: resp.StatusCode,
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env errorEnvelope
	if len(data) > 0 && json.Unmarshal(data, &env) == nil {
		apiErr.Message = env.Error
		if apiErr.Message == "" {
			apiErr.Message = env.Message
		}
	}
	return apiErr
}

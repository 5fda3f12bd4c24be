package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/doccatalog/internal/logging"
	"github.com/dmitrijs2005/doccatalog/internal/server/blob"
	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/repomanager"
)

type failingBlobs struct {
	*blob.MemoryStore
	putErr error
}

func (f *failingBlobs) Put(ctx context.Context, key, contentType string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryStore.Put(ctx, key, contentType, data)
}

func newTestService(t *testing.T, blobs blob.Store) *Service {
	t.Helper()
	m, err := repomanager.NewBoltRepositoryManager(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))

	s := NewService(m, blobs, logging.Discard())
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func textUpload() UploadCommand {
	return UploadCommand{
		HasFile:     true,
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Data:        []byte("line one\nline two"),
		Category:    "  invoice ",
		CompanyFrom: "Acme",
	}
}

func TestUpload_StoresDocumentAndQuotations(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemoryStore()
	s := newTestService(t, blobs)

	doc, err := s.Upload(ctx, textUpload())
	require.NoError(t, err)

	assert.Equal(t, "00000000-0000-0000-0000-000000000001", doc.ID)
	assert.Equal(t, "notes.txt", doc.FileName)
	assert.Equal(t, "invoice", doc.Category)
	assert.Equal(t, "Acme", *doc.CompanyFrom)
	assert.Equal(t, UnknownCompany, *doc.CompanyTo)
	assert.Equal(t, "line one\nline two", doc.FileText)
	assert.Nil(t, doc.PageCount)
	assert.Equal(t, int64(17), doc.Size)
	assert.NotEmpty(t, doc.BlobKey)

	stored, err := s.Get(ctx, doc.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, stored); diff != "" {
		t.Errorf("stored document mismatch (-want +got):\n%s", diff)
	}

	data, err := blobs.Get(ctx, doc.BlobKey)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", string(data))

	qs, err := s.ListQuotationsByGroup(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, 0, qs[0].SequenceNumber)
	assert.Equal(t, "text", qs[0].ContentType)
	assert.Equal(t, doc.FileText, qs[0].FileText)
	assert.Equal(t, "invoice", qs[0].Category)
}

func TestUpload_Validation(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.Upload(context.Background(), UploadCommand{Category: "x"})
	assert.ErrorIs(t, err, ErrNoFile)
	assert.ErrorIs(t, err, ErrValidation)

	cmd := textUpload()
	cmd.Category = "   "
	_, err = s.Upload(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrMissingCategory)

	docs, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUpload_CustomNameAndInlineText(t *testing.T) {
	s := newTestService(t, nil)

	cmd := textUpload()
	cmd.FileName = `C:\scans\..\raw.bin`
	cmd.ContentType = "application/octet-stream"
	cmd.Data = []byte{0x00, 0x01, 0x02}
	cmd.CustomFileName = "Contract 7"
	cmd.FileText = "hello"

	doc, err := s.Upload(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "Contract 7", doc.FileName)
	assert.Equal(t, "hello", doc.FileText)
	assert.Empty(t, doc.BlobKey)
}

func TestUpload_BinaryWithoutTextHasNoQuotations(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	cmd := textUpload()
	cmd.ContentType = ""
	cmd.Data = []byte{0x00, 0xff, 0x10}

	doc, err := s.Upload(ctx, cmd)
	require.NoError(t, err)
	assert.Empty(t, doc.FileText)

	_, err = s.ListQuotationsByGroup(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestUpload_InvalidPDFHasNoPageCount(t *testing.T) {
	s := newTestService(t, nil)

	cmd := textUpload()
	cmd.ContentType = ""
	cmd.Data = []byte("%PDF-1.7\nnot really a pdf")

	doc, err := s.Upload(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Nil(t, doc.PageCount)
}

func TestUpload_BlobFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("bucket down")
	s := newTestService(t, &failingBlobs{MemoryStore: blob.NewMemoryStore(), putErr: boom})

	_, err := s.Upload(ctx, textUpload())
	require.ErrorIs(t, err, boom)

	docs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUpload_LongTextIsChunked(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)
	s.chunkSize = 10

	cmd := textUpload()
	cmd.FileText = "aaaaa\nbbbbb\nccccc"

	doc, err := s.Upload(ctx, cmd)
	require.NoError(t, err)

	qs, err := s.ListQuotationsByGroup(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "aaaaa\nbbbbb", qs[0].FileText)
	assert.Equal(t, "ccccc", qs[1].FileText)
	assert.Equal(t, 1, qs[1].SequenceNumber)
}

func TestDelete_RemovesQuotationsAndBlob(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemoryStore()
	s := newTestService(t, blobs)

	doc, err := s.Upload(ctx, textUpload())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, doc.ID))

	_, err = s.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ListQuotationsByGroup(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrEmptyGroup)
	_, err = blobs.Get(ctx, doc.BlobKey)
	assert.ErrorIs(t, err, blob.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, doc.ID), ErrNotFound)
}

func TestMarkMigrated(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	doc, err := s.Upload(ctx, textUpload())
	require.NoError(t, err)

	require.NoError(t, s.MarkMigrated(ctx, doc.ID))
	got, err := s.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, got.IsMigrated)

	assert.ErrorIs(t, s.MarkMigrated(ctx, "missing"), ErrNotFound)
}

func TestQuotationOperations(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	doc, err := s.Upload(ctx, textUpload())
	require.NoError(t, err)

	all, err := s.ListQuotations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	q, err := s.GetQuotation(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, q.GroupID)

	require.NoError(t, s.MarkQuotationMigrated(ctx, q.ID))
	q, err = s.GetQuotation(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, q.IsMigrated)

	_, err = s.GetQuotation(ctx, "missing")
	assert.ErrorIs(t, err, ErrQuotationNotFound)
	assert.ErrorIs(t, s.MarkQuotationMigrated(ctx, "missing"), ErrQuotationNotFound)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No expectations: any query reaching the database fails the test.
	s := NewService(repomanager.NewPostgresRepositoryManagerFromDB(db), nil, logging.Discard())

	_, err = s.Get(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = s.File(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "999"), ErrNotFound)
	assert.ErrorIs(t, s.MarkMigrated(ctx, "999"), ErrNotFound)

	_, err = s.ListQuotationsByGroup(ctx, "999")
	assert.ErrorIs(t, err, ErrEmptyGroup)
	_, err = s.GetQuotation(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrQuotationNotFound)
	assert.ErrorIs(t, s.MarkQuotationMigrated(ctx, "not-a-uuid"), ErrQuotationNotFound)

	assert.Equal(t, 404, MapHTTPStatus(ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFile(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, blob.NewMemoryStore())

	doc, err := s.Upload(ctx, textUpload())
	require.NoError(t, err)

	got, data, err := s.File(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "line one\nline two", string(data))

	_, _, err = s.File(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	noBlobs := newTestService(t, nil)
	doc, err = noBlobs.Upload(ctx, textUpload())
	require.NoError(t, err)
	_, _, err = noBlobs.File(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrFileNotStored)
}

func TestDocumentFileName(t *testing.T) {
	tests := []struct {
		name string
		cmd  UploadCommand
		want string
	}{
		{"plain", UploadCommand{FileName: "a.pdf"}, "a.pdf"},
		{"path stripped", UploadCommand{FileName: "../../etc/passwd"}, "passwd"},
		{"windows path", UploadCommand{FileName: `C:\docs\b.pdf`}, "b.pdf"},
		{"empty", UploadCommand{}, "upload.bin"},
		{"custom wins", UploadCommand{FileName: "a.pdf", CustomFileName: " Deal "}, "Deal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documentFileName(tt.cmd))
		})
	}
}

func TestDocumentText(t *testing.T) {
	assert.Equal(t, "inline", documentText("inline", "text/plain", []byte("file")))
	assert.Equal(t, "file", documentText("", "text/plain; charset=utf-8", []byte("file")))
	assert.Equal(t, "", documentText("", "application/pdf", []byte("%PDF")))
	assert.Equal(t, "", documentText("", "text/plain", []byte{0xff, 0xfe}))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "text/csv", detectContentType("text/csv", nil))
	assert.Equal(t, "application/pdf", detectContentType("application/octet-stream", []byte("%PDF-1.4")))
	assert.True(t, strings.HasPrefix(detectContentType("", []byte("hello")), "text/plain"))
}


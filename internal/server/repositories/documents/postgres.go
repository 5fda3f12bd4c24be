package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doccatalog/internal/common"
	"github.com/dmitrijs2005/doccatalog/internal/dbx"
	"github.com/dmitrijs2005/doccatalog/internal/server/models"
)

// PostgresRepository implements document storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, file_name, category, company_from, company_to, file_text, page_count,
	content_type, size, blob_key, is_elastic_migrated, created_at`

// Create inserts a new document row.
func (r *PostgresRepository) Create(ctx context.Context, d *models.Document) error {
	query := `
		INSERT INTO documents (id, file_name, category, company_from, company_to, file_text, page_count,
			content_type, size, blob_key, is_elastic_migrated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	var pageCount sql.NullInt64
	if d.PageCount != nil {
		pageCount = sql.NullInt64{Int64: int64(*d.PageCount), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.FileName, d.Category, nullString(d.CompanyFrom), nullString(d.CompanyTo), d.FileText, pageCount,
		d.ContentType, d.Size, d.BlobKey, d.IsMigrated, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// List returns every document ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a single document by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents WHERE id = $1`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// Delete removes a document row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM documents WHERE id = $1`, id)
}

// MarkMigrated sets is_elastic_migrated. Repeating it on a migrated row is
// not an error.
func (r *PostgresRepository) MarkMigrated(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE documents SET is_elastic_migrated = TRUE WHERE id = $1`, id)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*models.Document, error) {
	var (
		d         models.Document
		from, to  sql.NullString
		pageCount sql.NullInt64
	)
	if err := s.Scan(&d.ID, &d.FileName, &d.Category, &from, &to, &d.FileText, &pageCount,
		&d.ContentType, &d.Size, &d.BlobKey, &d.IsMigrated, &d.CreatedAt); err != nil {
		return nil, err
	}
	if from.Valid {
		d.CompanyFrom = &from.String
	}
	if to.Valid {
		d.CompanyTo = &to.String
	}
	if pageCount.Valid {
		n := int(pageCount.Int64)
		d.PageCount = &n
	}
	return &d, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

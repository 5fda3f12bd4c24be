package quotations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doccatalog/internal/common"
	"github.com/dmitrijs2005/doccatalog/internal/dbx"
	"github.com/dmitrijs2005/doccatalog/internal/server/models"
)

// PostgresRepository implements quotation storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, group_id, sequence_number, category, company_from, company_to, file_name,
	file_text, content_type, is_astra_migrated, created_at`

// CreateBatch inserts every quotation. Use inside dbx.WithTx to make the
// batch atomic.
func (r *PostgresRepository) CreateBatch(ctx context.Context, qs []*models.Quotation) error {
	query := `
		INSERT INTO quotations (id, group_id, sequence_number, category, company_from, company_to, file_name,
			file_text, content_type, is_astra_migrated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, q := range qs {
		_, err := r.db.ExecContext(ctx, query,
			q.ID, q.GroupID, q.SequenceNumber, q.Category, nullString(q.CompanyFrom), nullString(q.CompanyTo),
			q.FileName, q.FileText, q.ContentType, q.IsMigrated, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Quotation, error) {
	return r.query(ctx, `SELECT `+selectColumns+` FROM quotations ORDER BY group_id, sequence_number`)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]*models.Quotation, error) {
	return r.query(ctx, `SELECT `+selectColumns+` FROM quotations WHERE group_id = $1 ORDER BY sequence_number`, groupID)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Quotation, error) {
	q, err := scanQuotation(r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM quotations WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) DeleteByGroup(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quotations WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) MarkMigrated(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE quotations SET is_astra_migrated = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Quotation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select quotations: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Quotation, 0)
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuotation(s scanner) (*models.Quotation, error) {
	var (
		q        models.Quotation
		from, to sql.NullString
	)
	if err := s.Scan(&q.ID, &q.GroupID, &q.SequenceNumber, &q.Category, &from, &to, &q.FileName,
		&q.FileText, &q.ContentType, &q.IsMigrated, &q.CreatedAt); err != nil {
		return nil, err
	}
	if from.Valid {
		q.CompanyFrom = &from.String
	}
	if to.Valid {
		q.CompanyTo = &to.String
	}
	return &q, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

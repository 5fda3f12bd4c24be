// Package models defines server-side data models persisted by the catalog
// repositories.
package models

import "time"

// Document is one catalog entry. The uploaded bytes themselves live in the
// blob store under BlobKey (empty when archiving is disabled).
type Document struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	Category    string    `json:"category"`
	CompanyFrom *string   `json:"company_from"`
	CompanyTo   *string   `json:"company_to"`
	FileText    string    `json:"file_text"`
	PageCount   *int      `json:"page_count,omitempty"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	BlobKey     string    `json:"blob_key,omitempty"`
	IsMigrated  bool      `json:"is_elastic_migrated"`
	CreatedAt   time.Time `json:"created_at"`
}

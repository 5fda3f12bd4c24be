package models

import "time"

// Quotation is one ordered section of a document's text. All quotations of
// a document share its ID as GroupID.
type Quotation struct {
	ID             string    `json:"id"`
	GroupID        string    `json:"group_id"`
	SequenceNumber int       `json:"sequence_number"`
	Category       string    `json:"category"`
	CompanyFrom    *string   `json:"company_from"`
	CompanyTo      *string   `json:"company_to"`
	FileName       string    `json:"file_name"`
	FileText       string    `json:"file_text"`
	ContentType    string    `json:"content_type"`
	IsMigrated     bool      `json:"is_astra_migrated"`
	CreatedAt      time.Time `json:"created_at"`
}

// Package models defines the client-side catalog types: server-assigned
// document records, the local upload draft and quotations.
package models

import (
	"fmt"
	"strings"
)

// UnknownCompany is shown in place of an absent company name.
const UnknownCompany = "unknown"

// DocumentRecord is a catalog entry as reported by the catalog service.
// It is read-only on the client; IsMigrated only ever moves from false to true.
type DocumentRecord struct {
	ID          string  `json:"id"`
	FileName    string  `json:"file_name"`
	Category    string  `json:"category"`
	CompanyFrom *string `json:"company_from"`
	CompanyTo   *string `json:"company_to"`
	FileText    string  `json:"file_text,omitempty"`
	PageCount   *int    `json:"page_count,omitempty"`
	IsMigrated  bool    `json:"is_elastic_migrated"`
}

// From returns the originating company or UnknownCompany.
func (d DocumentRecord) From() string {
	return companyOrUnknown(d.CompanyFrom)
}

// To returns the receiving company or UnknownCompany.
func (d DocumentRecord) To() string {
	return companyOrUnknown(d.CompanyTo)
}

// MigrationStatus is the human label of the migrated flag.
func (d DocumentRecord) MigrationStatus() string {
	if d.IsMigrated {
		return "Migrated"
	}
	return "Pending"
}

func (d DocumentRecord) String() string {
	return fmt.Sprintf("%s %s [%s] %s -> %s (%s)", d.ID, d.FileName, d.Category, d.From(), d.To(), d.MigrationStatus())
}

func companyOrUnknown(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return UnknownCompany
	}
	return *s
}

// Ptr is a small helper for optional string fields.
func Ptr(s string) *string {
	return &s
}

package client

import (
	"strings"

	"github.com/dmitrijs2005/doccatalog/internal/client/models"
)

// Multipart field names of the upload request.
const (
	FieldFile        = "file"
	FieldCategory    = "category"
	FieldCompanyFrom = "company_from"
	FieldCompanyTo   = "company_to"
	FieldFileName    = "file_name"
	FieldFileText    = "file_text"
)

// FormField is one non-file multipart field.
type FormField struct {
	Name  string
	Value string
}

// UploadFields maps a draft to the text fields sent with the upload, in wire
// order. category is always present; optional fields are present only when
// non-empty and are otherwise omitted entirely.
func UploadFields(d models.UploadDraft) []FormField {
	fields := []FormField{{Name: FieldCategory, Value: strings.TrimSpace(d.Category)}}

	optional := []FormField{
		{Name: FieldCompanyTo, Value: d.CompanyTo},
		{Name: FieldCompanyFrom, Value: d.CompanyFrom},
		{Name: FieldFileName, Value: d.CustomFileName},
		{Name: FieldFileText, Value: d.InlineText},
	}
	for _, f := range optional {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

package models

import "strings"

// FileRef is the binary content selected for upload.
type FileRef struct {
	Name string
	Data []byte
}

// Size returns the content length in bytes.
func (f *FileRef) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

// UploadDraft is the local, unsaved state of an upload. It is never persisted.
type UploadDraft struct {
	File           *FileRef
	Category       string
	CompanyFrom    string
	CompanyTo      string
	CustomFileName string
	InlineText     string
}

// HasFile reports whether a file with a name has been selected.
func (d UploadDraft) HasFile() bool {
	return d.File != nil && d.File.Name != ""
}

// HasCategory reports whether the category is non-empty after trimming.
func (d UploadDraft) HasCategory() bool {
	return strings.TrimSpace(d.Category) != ""
}

// IsEmpty reports whether every field is unset.
func (d UploadDraft) IsEmpty() bool {
	return d.File == nil &&
		d.Category == "" &&
		d.CompanyFrom == "" &&
		d.CompanyTo == "" &&
		d.CustomFileName == "" &&
		d.InlineText == ""
}

package models

// Quotation is one ordered section of a document's extracted content.
type Quotation struct {
	ID             string `json:"id"`
	GroupID        string `json:"group_id"`
	SequenceNumber int    `json:"sequence_number"`
	Text           string `json:"file_text"`
	ContentType    string `json:"content_type"`
	IsMigrated     bool   `json:"is_astra_migrated"`
}

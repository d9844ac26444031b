package model

import "time"

// Document status values. A document is "extracted" only while its
// extracted text is non-empty.
const (
	StatusUploaded  = "uploaded"
	StatusExtracted = "extracted"
)

// Document represents an uploaded PDF and its extracted text.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	MimeType      string    `json:"mime_type"`
	SizeBytes     int64     `json:"size_bytes"`
	StoragePath   string    `json:"storage_path"`
	ExtractedText string    `json:"extracted_text"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// StatusForText returns the document status implied by the given extracted text.
func StatusForText(text string) string {
	if text != "" {
		return StatusExtracted
	}
	return StatusUploaded
}

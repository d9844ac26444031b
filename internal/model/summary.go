package model

import "time"

// SummaryVersion is one generated Markdown summary of a document. A document
// keeps every generated version; at most one of them is current.
type SummaryVersion struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"document_id"`
	ContentMarkdown string    `json:"content_markdown"`
	Language        string    `json:"language"`
	Length          string    `json:"length"`
	Tone            string    `json:"tone"`
	IsCurrent       bool      `json:"is_current"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SummaryOptions are the generation options frozen into each summary version.
type SummaryOptions struct {
	Language string `json:"language" validate:"required,min=2,max=40"`
	Length   string `json:"length" validate:"required,oneof=short medium long"`
	Tone     string `json:"tone" validate:"required,oneof=neutral professional simple"`
}

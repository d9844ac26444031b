package repository

import (
	"context"

	"docsummary/internal/model"
)

// SummaryRepository defines data access for summary versions.
type SummaryRepository interface {
	// CreateAsCurrent archives the current version of the document (if any) and
	// inserts the given version with is_current=true. Both writes happen inside
	// a single transaction so a document never ends up with two current versions
	// or none after a partial failure.
	CreateAsCurrent(ctx context.Context, sv *model.SummaryVersion) (*model.SummaryVersion, error)

	// FindByID returns a summary version by its ID.
	FindByID(ctx context.Context, id string) (*model.SummaryVersion, error)

	// FindCurrentByDocument returns the current summary version for a document,
	// or sql.ErrNoRows when the document has none.
	FindCurrentByDocument(ctx context.Context, documentID string) (*model.SummaryVersion, error)

	// UpdateContent replaces content_markdown in place and bumps updated_at.
	// Options and currency are untouched.
	UpdateContent(ctx context.Context, id string, contentMarkdown string) (*model.SummaryVersion, error)

	// DeleteByDocument removes all summary versions of a document.
	DeleteByDocument(ctx context.Context, documentID string) error
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docsummary/internal/model"
	"docsummary/internal/repository"
)

// SummaryPostgres is a PostgreSQL implementation of repository.SummaryRepository.
type SummaryPostgres struct {
	db *sql.DB
}

// NewSummaryPostgres creates a new SummaryPostgres repository.
func NewSummaryPostgres(db *sql.DB) *SummaryPostgres {
	return &SummaryPostgres{db: db}
}

var _ repository.SummaryRepository = (*SummaryPostgres)(nil)

const summaryColumns = `id, document_id, content_markdown, language, length, tone, is_current, created_at, updated_at`

func scanSummary(row interface{ Scan(dest ...any) error }) (*model.SummaryVersion, error) {
	var sv model.SummaryVersion
	if err := row.Scan(
		&sv.ID,
		&sv.DocumentID,
		&sv.ContentMarkdown,
		&sv.Language,
		&sv.Length,
		&sv.Tone,
		&sv.IsCurrent,
		&sv.CreatedAt,
		&sv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sv, nil
}

// CreateAsCurrent archives the previous current version and inserts the new one
// inside one transaction. The archive update is a no-op when the document has
// no current version yet.
func (r *SummaryPostgres) CreateAsCurrent(ctx context.Context, sv *model.SummaryVersion) (*model.SummaryVersion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const qUnset = `
		UPDATE summary_versions
		SET is_current = FALSE, updated_at = $2
		WHERE document_id = $1 AND is_current = TRUE
	`
	if _, err := tx.ExecContext(ctx, qUnset, sv.DocumentID, sv.UpdatedAt); err != nil {
		return nil, fmt.Errorf("archive previous summary version: %w", err)
	}

	const qInsert = `
		INSERT INTO summary_versions (id, document_id, content_markdown, language, length, tone, is_current, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
		RETURNING ` + summaryColumns
	row := tx.QueryRowContext(ctx, qInsert,
		sv.ID,
		sv.DocumentID,
		sv.ContentMarkdown,
		sv.Language,
		sv.Length,
		sv.Tone,
		sv.CreatedAt,
		sv.UpdatedAt,
	)
	out, err := scanSummary(row)
	if err != nil {
		return nil, fmt.Errorf("insert summary version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return out, nil
}

// FindByID fetches a single summary version by its ID.
func (r *SummaryPostgres) FindByID(ctx context.Context, id string) (*model.SummaryVersion, error) {
	const q = `
		SELECT ` + summaryColumns + `
		FROM summary_versions
		WHERE id = $1
	`
	return scanSummary(r.db.QueryRowContext(ctx, q, id))
}

// FindCurrentByDocument fetches the single current version of a document.
func (r *SummaryPostgres) FindCurrentByDocument(ctx context.Context, documentID string) (*model.SummaryVersion, error) {
	const q = `
		SELECT ` + summaryColumns + `
		FROM summary_versions
		WHERE document_id = $1 AND is_current = TRUE
	`
	return scanSummary(r.db.QueryRowContext(ctx, q, documentID))
}

// UpdateContent replaces content_markdown in place and bumps updated_at.
func (r *SummaryPostgres) UpdateContent(ctx context.Context, id string, contentMarkdown string) (*model.SummaryVersion, error) {
	const q = `
		UPDATE summary_versions
		SET content_markdown = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + summaryColumns
	return scanSummary(r.db.QueryRowContext(ctx, q, id, contentMarkdown))
}

// DeleteByDocument removes all summary versions of a document.
func (r *SummaryPostgres) DeleteByDocument(ctx context.Context, documentID string) error {
	const q = `DELETE FROM summary_versions WHERE document_id = $1`
	_, err := r.db.ExecContext(ctx, q, documentID)
	return err
}

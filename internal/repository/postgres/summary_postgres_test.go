package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docsummary/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaryColumnNames = []string{"id", "document_id", "content_markdown", "language", "length", "tone", "is_current", "created_at", "updated_at"}

func summaryRow(sv *model.SummaryVersion) *sqlmock.Rows {
	return sqlmock.NewRows(summaryColumnNames).
		AddRow(sv.ID, sv.DocumentID, sv.ContentMarkdown, sv.Language, sv.Length, sv.Tone, sv.IsCurrent, sv.CreatedAt, sv.UpdatedAt)
}

func sampleSummary(now time.Time) *model.SummaryVersion {
	return &model.SummaryVersion{
		ID:              "sv-1",
		DocumentID:      "doc-1",
		ContentMarkdown: "# Summary",
		Language:        "English",
		Length:          "medium",
		Tone:            "neutral",
		IsCurrent:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestSummaryPostgres_CreateAsCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSummaryPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("archives previous current and inserts new one", func(t *testing.T) {
		sv := sampleSummary(now)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE summary_versions").
			WithArgs(sv.DocumentID, sv.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO summary_versions").
			WithArgs(sv.ID, sv.DocumentID, sv.ContentMarkdown, sv.Language, sv.Length, sv.Tone, sv.CreatedAt, sv.UpdatedAt).
			WillReturnRows(summaryRow(sv))
		mock.ExpectCommit()

		out, err := repo.CreateAsCurrent(ctx, sv)

		assert.NoError(t, err)
		assert.True(t, out.IsCurrent)
		assert.Equal(t, sv.ID, out.ID)
	})

	t.Run("first version for document", func(t *testing.T) {
		sv := sampleSummary(now)

		mock.ExpectBegin()
		// No current version yet; the archive update touches zero rows.
		mock.ExpectExec("UPDATE summary_versions").
			WithArgs(sv.DocumentID, sv.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("INSERT INTO summary_versions").
			WithArgs(sv.ID, sv.DocumentID, sv.ContentMarkdown, sv.Language, sv.Length, sv.Tone, sv.CreatedAt, sv.UpdatedAt).
			WillReturnRows(summaryRow(sv))
		mock.ExpectCommit()

		out, err := repo.CreateAsCurrent(ctx, sv)

		assert.NoError(t, err)
		assert.True(t, out.IsCurrent)
	})

	t.Run("rolls back when insert fails", func(t *testing.T) {
		sv := sampleSummary(now)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE summary_versions").
			WithArgs(sv.DocumentID, sv.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO summary_versions").
			WithArgs(sv.ID, sv.DocumentID, sv.ContentMarkdown, sv.Language, sv.Length, sv.Tone, sv.CreatedAt, sv.UpdatedAt).
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		out, err := repo.CreateAsCurrent(ctx, sv)

		assert.Error(t, err)
		assert.Nil(t, out)
		assert.Contains(t, err.Error(), "insert summary version")
	})

	t.Run("rolls back when archive update fails", func(t *testing.T) {
		sv := sampleSummary(now)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE summary_versions").
			WithArgs(sv.DocumentID, sv.UpdatedAt).
			WillReturnError(errors.New("update failed"))
		mock.ExpectRollback()

		out, err := repo.CreateAsCurrent(ctx, sv)

		assert.Error(t, err)
		assert.Nil(t, out)
		assert.Contains(t, err.Error(), "archive previous summary version")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSummaryPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		sv := sampleSummary(time.Now())
		mock.ExpectQuery("SELECT (.+) FROM summary_versions WHERE id = ?").
			WithArgs("sv-1").
			WillReturnRows(summaryRow(sv))

		got, err := repo.FindByID(ctx, "sv-1")

		assert.NoError(t, err)
		assert.Equal(t, "sv-1", got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM summary_versions WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryPostgres_FindCurrentByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSummaryPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		sv := sampleSummary(time.Now())
		mock.ExpectQuery("SELECT (.+) FROM summary_versions WHERE document_id = (.+) AND is_current = TRUE").
			WithArgs("doc-1").
			WillReturnRows(summaryRow(sv))

		got, err := repo.FindCurrentByDocument(ctx, "doc-1")

		assert.NoError(t, err)
		assert.True(t, got.IsCurrent)
	})

	t.Run("no current version", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM summary_versions WHERE document_id = (.+) AND is_current = TRUE").
			WithArgs("doc-2").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindCurrentByDocument(ctx, "doc-2")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryPostgres_UpdateContent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSummaryPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		sv := sampleSummary(time.Now())
		sv.ContentMarkdown = "# Edited"

		mock.ExpectQuery("UPDATE summary_versions").
			WithArgs("sv-1", "# Edited").
			WillReturnRows(summaryRow(sv))

		got, err := repo.UpdateContent(ctx, "sv-1", "# Edited")

		assert.NoError(t, err)
		assert.Equal(t, "# Edited", got.ContentMarkdown)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE summary_versions").
			WithArgs("missing", "# Edited").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.UpdateContent(ctx, "missing", "# Edited")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryPostgres_DeleteByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSummaryPostgres(db)
	ctx := context.Background()

	t.Run("deletes all versions", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM summary_versions").
			WithArgs("doc-1").
			WillReturnResult(sqlmock.NewResult(0, 3))

		assert.NoError(t, repo.DeleteByDocument(ctx, "doc-1"))
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM summary_versions").
			WithArgs("doc-1").
			WillReturnError(errors.New("db down"))

		assert.Error(t, repo.DeleteByDocument(ctx, "doc-1"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  file_name      TEXT        NOT NULL,
  mime_type      TEXT        NOT NULL,
  size_bytes     BIGINT      NOT NULL CHECK (size_bytes >= 0),
  storage_path   TEXT        NOT NULL UNIQUE,
  extracted_text TEXT        NOT NULL DEFAULT '',
  status         TEXT        NOT NULL DEFAULT 'uploaded' CHECK (status IN ('uploaded', 'extracted')),
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_summary_versions",
		SQL: `CREATE TABLE IF NOT EXISTS summary_versions (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id      UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  content_markdown TEXT        NOT NULL,
  language         TEXT        NOT NULL,
  length           TEXT        NOT NULL,
  tone             TEXT        NOT NULL,
  is_current       BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	},
	{
		Name: "create_index_summary_versions_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_summary_versions_document_id ON summary_versions (document_id);`,
	},
	{
		Name: "create_index_summary_versions_current",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_summary_versions_current ON summary_versions (document_id) WHERE is_current;`,
	},
}

// EnsureMigrated checks whether the documents table exists and runs the
// migration steps if it doesn't. Steps are idempotent so a partial prior run
// is safe to repeat.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	dbLog := log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	dbLog.Info().Str("event", "db_migration_check").Msg("checking schema")

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		dbLog.Error().
			Str("event", "db_migration_failed").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		dbLog.Info().
			Str("event", "db_migration_skip").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	dbLog.Info().Str("event", "db_migration_start").Msg("running migration")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			dbLog.Error().
				Str("event", "db_migration_failed").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		dbLog.Info().
			Str("event", "db_migration_step").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("migration step applied")
	}

	dbLog.Info().
		Str("event", "db_migration_success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("migration complete")

	return nil
}

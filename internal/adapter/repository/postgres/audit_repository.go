package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/user/log-extractor/internal/domain"
)

// AuditRepository implements domain.AuditRepository on PostgreSQL,
// recording one row per completed extraction query.
type AuditRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAuditRepository creates a new PostgreSQL audit repository.
func NewAuditRepository(db *sql.DB, logger *slog.Logger) *AuditRepository {
	return &AuditRepository{db: db, logger: logger.With("component", "postgres_audit")}
}

// EnsureSchema creates the audit table if it does not exist.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS extraction_queries (
			query_id    UUID PRIMARY KEY,
			date_key    TEXT NOT NULL,
			lines       INTEGER NOT NULL,
			bytes       BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			queried_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure audit schema: %w", err)
	}
	return nil
}

// RecordQuery inserts one audit row. Inserting the same query ID twice is
// idempotent.
func (r *AuditRepository) RecordQuery(ctx context.Context, record domain.QueryRecord) error {
	const query = `
		INSERT INTO extraction_queries (query_id, date_key, lines, bytes, duration_ms)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (query_id) DO NOTHING;
	`
	_, err := r.db.ExecContext(ctx, query,
		record.QueryID, record.DateKey, record.Lines, record.Bytes, record.DurationMS)
	if err != nil {
		return fmt.Errorf("failed to record extraction query %s: %w", record.QueryID, err)
	}
	return nil
}

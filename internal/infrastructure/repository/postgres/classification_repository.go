package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
)

// ClassificationRepository persists classification outcomes, the system of
// record downstream metadata writers read from.
type ClassificationRepository struct {
	db *sql.DB
}

func NewClassificationRepository(db *sql.DB) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ClassificationRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS classification_records (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	category TEXT NOT NULL,
	doc_type TEXT NOT NULL,
	confidence_score DOUBLE PRECISION NOT NULL,
	confidence_level TEXT NOT NULL,
	model_used TEXT NOT NULL,
	needs_human_review BOOLEAN NOT NULL,
	uncertainty_flags JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_classification_records_document_id ON classification_records(document_id);
CREATE INDEX IF NOT EXISTS idx_classification_records_needs_review ON classification_records(needs_human_review) WHERE needs_human_review;
CREATE INDEX IF NOT EXISTS idx_classification_records_created_at ON classification_records(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ClassificationRepository) SaveResult(ctx context.Context, record *domain.ClassificationRecord) error {
	flagsJSON, err := json.Marshal(record.UncertaintyFlags)
	if err != nil {
		return fmt.Errorf("marshal uncertainty flags: %w", err)
	}
	if record.UncertaintyFlags == nil {
		flagsJSON = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO classification_records (
	id, document_id, filename, category, doc_type, confidence_score, confidence_level, model_used, needs_human_review, uncertainty_flags, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
	category = EXCLUDED.category,
	doc_type = EXCLUDED.doc_type,
	confidence_score = EXCLUDED.confidence_score,
	confidence_level = EXCLUDED.confidence_level,
	model_used = EXCLUDED.model_used,
	needs_human_review = EXCLUDED.needs_human_review,
	uncertainty_flags = EXCLUDED.uncertainty_flags
`,
		record.ID, record.DocumentID, record.Filename, record.Category, record.DocType,
		record.ConfidenceScore, string(record.ConfidenceLevel), string(record.ModelUsed),
		record.NeedsHumanReview, flagsJSON, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert classification record: %w", err)
	}
	return nil
}

// PendingReview lists the most recent records flagged for a human pass.
func (r *ClassificationRepository) PendingReview(ctx context.Context, limit int) ([]domain.ClassificationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, filename, category, doc_type, confidence_score, confidence_level, model_used, needs_human_review, uncertainty_flags, created_at
FROM classification_records
WHERE needs_human_review
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending review: %w", err)
	}
	defer rows.Close()

	var records []domain.ClassificationRecord
	for rows.Next() {
		var rec domain.ClassificationRecord
		var level, model string
		var flagsRaw []byte
		err := rows.Scan(
			&rec.ID, &rec.DocumentID, &rec.Filename, &rec.Category, &rec.DocType,
			&rec.ConfidenceScore, &level, &model, &rec.NeedsHumanReview, &flagsRaw, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan classification record: %w", err)
		}
		if err := json.Unmarshal(flagsRaw, &rec.UncertaintyFlags); err != nil {
			return nil, fmt.Errorf("unmarshal uncertainty flags: %w", err)
		}
		rec.ConfidenceLevel = domain.ConfidenceLevel(level)
		rec.ModelUsed = domain.ModelUsed(model)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classification records: %w", err)
	}
	return records, nil
}

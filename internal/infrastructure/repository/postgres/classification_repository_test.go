package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*ClassificationRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &ClassificationRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestEnsureSchemaCommitsDDLUnderAdvisoryLock(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(int64(2026083001)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS classification_records").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveResultInsertsRecord(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	record := &domain.ClassificationRecord{
		ID:               "rec-1",
		DocumentID:       "doc-1",
		Filename:         "motion_to_reopen.pdf",
		Category:         "Immigration Appeals & Motions",
		DocType:          "Motion (Court Filing)",
		ConfidenceScore:  0.85,
		ConfidenceLevel:  domain.ConfidenceHigh,
		ModelUsed:        domain.ModelPrimary,
		NeedsHumanReview: false,
		UncertaintyFlags: []string{"possible OCR quality issues detected"},
		CreatedAt:        now,
	}

	mock.ExpectExec("INSERT INTO classification_records").
		WithArgs(
			"rec-1", "doc-1", "motion_to_reopen.pdf",
			"Immigration Appeals & Motions", "Motion (Court Filing)",
			0.85, "High", "primary", false,
			[]byte(`["possible OCR quality issues detected"]`), now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveResult(context.Background(), record); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveResultStoresEmptyFlagsAsEmptyArray(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	record := &domain.ClassificationRecord{
		ID:              "rec-2",
		DocumentID:      "doc-2",
		Filename:        "contract.pdf",
		Category:        "Business & Corporate",
		DocType:         "Contract Agreement",
		ConfidenceScore: 0.92,
		ConfidenceLevel: domain.ConfidenceHigh,
		ModelUsed:       domain.ModelPrimary,
		CreatedAt:       now,
	}

	mock.ExpectExec("INSERT INTO classification_records").
		WithArgs(
			"rec-2", "doc-2", "contract.pdf",
			"Business & Corporate", "Contract Agreement",
			0.92, "High", "primary", false,
			[]byte(`[]`), now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveResult(context.Background(), record); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveResultSurfacesExecError(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO classification_records").
		WillReturnError(errors.New("connection reset"))

	err := repo.SaveResult(context.Background(), &domain.ClassificationRecord{
		ID:        "rec-3",
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPendingReviewScansFlaggedRecords(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "document_id", "filename", "category", "doc_type",
		"confidence_score", "confidence_level", "model_used",
		"needs_human_review", "uncertainty_flags", "created_at",
	}).AddRow(
		"rec-4", "doc-4", "scan.pdf", "Unsorted / Needs Review", "Misc. Reference Material",
		0.35, "Uncertain", "pattern_based", true,
		[]byte(`["text too short (under 50 words)"]`), now,
	)

	mock.ExpectQuery("SELECT id, document_id, filename").
		WithArgs(10).
		WillReturnRows(rows)

	records, err := repo.PendingReview(context.Background(), 10)
	if err != nil {
		t.Fatalf("PendingReview() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.ConfidenceLevel != domain.ConfidenceUncertain {
		t.Errorf("ConfidenceLevel = %q, want Uncertain", rec.ConfidenceLevel)
	}
	if rec.ModelUsed != domain.ModelPatternBased {
		t.Errorf("ModelUsed = %q, want pattern_based", rec.ModelUsed)
	}
	if len(rec.UncertaintyFlags) != 1 || rec.UncertaintyFlags[0] != "text too short (under 50 words)" {
		t.Errorf("UncertaintyFlags = %v", rec.UncertaintyFlags)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

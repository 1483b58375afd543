package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRegistry is a small taxonomy with predictable keyword lists so
// density math in tests stays legible.
func testRegistry(t *testing.T) *taxonomy.Registry {
	t.Helper()
	r, err := taxonomy.New(taxonomy.Config{
		Entries: []taxonomy.Entry{
			{
				Name:        "Contract",
				Kind:        taxonomy.KindCategory,
				Description: "Contractual agreements between parties.",
				Keywords:    []string{"agreement", "party", "terms", "obligations", "breach", "consideration"},
			},
			{
				Name:        "Criminal Defense (Pretrial & Trial)",
				Kind:        taxonomy.KindCategory,
				Description: "Criminal cases through trial.",
				Keywords:    []string{"criminal", "indictment", "guilty", "trial"},
			},
			{
				Name:        "Immigration Appeals & Motions",
				Kind:        taxonomy.KindCategory,
				Description: "Appeals and motions in immigration matters.",
				Keywords:    []string{"appeal", "reopen", "bia"},
			},
			{
				Name:        "Contract Agreement",
				Kind:        taxonomy.KindDocumentType,
				Description: "Signed agreement between parties.",
				Keywords:    []string{"agreement", "signature", "witnesseth"},
			},
			{
				Name:        "Motion (Court Filing)",
				Kind:        taxonomy.KindDocumentType,
				Description: "A legal motion filed in court.",
				Keywords:    []string{"motion to", "comes now"},
			},
			{
				Name:        "Affidavit",
				Kind:        taxonomy.KindDocumentType,
				Description: "A sworn written statement.",
				Keywords:    []string{"affidavit", "sworn", "notary"},
			},
			{
				Name:        "Misc. Reference Material",
				Kind:        taxonomy.KindDocumentType,
				Description: "Any other reference documents.",
				Keywords:    []string{"reference"},
			},
		},
		Mismatches: []taxonomy.Mismatch{
			{DocType: "Motion (Court Filing)", Category: "Contract", Note: "court filings rarely belong to a contract matter"},
		},
		NoMatchCategory: "Immigration Appeals & Motions",
		NoMatchDocType:  "Misc. Reference Material",
	})
	if err != nil {
		t.Fatalf("build test registry: %v", err)
	}
	return r
}

type embedderFake struct {
	vector []float32
	err    error
	calls  int
}

func (f *embedderFake) EmbedQuery(context.Context, string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type storeFake struct {
	searchHits map[string][]ports.ScoredPayload
	searchErr  error
	counts     map[string]int
	countErr   error
	upserts    map[string][]ports.Point
	upsertErr  error
}

func newStoreFake() *storeFake {
	return &storeFake{
		searchHits: map[string][]ports.ScoredPayload{},
		counts:     map[string]int{},
		upserts:    map[string][]ports.Point{},
	}
}

func (f *storeFake) EnsureCollection(context.Context, string, int) error { return nil }

func (f *storeFake) Upsert(_ context.Context, collection string, points []ports.Point) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts[collection] = append(f.upserts[collection], points...)
	return nil
}

func (f *storeFake) Search(_ context.Context, collection string, _ []float32, _ int) ([]ports.ScoredPayload, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchHits[collection], nil
}

func (f *storeFake) Count(_ context.Context, collection string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[collection], nil
}

type completionFake struct {
	response string
	err      error
	calls    int
}

func (f *completionFake) Complete(context.Context, string, int, float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type panicCompletion struct{}

func (panicCompletion) Complete(context.Context, string, int, float64) (string, error) {
	panic("model handle corrupted")
}

type zeroShotFake struct {
	scores map[string][]ports.LabelScore
	err    error
}

func (f *zeroShotFake) Classify(_ context.Context, _ string, labels []string) ([]ports.LabelScore, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := strings.Join(labels, "|")
	if hits, ok := f.scores[key]; ok {
		return hits, nil
	}
	// Default: echo the first candidate label.
	if len(labels) == 0 {
		return nil, nil
	}
	return []ports.LabelScore{{Label: labels[0], Score: 0.9}}, nil
}

type enginePieces struct {
	engine   *ClassificationEngine
	primary  *completionFake
	fallback *completionFake
	local    *completionFake
	store    *storeFake
	embedder *embedderFake
}

func newTestEngine(t *testing.T, registry *taxonomy.Registry, primary, fallback, local ports.CompletionClient, zeroShot ports.ZeroShotClassifier) enginePieces {
	t.Helper()
	logger := discardLogger()
	embedder := &embedderFake{vector: []float32{0.1, 0.2}}
	store := newStoreFake()
	collections := DefaultCollections()
	scorer := NewHeuristicScorer(registry)
	patterns := NewPatternClassifier(registry)

	pieces := enginePieces{store: store, embedder: embedder}
	if f, ok := primary.(*completionFake); ok {
		pieces.primary = f
	}
	if f, ok := fallback.(*completionFake); ok {
		pieces.fallback = f
	}
	if f, ok := local.(*completionFake); ok {
		pieces.local = f
	}

	retriever := NewContextRetriever(embedder, store, collections, 5, logger)
	cascade := NewCascade(primary, fallback, local, patterns, scorer, registry, DefaultCascadeConfig(), logger)
	validator := NewValidator(zeroShot, registry, logger)
	combiner := NewCombiner(scorer, registry, embedder, store, collections, DefaultCombinerConfig(), logger)
	pieces.engine = NewClassificationEngine(retriever, cascade, validator, combiner, patterns, logger)
	return pieces
}

// contractText builds prose with structural markers, legal formatting, and a
// chosen share of the Contract category's keywords, repeated past the
// long-document threshold.
func contractText() string {
	var b strings.Builder
	b.WriteString("IN THE SUPERIOR COURT OF THE STATE\n")
	b.WriteString("Case No. 2024-CV-1182\n")
	b.WriteString("1. The agreement between each party sets out terms that govern performance.\n")
	b.WriteString("2. The following recitals describe the background of the relationship.\n")
	sentence := "The agreement requires each party to honor the terms stated in the schedule and to perform every duty on time without delay or excuse of any kind whatsoever. "
	for i := 0; i < 20; i++ {
		b.WriteString(sentence)
	}
	return b.String()
}

func TestClassifyTotality(t *testing.T) {
	registry := testRegistry(t)

	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{name: "whitespace only", text: "   \n\t  "},
		{name: "garbled", text: "@@@@ #### %%%% l1Il1I xx yy zz"},
		{name: "ordinary prose", text: "This agreement binds each party to its terms."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := newTestEngine(t, registry, nil, nil, nil, nil)
			result, err := pieces.engine.Classify(context.Background(), tt.text, "scan.pdf")
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if result == nil {
				t.Fatal("Classify returned nil result")
			}
			if _, ok := registry.LookupCategory(result.DocumentCategory); !ok {
				t.Errorf("category %q not in taxonomy", result.DocumentCategory)
			}
			if result.ConfidenceScore < 0 || result.ConfidenceScore > 1 {
				t.Errorf("confidence %v out of [0,1]", result.ConfidenceScore)
			}
		})
	}
}

func TestClassifyPrimaryAccepted(t *testing.T) {
	registry := testRegistry(t)
	primary := &completionFake{response: "Category: Contract; Type: Misc. Reference Material\nReasoning: standard commercial agreement."}
	fallback := &completionFake{response: "unused"}
	local := &completionFake{response: "unused"}
	pieces := newTestEngine(t, registry, primary, fallback, local, nil)

	result, err := pieces.engine.Classify(context.Background(), contractText(), "agreement.pdf")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.ModelUsed != domain.ModelPrimary {
		t.Errorf("ModelUsed = %s, want primary", result.ModelUsed)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
	if fallback.calls != 0 || local.calls != 0 {
		t.Errorf("fallback stages called (%d/%d), want 0/0", fallback.calls, local.calls)
	}
	if result.DocumentCategory != "Contract" {
		t.Errorf("category = %q", result.DocumentCategory)
	}
}

func TestClassifyFallsBackWhenPrimaryUnavailable(t *testing.T) {
	registry := testRegistry(t)
	primary := &completionFake{err: errors.New("connection refused")}
	fallback := &completionFake{response: "Category: Contract; Type: Misc. Reference Material"}
	pieces := newTestEngine(t, registry, primary, fallback, nil, nil)

	result, err := pieces.engine.Classify(context.Background(), contractText(), "agreement.pdf")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.ModelUsed != domain.ModelFallbackAPI {
		t.Errorf("ModelUsed = %s, want fallback_api", result.ModelUsed)
	}
	if len(result.StageDiagnostics) == 0 {
		t.Error("expected diagnostics for the failed primary stage")
	}
}

func TestClassifyBothModelsDownUsesPatterns(t *testing.T) {
	registry := testRegistry(t)
	primary := &completionFake{err: errors.New("timeout")}
	fallback := &completionFake{err: errors.New("timeout")}
	local := &completionFake{err: errors.New("timeout")}
	pieces := newTestEngine(t, registry, primary, fallback, local, nil)

	result, err := pieces.engine.Classify(context.Background(), "An affidavit sworn to before me by the affiant.", "affidavit.pdf")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.ModelUsed != domain.ModelPatternBased {
		t.Errorf("ModelUsed = %s, want pattern_based", result.ModelUsed)
	}
	switch result.ConfidenceLevel {
	case domain.ConfidenceLow, domain.ConfidenceMedium, domain.ConfidenceHigh:
	default:
		t.Errorf("pattern result level = %s, want discrete Low/Medium/High before combiner penalties", result.ConfidenceLevel)
	}
}

func TestClassifyEmergencyOnPanic(t *testing.T) {
	registry := testRegistry(t)
	pieces := newTestEngine(t, registry, panicCompletion{}, nil, nil, nil)

	result, err := pieces.engine.Classify(context.Background(), "Some text.", "broken.pdf")
	if err != nil {
		t.Fatalf("Classify returned error after panic: %v", err)
	}
	if result.ModelUsed != domain.ModelEmergency {
		t.Errorf("ModelUsed = %s, want emergency", result.ModelUsed)
	}
	if !result.NeedsHumanReview {
		t.Error("emergency results must be flagged for review")
	}
	found := false
	for _, flag := range result.UncertaintyFlags {
		if strings.Contains(flag, "model handle corrupted") {
			found = true
		}
	}
	if !found {
		t.Errorf("flags %v missing the panic diagnostic", result.UncertaintyFlags)
	}
}

func TestClassifyRetrievalFailureStillClassifies(t *testing.T) {
	registry := testRegistry(t)
	pieces := newTestEngine(t, registry, nil, nil, nil, nil)
	pieces.embedder.err = errors.New("encoder offline")

	result, err := pieces.engine.Classify(context.Background(), "An affidavit sworn to before me.", "a.pdf")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	found := false
	for _, d := range result.StageDiagnostics {
		if strings.Contains(d, flagRetrievalFailure) {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics %v missing retrieval failure note", result.StageDiagnostics)
	}
}

func TestClassifyPersistsPastDocument(t *testing.T) {
	registry := testRegistry(t)
	pieces := newTestEngine(t, registry, nil, nil, nil, nil)

	if _, err := pieces.engine.Classify(context.Background(), "An affidavit sworn to before me.", "a.pdf"); err != nil {
		t.Fatalf("Classify: %v", err)
	}

	saved := pieces.store.upserts[DefaultCollections().Documents]
	if len(saved) != 1 {
		t.Fatalf("persisted %d past documents, want 1", len(saved))
	}
	if got := saved[0].Payload["filename"]; got != "a.pdf" {
		t.Errorf("payload filename = %v", got)
	}
	if saved[0].ID == "" {
		t.Error("persisted point has empty ID")
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// CombinerConfig carries the combiner's ranking and persistence parameters.
type CombinerConfig struct {
	Adjustments         ConfidenceAdjustments
	AlternativeMinRatio float64
	AlternativeLimit    int
	PersistExcerptChars int
}

func DefaultCombinerConfig() CombinerConfig {
	return CombinerConfig{
		Adjustments:         DefaultAdjustments(),
		AlternativeMinRatio: 0.10,
		AlternativeLimit:    2,
		PersistExcerptChars: 1000,
	}
}

// Combiner merges the accepted RawClassification, the heuristic signals, and
// the validator outcome into the final ClassificationResult, then persists
// the classified document back into the similarity store so future
// retrievals can use it as context.
type Combiner struct {
	scorer      *HeuristicScorer
	registry    *taxonomy.Registry
	embedder    ports.Embedder
	store       ports.SimilarityStore
	collections Collections
	cfg         CombinerConfig
	logger      *slog.Logger
}

func NewCombiner(
	scorer *HeuristicScorer,
	registry *taxonomy.Registry,
	embedder ports.Embedder,
	store ports.SimilarityStore,
	collections Collections,
	cfg CombinerConfig,
	logger *slog.Logger,
) *Combiner {
	return &Combiner{
		scorer:      scorer,
		registry:    registry,
		embedder:    embedder,
		store:       store,
		collections: collections,
		cfg:         cfg,
		logger:      logger,
	}
}

// Combine produces the final result. Validator disagreement is recorded as
// an uncertainty flag but is neither a score penalty nor a review trigger;
// it is advisory only.
func (c *Combiner) Combine(ctx context.Context, text, filename string, raw domain.RawClassification, validator domain.ValidatorOutcome, stageDiagnostics []string) *domain.ClassificationResult {
	h := c.scorer.Score(text, raw.Category, raw.DocType, raw.RawResponse)

	score := c.cfg.Adjustments.Apply(raw.ConfidenceScore, h)
	level := domain.LevelForScore(score)

	needsReview := level == domain.ConfidenceLow ||
		level == domain.ConfidenceUncertain ||
		len(h.UncertaintyFlags) > 2 ||
		h.Quality.OCRQualityIssues

	flags := append([]string(nil), h.UncertaintyFlags...)
	if validator.Available && !validator.CategoryMatch {
		flags = append(flags, fmt.Sprintf("%s: suggested %q (%.2f)", flagValidatorPrefix, validator.Category, validator.CategoryConfidence))
	}

	result := &domain.ClassificationResult{
		DocumentType:     raw.DocType,
		DocumentCategory: raw.Category,
		ConfidenceLevel:  level,
		ConfidenceScore:  score,
		Reasoning:        c.reasoningFor(raw, h),
		UncertaintyFlags: flags,
		Alternatives:     c.rankAlternatives(text, raw.Category),
		NeedsHumanReview: needsReview,
		ModelUsed:        raw.ModelUsed,
		Validator:        validator,
		StageDiagnostics: stageDiagnostics,
	}

	c.persistPastDocument(ctx, text, filename, result)

	return result
}

func (c *Combiner) reasoningFor(raw domain.RawClassification, h domain.HeuristicScore) string {
	if raw.Reasoning != "" {
		return raw.Reasoning
	}
	return fmt.Sprintf("classified by %s with keyword confidence %.2f", raw.ModelUsed, h.KeywordConfidence)
}

// rankAlternatives orders every non-chosen category by raw keyword-match
// ratio and keeps the top entries above the minimum ratio. Sorting is stable
// so equal ratios preserve taxonomy definition order.
func (c *Combiner) rankAlternatives(text, chosen string) []domain.AlternativeClassification {
	var alternatives []domain.AlternativeClassification
	for _, entry := range c.registry.Categories() {
		if entry.Name == chosen {
			continue
		}
		ratio, matches, total := c.scorer.KeywordMatchRatio(text, entry.Name)
		if ratio <= c.cfg.AlternativeMinRatio {
			continue
		}
		alternatives = append(alternatives, domain.AlternativeClassification{
			Category: entry.Name,
			Score:    ratio,
			Reason:   fmt.Sprintf("matched %d of %d category keywords", matches, total),
		})
	}
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Score > alternatives[j].Score
	})
	if len(alternatives) > c.cfg.AlternativeLimit {
		alternatives = alternatives[:c.cfg.AlternativeLimit]
	}
	return alternatives
}

// persistPastDocument writes the classified document into the similarity
// store. This is the only externally visible side effect of a successful
// classification; failures are logged and never fail the result.
func (c *Combiner) persistPastDocument(ctx context.Context, text, filename string, result *domain.ClassificationResult) {
	if c.embedder == nil || c.store == nil {
		return
	}

	sample := excerpt(text, c.cfg.PersistExcerptChars)
	vector, err := c.embedder.EmbedQuery(ctx, sample)
	if err != nil {
		c.logger.Warn("past-document embedding failed, skipping persistence", "filename", filename, "error", err)
		return
	}

	point := ports.Point{
		ID:     uuid.NewString(),
		Vector: vector,
		Payload: map[string]any{
			"filename":   filename,
			"category":   result.DocumentCategory,
			"doc_type":   result.DocumentType,
			"confidence": result.ConfidenceScore,
			"text":       sample,
		},
	}
	if err := c.store.Upsert(ctx, c.collections.Documents, []ports.Point{point}); err != nil {
		c.logger.Warn("past-document persistence failed", "filename", filename, "error", err)
	}
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// Validator cross-checks the cascade's chosen labels against an independent
// zero-shot classifier. It is purely advisory: it annotates agreement but
// never overrides the cascade's result.
type Validator struct {
	classifier ports.ZeroShotClassifier
	registry   *taxonomy.Registry
	logger     *slog.Logger
}

func NewValidator(classifier ports.ZeroShotClassifier, registry *taxonomy.Registry, logger *slog.Logger) *Validator {
	return &Validator{classifier: classifier, registry: registry, logger: logger}
}

// Check scores the text against the full category list and a representative
// document-type subset. Any failure yields Available=false; validation never
// blocks a classification.
func (v *Validator) Check(ctx context.Context, text string, raw domain.RawClassification) domain.ValidatorOutcome {
	if v.classifier == nil {
		return domain.ValidatorOutcome{}
	}

	categoryScores, err := v.classifier.Classify(ctx, text, v.registry.CategoryNames())
	if err != nil || len(categoryScores) == 0 {
		v.logger.Warn("zero-shot category validation unavailable", "error", err)
		return domain.ValidatorOutcome{}
	}

	docTypeScores, err := v.classifier.Classify(ctx, text, v.registry.ValidatorDocTypes())
	if err != nil || len(docTypeScores) == 0 {
		v.logger.Warn("zero-shot document-type validation unavailable", "error", err)
		return domain.ValidatorOutcome{}
	}

	outcome := domain.ValidatorOutcome{
		Available:          true,
		Category:           categoryScores[0].Label,
		DocType:            docTypeScores[0].Label,
		CategoryConfidence: categoryScores[0].Score,
		DocTypeConfidence:  docTypeScores[0].Score,
	}
	outcome.CategoryMatch = outcome.Category == raw.Category
	outcome.DocTypeMatch = outcome.DocType == raw.DocType
	return outcome
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
)

// ClassificationEngine is the engine's single inbound operation: turn
// extracted document text into a ClassificationResult. Its outward contract
// is total — it never fails for textual input, degrading confidence and
// flagging for review instead.
type ClassificationEngine struct {
	retriever *ContextRetriever
	cascade   *Cascade
	validator *Validator
	combiner  *Combiner
	patterns  *PatternClassifier
	logger    *slog.Logger
}

func NewClassificationEngine(
	retriever *ContextRetriever,
	cascade *Cascade,
	validator *Validator,
	combiner *Combiner,
	patterns *PatternClassifier,
	logger *slog.Logger,
) *ClassificationEngine {
	return &ClassificationEngine{
		retriever: retriever,
		cascade:   cascade,
		validator: validator,
		combiner:  combiner,
		patterns:  patterns,
		logger:    logger,
	}
}

// Classify runs retrieval, the cascade, validation, and combination. Any
// panic escaping the pipeline is caught here and answered by the emergency
// path, with the originating failure attached as a diagnostic.
func (e *ClassificationEngine) Classify(ctx context.Context, text, filename string) (result *domain.ClassificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("classification panicked, taking emergency path", "filename", filename, "panic", r)
			result = e.emergencyResult(text, filename, fmt.Sprintf("%v", r))
			err = nil
		}
	}()

	rc, retrieveErr := e.retriever.Retrieve(ctx, text)
	var diagnostics []string
	if retrieveErr != nil {
		// Retrieval grounding is an enhancement, not a prerequisite:
		// the cascade still runs with an empty context.
		e.logger.Warn("context retrieval failed, classifying without context", "filename", filename, "error", retrieveErr)
		diagnostics = append(diagnostics, fmt.Sprintf("%s: %v", flagRetrievalFailure, retrieveErr))
		rc = domain.RetrievalContext{}
	}

	raw, stageDiagnostics := e.cascade.Run(ctx, text, filename, rc)
	diagnostics = append(diagnostics, stageDiagnostics...)

	validator := e.validator.Check(ctx, text, raw)

	result = e.combiner.Combine(ctx, text, filename, raw, validator, diagnostics)

	e.logger.Info("document classified",
		"filename", filename,
		"category", result.DocumentCategory,
		"doc_type", result.DocumentType,
		"confidence", result.ConfidenceScore,
		"level", string(result.ConfidenceLevel),
		"model_used", string(result.ModelUsed),
		"needs_review", result.NeedsHumanReview,
	)
	return result, nil
}

// emergencyResult answers a panicked classification with the pattern floor,
// bypassing every component that could have caused the failure.
func (e *ClassificationEngine) emergencyResult(text, filename, cause string) *domain.ClassificationResult {
	raw := e.patterns.Classify(text, filename)
	raw.ModelUsed = domain.ModelEmergency

	score := domain.ClampScore(raw.ConfidenceScore)
	return &domain.ClassificationResult{
		DocumentType:     raw.DocType,
		DocumentCategory: raw.Category,
		ConfidenceLevel:  domain.LevelForScore(score),
		ConfidenceScore:  score,
		Reasoning:        raw.Reasoning,
		UncertaintyFlags: []string{fmt.Sprintf("%s: %s", flagEmergencyPrefix, cause)},
		NeedsHumanReview: true,
		ModelUsed:        domain.ModelEmergency,
		StageDiagnostics: []string{fmt.Sprintf("panic: %s", cause)},
	}
}

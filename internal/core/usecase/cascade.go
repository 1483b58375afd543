package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// CascadeConfig carries the acceptance thresholds and model-call parameters.
// Defaults preserve the calibrated production values.
type CascadeConfig struct {
	PrimaryThreshold  float64
	FallbackThreshold float64
	MaxTokens         int
	Temperature       float64
	ExcerptChars      int
	Adjustments       ConfidenceAdjustments
}

func DefaultCascadeConfig() CascadeConfig {
	return CascadeConfig{
		PrimaryThreshold:  0.70,
		FallbackThreshold: 0.60,
		MaxTokens:         300,
		Temperature:       0.1,
		ExcerptChars:      2000,
		Adjustments:       DefaultAdjustments(),
	}
}

// Cascade runs up to three classification attempts gated by confidence
// thresholds: the primary legal-domain model, then a fallback
// (remote endpoint first, local model if the remote is unusable), then the
// pattern-based floor. Exactly one stage's RawClassification is accepted;
// earlier stages' failure reasons survive only as diagnostics.
type Cascade struct {
	primary       ports.CompletionClient
	fallbackAPI   ports.CompletionClient
	fallbackLocal ports.CompletionClient
	patterns      *PatternClassifier
	scorer        *HeuristicScorer
	registry      *taxonomy.Registry
	cfg           CascadeConfig
	logger        *slog.Logger
}

func NewCascade(
	primary ports.CompletionClient,
	fallbackAPI ports.CompletionClient,
	fallbackLocal ports.CompletionClient,
	patterns *PatternClassifier,
	scorer *HeuristicScorer,
	registry *taxonomy.Registry,
	cfg CascadeConfig,
	logger *slog.Logger,
) *Cascade {
	return &Cascade{
		primary:       primary,
		fallbackAPI:   fallbackAPI,
		fallbackLocal: fallbackLocal,
		patterns:      patterns,
		scorer:        scorer,
		registry:      registry,
		cfg:           cfg,
		logger:        logger,
	}
}

// Run classifies the text, always returning exactly one accepted
// RawClassification plus the diagnostics of any earlier stage that failed or
// fell short. It never returns an error: the pattern stage is the
// unconditional floor.
func (c *Cascade) Run(ctx context.Context, text, filename string, rc domain.RetrievalContext) (domain.RawClassification, []string) {
	var diagnostics []string

	if raw, ok := c.attemptStage(ctx, c.primary, domain.ModelPrimary, text, filename, rc, c.cfg.PrimaryThreshold, &diagnostics); ok {
		return raw, diagnostics
	}

	if raw, ok := c.attemptFallback(ctx, text, filename, rc, &diagnostics); ok {
		return raw, diagnostics
	}

	c.logger.Info("cascade exhausted model stages, using pattern floor", "filename", filename)
	return c.patterns.Classify(text, filename), diagnostics
}

// attemptStage runs one model stage. ok=false means the stage failed or its
// confidence missed the threshold; the reason is appended to diagnostics.
func (c *Cascade) attemptStage(
	ctx context.Context,
	client ports.CompletionClient,
	stage domain.ModelUsed,
	text, filename string,
	rc domain.RetrievalContext,
	threshold float64,
	diagnostics *[]string,
) (domain.RawClassification, bool) {
	if client == nil {
		*diagnostics = append(*diagnostics, fmt.Sprintf("%s: not configured", stage))
		return domain.RawClassification{}, false
	}

	raw, err := c.callModel(ctx, client, stage, text, filename, rc)
	if err != nil {
		c.logger.Warn("cascade stage failed", "stage", string(stage), "error", err)
		*diagnostics = append(*diagnostics, fmt.Sprintf("%s: %v", stage, err))
		return domain.RawClassification{}, false
	}

	if raw.ConfidenceScore < threshold {
		c.logger.Info("cascade stage below acceptance threshold",
			"stage", string(stage),
			"confidence", raw.ConfidenceScore,
			"threshold", threshold,
		)
		*diagnostics = append(*diagnostics, fmt.Sprintf("%s: confidence %.2f below threshold %.2f", stage, raw.ConfidenceScore, threshold))
		return domain.RawClassification{}, false
	}

	return raw, true
}

// attemptFallback tries the remote endpoint first and the local model only
// when the remote is unreachable or unusable. The threshold check applies to
// whichever of the two actually produced output.
func (c *Cascade) attemptFallback(ctx context.Context, text, filename string, rc domain.RetrievalContext, diagnostics *[]string) (domain.RawClassification, bool) {
	if c.fallbackAPI != nil {
		raw, err := c.callModel(ctx, c.fallbackAPI, domain.ModelFallbackAPI, text, filename, rc)
		if err == nil {
			if raw.ConfidenceScore >= c.cfg.FallbackThreshold {
				return raw, true
			}
			*diagnostics = append(*diagnostics, fmt.Sprintf("%s: confidence %.2f below threshold %.2f", domain.ModelFallbackAPI, raw.ConfidenceScore, c.cfg.FallbackThreshold))
			return domain.RawClassification{}, false
		}
		c.logger.Warn("remote fallback unusable, trying local model", "error", err)
		*diagnostics = append(*diagnostics, fmt.Sprintf("%s: %v", domain.ModelFallbackAPI, err))
	}

	return c.attemptStage(ctx, c.fallbackLocal, domain.ModelFallback, text, filename, rc, c.cfg.FallbackThreshold, diagnostics)
}

func (c *Cascade) callModel(
	ctx context.Context,
	client ports.CompletionClient,
	stage domain.ModelUsed,
	text, filename string,
	rc domain.RetrievalContext,
) (domain.RawClassification, error) {
	prompt := buildClassificationPrompt(text, filename, c.cfg.ExcerptChars, rc, c.registry)

	response, err := client.Complete(ctx, prompt, c.cfg.MaxTokens, c.cfg.Temperature)
	if err != nil {
		return domain.RawClassification{}, fmt.Errorf("model completion: %w", err)
	}
	if strings.TrimSpace(response) == "" {
		return domain.RawClassification{}, domain.WrapError(domain.ErrInvalidInput, "model completion", fmt.Errorf("empty response"))
	}

	parsed := parseModelResponse(response, c.registry)

	h := c.scorer.Score(text, parsed.Category, parsed.DocType, response)
	if !parsed.CategoryInTaxonomy {
		h.UncertaintyFlags = append(h.UncertaintyFlags, flagUnknownCategory)
	}
	if !parsed.DocTypeInTaxonomy {
		h.UncertaintyFlags = append(h.UncertaintyFlags, flagUnknownDocType)
	}

	return domain.RawClassification{
		Category:        parsed.Category,
		DocType:         parsed.DocType,
		ConfidenceScore: c.cfg.Adjustments.Apply(h.KeywordConfidence, h),
		ModelUsed:       stage,
		RawResponse:     response,
		Reasoning:       parsed.Reasoning,
	}, nil
}

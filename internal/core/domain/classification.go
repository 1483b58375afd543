package domain

import "time"

// ConfidenceLevel is the discrete bucket reported alongside the numeric
// confidence score.
type ConfidenceLevel string

const (
	ConfidenceHigh      ConfidenceLevel = "High"
	ConfidenceMedium    ConfidenceLevel = "Medium"
	ConfidenceLow       ConfidenceLevel = "Low"
	ConfidenceUncertain ConfidenceLevel = "Uncertain"
)

// LevelForScore buckets a clamped confidence score. The bucketing is
// monotonic: Uncertain < Low < Medium < High.
func LevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	case score >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceUncertain
	}
}

// Rank orders confidence levels for comparisons; higher is more confident.
func (l ConfidenceLevel) Rank() int {
	switch l {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// ClampScore bounds a confidence score to [0,1].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ModelUsed identifies which cascade stage produced a classification.
type ModelUsed string

const (
	ModelPrimary      ModelUsed = "primary"
	ModelFallback     ModelUsed = "fallback"
	ModelFallbackAPI  ModelUsed = "fallback_api"
	ModelPatternBased ModelUsed = "pattern_based"
	ModelEmergency    ModelUsed = "emergency"
)

// RawClassification is the output of a single cascade stage. Only the
// accepted stage's instance survives into the final result.
type RawClassification struct {
	Category        string
	DocType         string
	ConfidenceScore float64
	ModelUsed       ModelUsed
	RawResponse     string
	Reasoning       string
}

// QualityMetrics captures structural signals derived from the raw text.
type QualityMetrics struct {
	WordCount          int
	HasStructure       bool
	HasLegalFormatting bool
	OCRQualityIssues   bool
}

// HeuristicScore is the model-free signal computed from keyword overlap and
// text quality. It never depends on a model call.
type HeuristicScore struct {
	KeywordConfidence float64
	Quality           QualityMetrics
	UncertaintyFlags  []string
}

// ValidatorOutcome reports the zero-shot cross-check. Available=false means
// the validator could not run; the rest of the fields are then meaningless.
type ValidatorOutcome struct {
	Available          bool
	Category           string
	DocType            string
	CategoryConfidence float64
	DocTypeConfidence  float64
	CategoryMatch      bool
	DocTypeMatch       bool
}

// AlternativeClassification is a runner-up category with its keyword-match
// ratio and a human-readable justification.
type AlternativeClassification struct {
	Category string
	Score    float64
	Reason   string
}

// ClassificationResult is the final, immutable outcome returned to callers.
type ClassificationResult struct {
	DocumentType     string
	DocumentCategory string
	ConfidenceLevel  ConfidenceLevel
	ConfidenceScore  float64
	Reasoning        string
	UncertaintyFlags []string
	Alternatives     []AlternativeClassification
	NeedsHumanReview bool
	ModelUsed        ModelUsed
	Validator        ValidatorOutcome
	StageDiagnostics []string
}

// ClassificationRecord is the persisted outcome keyed by document, the
// system of record downstream metadata writers consume.
type ClassificationRecord struct {
	ID               string
	DocumentID       string
	Filename         string
	Category         string
	DocType          string
	ConfidenceScore  float64
	ConfidenceLevel  ConfidenceLevel
	ModelUsed        ModelUsed
	NeedsHumanReview bool
	UncertaintyFlags []string
	CreatedAt        time.Time
}

// ClassificationJob is a queued request to classify one document.
type ClassificationJob struct {
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	Text       string    `json:"text"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

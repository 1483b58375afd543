package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// Uncertainty flag texts. Stable strings: they surface in results, review
// queues, and tests.
const (
	flagTextTooShort     = "text too short (under 50 words)"
	flagOCRIssues        = "possible OCR quality issues detected"
	flagMixedCategories  = "mixed signals: keywords match multiple categories"
	flagHedgedReasoning  = "model reasoning contains hedging language"
	flagUnknownCategory  = "model category not in taxonomy"
	flagUnknownDocType   = "model document type not in taxonomy"
	flagValidatorPrefix  = "validator disagrees with category"
	flagEmergencyPrefix  = "emergency classification"
	flagRetrievalFailure = "similarity retrieval unavailable"
)

var (
	structureRe = regexp.MustCompile(`(?m)^\s*(\d+[.)]|\([a-z0-9]{1,3}\)|[IVXLC]{1,6}\.)\s+\S`)
	headingRe   = regexp.MustCompile(`(?m)^[A-Z][A-Z .,&-]{8,}$`)

	captionRe   = regexp.MustCompile(`(?i)\bin the [a-z .]{0,40}court\b`)
	caseNoRe    = regexp.MustCompile(`(?i)\bcase\s+no\.?\s*[:#]?\s*[a-z0-9-]`)
	versusRe    = regexp.MustCompile(`\bv\.\s+[A-Z]`)
	signatureRe = regexp.MustCompile(`(?i)\b(respectfully submitted|dated:|sworn to before me)\b`)

	nonAlnumRunRe = regexp.MustCompile(`[^a-zA-Z0-9\s]{3,}`)
	glyphRunRe    = regexp.MustCompile(`[Il1]{4,}`)
)

var hedgingPhrases = []string{
	"appears to be",
	"possibly",
	"unclear",
	"might be",
	"could be",
	"not sure",
	"uncertain",
	"difficult to determine",
}

// HeuristicScorer derives model-free classification signals from raw text:
// keyword overlap against the taxonomy, structural quality metrics, and
// uncertainty flags. It never calls a model and never fails; empty text
// degrades the metrics instead of erroring.
type HeuristicScorer struct {
	registry *taxonomy.Registry
}

func NewHeuristicScorer(registry *taxonomy.Registry) *HeuristicScorer {
	return &HeuristicScorer{registry: registry}
}

// Score evaluates text against the chosen category/type pair.
// modelReasoning is the free-text output of whichever model produced the
// pair; pass "" for model-free stages.
func (s *HeuristicScorer) Score(text, category, docType, modelReasoning string) domain.HeuristicScore {
	lower := strings.ToLower(text)
	words := strings.Fields(text)

	quality := domain.QualityMetrics{
		WordCount:          len(words),
		HasStructure:       hasStructuralMarkers(text),
		HasLegalFormatting: hasLegalFormatting(text),
		OCRQualityIssues:   hasOCRDamage(text, words),
	}

	score := domain.HeuristicScore{
		KeywordConfidence: s.keywordConfidence(lower, category, docType),
		Quality:           quality,
	}

	if quality.WordCount < 50 {
		score.UncertaintyFlags = append(score.UncertaintyFlags, flagTextTooShort)
	}
	if quality.OCRQualityIssues {
		score.UncertaintyFlags = append(score.UncertaintyFlags, flagOCRIssues)
	}
	if s.matchingCategoryCount(lower) > 2 {
		score.UncertaintyFlags = append(score.UncertaintyFlags, flagMixedCategories)
	}
	if containsHedging(modelReasoning) {
		score.UncertaintyFlags = append(score.UncertaintyFlags, flagHedgedReasoning)
	}
	if note, ok := s.registry.MismatchNote(docType, category); ok {
		score.UncertaintyFlags = append(score.UncertaintyFlags, fmt.Sprintf("inconsistent pairing: %s", note))
	}

	return score
}

// keywordConfidence averages two keyword-density sub-scores, one per keyword
// list. Matching 30% of a list already saturates its sub-score at 1.0.
func (s *HeuristicScorer) keywordConfidence(lowerText, category, docType string) float64 {
	var categoryScore, docTypeScore float64
	if entry, ok := s.registry.LookupCategory(category); ok {
		categoryScore = keywordDensity(lowerText, entry.Keywords)
	}
	if entry, ok := s.registry.LookupDocType(docType); ok {
		docTypeScore = keywordDensity(lowerText, entry.Keywords)
	}
	return (categoryScore + docTypeScore) / 2
}

func keywordDensity(lowerText string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			matches++
		}
	}
	saturation := float64(len(keywords)) * 0.3
	if saturation < 1 {
		saturation = 1
	}
	score := float64(matches) / saturation
	if score > 1 {
		return 1
	}
	return score
}

// KeywordMatchRatio is the raw fraction of a category's keywords present in
// the text, used to rank alternative classifications.
func (s *HeuristicScorer) KeywordMatchRatio(text, category string) (ratio float64, matches, total int) {
	entry, ok := s.registry.LookupCategory(category)
	if !ok || len(entry.Keywords) == 0 {
		return 0, 0, 0
	}
	lower := strings.ToLower(text)
	for _, kw := range entry.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches++
		}
	}
	return float64(matches) / float64(len(entry.Keywords)), matches, len(entry.Keywords)
}

func (s *HeuristicScorer) matchingCategoryCount(lowerText string) int {
	count := 0
	for _, entry := range s.registry.Categories() {
		for _, kw := range entry.Keywords {
			if strings.Contains(lowerText, strings.ToLower(kw)) {
				count++
				break
			}
		}
	}
	return count
}

func hasStructuralMarkers(text string) bool {
	return structureRe.MatchString(text) || headingRe.MatchString(text)
}

func hasLegalFormatting(text string) bool {
	return captionRe.MatchString(text) ||
		caseNoRe.MatchString(text) ||
		versusRe.MatchString(text) ||
		signatureRe.MatchString(text)
}

func hasOCRDamage(text string, words []string) bool {
	if nonAlnumRunRe.MatchString(text) || glyphRunRe.MatchString(text) {
		return true
	}
	// A flood of 1-2 character tokens indicates shredded OCR output. Short
	// samples are exempt so ordinary prose is not penalized.
	if len(words) >= 20 {
		short := 0
		for _, w := range words {
			if len(w) <= 2 {
				short++
			}
		}
		if float64(short)/float64(len(words)) > 0.5 {
			return true
		}
	}
	return false
}

func containsHedging(reasoning string) bool {
	if reasoning == "" {
		return false
	}
	lower := strings.ToLower(reasoning)
	for _, phrase := range hedgingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ConfidenceAdjustments holds the additive quality bonuses and uncertainty
// penalties applied on top of a base confidence score. The defaults are the
// calibrated production values; they are configuration only so tests and
// recalibration can vary them deliberately.
type ConfidenceAdjustments struct {
	StructureBonus       float64
	LegalFormattingBonus float64
	LongDocumentBonus    float64
	LongDocumentWords    int
	OCRPenalty           float64
	PerFlagPenalty       float64
}

func DefaultAdjustments() ConfidenceAdjustments {
	return ConfidenceAdjustments{
		StructureBonus:       0.20,
		LegalFormattingBonus: 0.15,
		LongDocumentBonus:    0.10,
		LongDocumentWords:    200,
		OCRPenalty:           0.20,
		PerFlagPenalty:       0.10,
	}
}

// Apply adjusts a base score by the heuristic signals and clamps to [0,1].
func (a ConfidenceAdjustments) Apply(base float64, h domain.HeuristicScore) float64 {
	score := base
	if h.Quality.HasStructure {
		score += a.StructureBonus
	}
	if h.Quality.HasLegalFormatting {
		score += a.LegalFormattingBonus
	}
	if h.Quality.WordCount > a.LongDocumentWords {
		score += a.LongDocumentBonus
	}
	if h.Quality.OCRQualityIssues {
		score -= a.OCRPenalty
	}
	score -= a.PerFlagPenalty * float64(len(h.UncertaintyFlags))
	return domain.ClampScore(score)
}

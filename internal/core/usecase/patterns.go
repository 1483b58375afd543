package usecase

import (
	"fmt"
	"strings"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// patternRule ties one document type to the textual cues that indicate it.
// Rules are evaluated in priority order: sworn-statement markers outrank
// charging documents, which outrank agency notices, forms, evidence, and
// finally generic correspondence.
type patternRule struct {
	docType string
	cues    []string
}

var documentPatternRules = []patternRule{
	{docType: "Witness Affidavit/Declaration", cues: []string{"under penalty of perjury", "duly sworn", "hereby declare", "sworn statement"}},
	{docType: "Affidavit", cues: []string{"affidavit", "sworn to before me", "notary public"}},
	{docType: "Criminal Complaint/Indictment", cues: []string{"indictment", "grand jury", "criminal complaint", "count one"}},
	{docType: "Plea Agreement", cues: []string{"plea agreement", "plead guilty", "plea of guilty"}},
	{docType: "Notice to Appear (NTA)", cues: []string{"notice to appear", "removal proceedings", "removability"}},
	{docType: "Medical Record", cues: []string{"medical record", "diagnosis", "patient", "treatment plan"}},
	{docType: "Psychological Evaluation", cues: []string{"psychological evaluation", "mental status examination"}},
	{docType: "USCIS Request for Evidence (RFE)", cues: []string{"request for evidence", "submit the following evidence"}},
	{docType: "USCIS Receipt Notice", cues: []string{"receipt notice", "i-797c", "receipt number"}},
	{docType: "USCIS Approval Notice", cues: []string{"approval notice", "has been approved", "i-797"}},
	{docType: "Official Form/Application", cues: []string{"form i-", "form n-", "application for", "petition for", "part 1.", "uscis"}},
	{docType: "Financial Document", cues: []string{"tax return", "bank statement", "pay stub", "affidavit of support", "w-2"}},
	{docType: "ID or Civil Document", cues: []string{"birth certificate", "passport", "marriage certificate", "divorce decree", "driver license"}},
	{docType: "Motion (Court Filing)", cues: []string{"motion to", "motion for", "comes now", "respectfully moves"}},
	{docType: "Legal Brief/Memorandum", cues: []string{"memorandum of law", "statement of facts", "table of authorities"}},
	{docType: "Court Order/Judgment", cues: []string{"it is ordered", "it is hereby ordered", "so ordered", "judgment"}},
	{docType: "Immigration Court Hearing Notice", cues: []string{"master calendar", "individual hearing", "hearing notice"}},
	{docType: "Police/Incident Report", cues: []string{"police report", "incident report", "reporting officer"}},
	{docType: "Attorney-Client Correspondence", cues: []string{"dear client", "regarding your case"}},
	{docType: "General Correspondence", cues: []string{"dear ", "sincerely", "enclosed please find"}},
}

// filenameHints are consulted only when no textual rule matched.
var filenameHints = []patternRule{
	{docType: "Affidavit", cues: []string{"affidavit", "declaration"}},
	{docType: "Motion (Court Filing)", cues: []string{"motion"}},
	{docType: "USCIS Receipt Notice", cues: []string{"i-797", "receipt"}},
	{docType: "Official Form/Application", cues: []string{"i-130", "i-485", "i-589", "i-601", "n-400", "form"}},
	{docType: "Medical Record", cues: []string{"medical"}},
	{docType: "ID or Civil Document", cues: []string{"passport", "birth", "certificate"}},
	{docType: "Financial Document", cues: []string{"tax", "bank"}},
}

// PatternClassifier is the cascade's unconditional floor: ordered keyword
// rules assign a document type first, then the best keyword-scoring category.
// A small point scale maps to a discrete confidence label rather than a
// continuous score. It never fails, even on empty text.
type PatternClassifier struct {
	registry *taxonomy.Registry
}

func NewPatternClassifier(registry *taxonomy.Registry) *PatternClassifier {
	return &PatternClassifier{registry: registry}
}

func (p *PatternClassifier) Classify(text, filename string) domain.RawClassification {
	lowerText := strings.ToLower(text)
	lowerName := strings.ToLower(filename)

	docType, typePoints, typeCue := matchRules(documentPatternRules, lowerText)
	if docType == "" {
		docType, typePoints, typeCue = matchRules(filenameHints, lowerName)
		if typeCue != "" {
			typeCue = typeCue + " (filename)"
		}
	}
	if docType == "" {
		docType = p.registry.NoMatchDocType()
	}

	category, categoryPoints := p.bestCategory(lowerText)
	if category == "" {
		category = p.registry.NoMatchCategory()
	}

	points := typePoints + categoryPoints
	label := labelForPoints(points)

	reasoning := fmt.Sprintf("pattern rules: %d matching signals", points)
	if typeCue != "" {
		reasoning = fmt.Sprintf("pattern rules: matched %q and %d other signals", typeCue, points-1)
	}

	return domain.RawClassification{
		Category:        category,
		DocType:         docType,
		ConfidenceScore: scoreForLabel(label),
		ModelUsed:       domain.ModelPatternBased,
		RawResponse:     fmt.Sprintf("Category: %s; Type: %s", category, docType),
		Reasoning:       reasoning,
	}
}

// matchRules returns the first rule with at least one matching cue, the
// number of its cues present, and the first cue that hit.
func matchRules(rules []patternRule, lower string) (docType string, points int, firstCue string) {
	if lower == "" {
		return "", 0, ""
	}
	for _, rule := range rules {
		for _, cue := range rule.cues {
			if strings.Contains(lower, cue) {
				if firstCue == "" {
					firstCue = cue
				}
				points++
			}
		}
		if points > 0 {
			return rule.docType, points, firstCue
		}
	}
	return "", 0, ""
}

// bestCategory picks the category with the most keyword hits; ties go to
// definition order.
func (p *PatternClassifier) bestCategory(lower string) (string, int) {
	best := ""
	bestCount := 0
	for _, entry := range p.registry.Categories() {
		count := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				count++
			}
		}
		if count > bestCount {
			best = entry.Name
			bestCount = count
		}
	}
	return best, bestCount
}

func labelForPoints(points int) domain.ConfidenceLevel {
	switch {
	case points >= 4:
		return domain.ConfidenceHigh
	case points >= 2:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// scoreForLabel maps the discrete pattern label onto the numeric scale so
// the standard bucketing reproduces the label exactly.
func scoreForLabel(label domain.ConfidenceLevel) float64 {
	switch label {
	case domain.ConfidenceHigh:
		return 0.8
	case domain.ConfidenceMedium:
		return 0.6
	default:
		return 0.4
	}
}

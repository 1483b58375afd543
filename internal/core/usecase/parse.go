package usecase

import (
	"regexp"
	"strings"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// parsedResponse is the structured reading of one model's free-text output.
// Category/DocType are always taxonomy members: unrecognized labels are
// replaced with the registry's no-match sentinels and the *InTaxonomy flag
// dropped, so callers can penalize without special-casing.
type parsedResponse struct {
	Category           string
	DocType            string
	CategoryInTaxonomy bool
	DocTypeInTaxonomy  bool
	Reasoning          string
}

var (
	categoryLineRe  = regexp.MustCompile(`(?i)category\s*:\s*([^;\n]+)`)
	docTypeLineRe   = regexp.MustCompile(`(?i)(?:document\s+)?type\s*:\s*([^;\n]+)`)
	reasoningLineRe = regexp.MustCompile(`(?i)reasoning\s*:\s*(.+)`)
)

// parseModelResponse extracts "Category: <x>; Type: <y>" fields from a
// model's free-text response and validates them against the taxonomy. This
// is the highest-risk parsing boundary in the engine: models emit the labels
// with inconsistent punctuation, bracketing, and casing, and occasionally
// invent labels outside the taxonomy entirely.
func parseModelResponse(raw string, registry *taxonomy.Registry) parsedResponse {
	out := parsedResponse{
		Category: registry.NoMatchCategory(),
		DocType:  registry.NoMatchDocType(),
	}

	if m := categoryLineRe.FindStringSubmatch(raw); m != nil {
		candidate := cleanLabel(m[1])
		if name, ok := resolveCategory(candidate, registry); ok {
			out.Category = name
			out.CategoryInTaxonomy = true
		}
	}
	if m := docTypeLineRe.FindStringSubmatch(raw); m != nil {
		candidate := cleanLabel(m[1])
		if name, ok := resolveDocType(candidate, registry); ok {
			out.DocType = name
			out.DocTypeInTaxonomy = true
		}
	}
	if m := reasoningLineRe.FindStringSubmatch(raw); m != nil {
		out.Reasoning = strings.TrimSpace(m[1])
	}

	return out
}

// cleanLabel strips the decoration models wrap around labels: brackets,
// quotes, markdown emphasis, trailing punctuation.
func cleanLabel(s string) string {
	for {
		trimmed := strings.TrimSpace(s)
		trimmed = strings.Trim(trimmed, `[]"'*`)
		trimmed = strings.TrimRight(trimmed, ".,:")
		if trimmed == s {
			return trimmed
		}
		s = trimmed
	}
}

func resolveCategory(candidate string, registry *taxonomy.Registry) (string, bool) {
	if _, ok := registry.LookupCategory(candidate); ok {
		return candidate, true
	}
	// Models routinely lowercase or re-case labels; accept a unique
	// case-insensitive match but never a fuzzy one.
	for _, name := range registry.CategoryNames() {
		if strings.EqualFold(name, candidate) {
			return name, true
		}
	}
	return "", false
}

func resolveDocType(candidate string, registry *taxonomy.Registry) (string, bool) {
	if _, ok := registry.LookupDocType(candidate); ok {
		return candidate, true
	}
	for _, name := range registry.DocTypeNames() {
		if strings.EqualFold(name, candidate) {
			return name, true
		}
	}
	return "", false
}

package usecase

import (
	"strings"
	"testing"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
)

func TestKeywordConfidenceSaturation(t *testing.T) {
	registry := testRegistry(t)
	scorer := NewHeuristicScorer(registry)

	// Contract has 6 keywords; 30% saturation means 2 matches (1.8 rounded
	// up by the divisor) already yield a full category sub-score.
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "no keywords", text: "completely unrelated prose about gardening", want: 0},
		{name: "half the list saturates", text: "the agreement binds each party to the terms", want: 0.5},
		{name: "full list saturates the same", text: "agreement party terms obligations breach consideration", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := scorer.Score(tt.text, "Contract", "Unknown Type", "")
			if h.KeywordConfidence != tt.want {
				t.Errorf("KeywordConfidence = %v, want %v", h.KeywordConfidence, tt.want)
			}
		})
	}
}

func TestScoreQualitySignals(t *testing.T) {
	registry := testRegistry(t)
	scorer := NewHeuristicScorer(registry)

	t.Run("structural and legal markers", func(t *testing.T) {
		h := scorer.Score(contractText(), "Contract", "Contract Agreement", "")
		if !h.Quality.HasStructure {
			t.Error("HasStructure = false, want true")
		}
		if !h.Quality.HasLegalFormatting {
			t.Error("HasLegalFormatting = false, want true")
		}
		if h.Quality.OCRQualityIssues {
			t.Error("OCRQualityIssues = true for clean prose")
		}
		if h.Quality.WordCount <= 200 {
			t.Errorf("WordCount = %d, want > 200", h.Quality.WordCount)
		}
		if len(h.UncertaintyFlags) != 0 {
			t.Errorf("UncertaintyFlags = %v, want none", h.UncertaintyFlags)
		}
	})

	t.Run("short garbled scan", func(t *testing.T) {
		h := scorer.Score("inv0ice @@## %%&& t0tal due", "Contract", "Misc. Reference Material", "")
		if !h.Quality.OCRQualityIssues {
			t.Error("OCRQualityIssues = false, want true")
		}
		wantFlags := map[string]bool{flagTextTooShort: false, flagOCRIssues: false}
		for _, f := range h.UncertaintyFlags {
			if _, ok := wantFlags[f]; ok {
				wantFlags[f] = true
			}
		}
		for flag, seen := range wantFlags {
			if !seen {
				t.Errorf("missing flag %q in %v", flag, h.UncertaintyFlags)
			}
		}
	})

	t.Run("empty text degrades instead of failing", func(t *testing.T) {
		h := scorer.Score("", "Contract", "Affidavit", "")
		if h.Quality.WordCount != 0 {
			t.Errorf("WordCount = %d", h.Quality.WordCount)
		}
		if h.KeywordConfidence != 0 {
			t.Errorf("KeywordConfidence = %v", h.KeywordConfidence)
		}
	})

	t.Run("hedged reasoning is flagged", func(t *testing.T) {
		h := scorer.Score(contractText(), "Contract", "Contract Agreement", "This appears to be some kind of agreement, though it is unclear.")
		found := false
		for _, f := range h.UncertaintyFlags {
			if f == flagHedgedReasoning {
				found = true
			}
		}
		if !found {
			t.Errorf("flags %v missing hedging flag", h.UncertaintyFlags)
		}
	})

	t.Run("known type/category mismatch is flagged", func(t *testing.T) {
		h := scorer.Score(contractText(), "Contract", "Motion (Court Filing)", "")
		found := false
		for _, f := range h.UncertaintyFlags {
			if strings.Contains(f, "inconsistent pairing") {
				found = true
			}
		}
		if !found {
			t.Errorf("flags %v missing mismatch flag", h.UncertaintyFlags)
		}
	})

	t.Run("mixed category signals", func(t *testing.T) {
		h := scorer.Score("The agreement terms cover the criminal trial and the appeal to the bia.", "Contract", "Affidavit", "")
		found := false
		for _, f := range h.UncertaintyFlags {
			if f == flagMixedCategories {
				found = true
			}
		}
		if !found {
			t.Errorf("flags %v missing mixed-category flag", h.UncertaintyFlags)
		}
	})
}

func TestConfidenceAdjustmentsApply(t *testing.T) {
	adj := DefaultAdjustments()

	tests := []struct {
		name string
		base float64
		h    domain.HeuristicScore
		want float64
	}{
		{
			name: "all bonuses clamp at one",
			base: 0.7,
			h: domain.HeuristicScore{Quality: domain.QualityMetrics{
				WordCount: 300, HasStructure: true, HasLegalFormatting: true,
			}},
			want: 1.0,
		},
		{
			name: "penalties clamp at zero",
			base: 0.3,
			h: domain.HeuristicScore{
				Quality:          domain.QualityMetrics{WordCount: 30, OCRQualityIssues: true},
				UncertaintyFlags: []string{flagTextTooShort, flagOCRIssues},
			},
			want: 0.0,
		},
		{
			name: "mixed signals",
			base: 0.5,
			h: domain.HeuristicScore{
				Quality:          domain.QualityMetrics{WordCount: 250, HasStructure: true},
				UncertaintyFlags: []string{flagMixedCategories},
			},
			want: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adj.Apply(tt.base, tt.h)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
)

func TestValidatorWithoutClassifierIsUnavailable(t *testing.T) {
	v := NewValidator(nil, testRegistry(t), discardLogger())

	outcome := v.Check(context.Background(), "any text", domain.RawClassification{})
	if outcome.Available {
		t.Fatalf("expected unavailable outcome without a classifier")
	}
}

func TestValidatorRecordsAgreement(t *testing.T) {
	registry := testRegistry(t)
	categoryKey := strings.Join(registry.CategoryNames(), "|")
	docTypeKey := strings.Join(registry.ValidatorDocTypes(), "|")
	fake := &zeroShotFake{scores: map[string][]ports.LabelScore{
		categoryKey: {
			{Label: "Contract", Score: 0.91},
			{Label: "Criminal Defense (Pretrial & Trial)", Score: 0.06},
		},
		docTypeKey: {
			{Label: "Affidavit", Score: 0.88},
		},
	}}
	v := NewValidator(fake, registry, discardLogger())

	outcome := v.Check(context.Background(), "sworn statement", domain.RawClassification{
		Category: "Contract",
		DocType:  "Affidavit",
	})
	if !outcome.Available {
		t.Fatalf("expected available outcome")
	}
	if !outcome.CategoryMatch || !outcome.DocTypeMatch {
		t.Errorf("expected agreement on both labels, got category=%v docType=%v", outcome.CategoryMatch, outcome.DocTypeMatch)
	}
	if outcome.CategoryConfidence != 0.91 || outcome.DocTypeConfidence != 0.88 {
		t.Errorf("confidences = %v / %v", outcome.CategoryConfidence, outcome.DocTypeConfidence)
	}
}

func TestValidatorRecordsDisagreement(t *testing.T) {
	registry := testRegistry(t)
	categoryKey := strings.Join(registry.CategoryNames(), "|")
	docTypeKey := strings.Join(registry.ValidatorDocTypes(), "|")
	fake := &zeroShotFake{scores: map[string][]ports.LabelScore{
		categoryKey: {{Label: "Criminal Defense (Pretrial & Trial)", Score: 0.77}},
		docTypeKey:  {{Label: "Affidavit", Score: 0.70}},
	}}
	v := NewValidator(fake, registry, discardLogger())

	outcome := v.Check(context.Background(), "indictment text", domain.RawClassification{
		Category: "Contract",
		DocType:  "Affidavit",
	})
	if !outcome.Available {
		t.Fatalf("expected available outcome")
	}
	if outcome.CategoryMatch {
		t.Errorf("expected category disagreement")
	}
	if !outcome.DocTypeMatch {
		t.Errorf("expected doc type agreement")
	}
	if outcome.Category != "Criminal Defense (Pretrial & Trial)" {
		t.Errorf("Category = %q", outcome.Category)
	}
}

func TestValidatorErrorYieldsUnavailable(t *testing.T) {
	fake := &zeroShotFake{err: errors.New("model loading")}
	v := NewValidator(fake, testRegistry(t), discardLogger())

	outcome := v.Check(context.Background(), "any text", domain.RawClassification{})
	if outcome.Available {
		t.Fatalf("expected unavailable outcome on classifier error")
	}
}

func TestValidatorEmptyScoresYieldUnavailable(t *testing.T) {
	registry := testRegistry(t)
	categoryKey := strings.Join(registry.CategoryNames(), "|")
	fake := &zeroShotFake{scores: map[string][]ports.LabelScore{
		categoryKey: {},
	}}
	v := NewValidator(fake, registry, discardLogger())

	outcome := v.Check(context.Background(), "any text", domain.RawClassification{})
	if outcome.Available {
		t.Fatalf("expected unavailable outcome on empty score list")
	}
}

package taxonomy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no categories",
			cfg:     Config{Entries: []Entry{{Name: "Affidavit", Kind: KindDocumentType}}},
			wantErr: "no categories",
		},
		{
			name: "duplicate category",
			cfg: Config{Entries: []Entry{
				{Name: "Asylum & Refugee", Kind: KindCategory},
				{Name: "Asylum & Refugee", Kind: KindCategory},
			}},
			wantErr: "duplicate category",
		},
		{
			name:    "empty name",
			cfg:     Config{Entries: []Entry{{Name: "   ", Kind: KindCategory}}},
			wantErr: "empty name",
		},
		{
			name:    "unknown kind",
			cfg:     Config{Entries: []Entry{{Name: "X", Kind: Kind("other")}}},
			wantErr: "unknown kind",
		},
		{
			name: "no-match category outside taxonomy",
			cfg: Config{
				Entries:         []Entry{{Name: "Criminal Appeals", Kind: KindCategory}},
				NoMatchCategory: "Nonexistent",
			},
			wantErr: "no-match category",
		},
		{
			name: "no-match doc type outside taxonomy",
			cfg: Config{
				Entries: []Entry{
					{Name: "Criminal Appeals", Kind: KindCategory},
					{Name: "Affidavit", Kind: KindDocumentType},
				},
				NoMatchDocType: "Nonexistent",
			},
			wantErr: "no-match document type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewDefaultsSentinels(t *testing.T) {
	r, err := New(Config{Entries: []Entry{
		{Name: "Criminal Appeals", Kind: KindCategory},
		{Name: "Affidavit", Kind: KindDocumentType},
		{Name: "Motion (Court Filing)", Kind: KindDocumentType},
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := r.NoMatchCategory(); got != "Criminal Appeals" {
		t.Errorf("NoMatchCategory = %q, want first category", got)
	}
	if got := r.NoMatchDocType(); got != "Affidavit" {
		t.Errorf("NoMatchDocType = %q, want first document type", got)
	}
	// With no explicit subset the validator scores every document type.
	if got := r.ValidatorDocTypes(); len(got) != 2 {
		t.Errorf("ValidatorDocTypes = %v, want all document types", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	if got := len(r.Categories()); got != 15 {
		t.Errorf("len(Categories) = %d, want 15", got)
	}
	if len(r.DocTypes()) < 40 {
		t.Errorf("len(DocTypes) = %d, want at least 40", len(r.DocTypes()))
	}
	if got := r.NoMatchCategory(); got != "Immigration Appeals & Motions" {
		t.Errorf("NoMatchCategory = %q", got)
	}
	if got := r.NoMatchDocType(); got != "Misc. Reference Material" {
		t.Errorf("NoMatchDocType = %q", got)
	}

	if _, ok := r.LookupCategory("Asylum & Refugee"); !ok {
		t.Error("LookupCategory(Asylum & Refugee) not found")
	}
	if _, ok := r.LookupCategory("asylum & refugee"); ok {
		t.Error("LookupCategory should be case-sensitive")
	}
	if _, ok := r.LookupDocType("Notice to Appear (NTA)"); !ok {
		t.Error("LookupDocType(Notice to Appear (NTA)) not found")
	}

	// Every curated example must reference taxonomy members.
	for _, ex := range r.Examples() {
		if _, ok := r.LookupCategory(ex.Category); !ok {
			t.Errorf("example %q references unknown category %q", ex.Text, ex.Category)
		}
		if _, ok := r.LookupDocType(ex.DocType); !ok {
			t.Errorf("example %q references unknown document type %q", ex.Text, ex.DocType)
		}
	}

	// The validator subset must be drawn from real document types.
	for _, name := range r.ValidatorDocTypes() {
		if _, ok := r.LookupDocType(name); !ok {
			t.Errorf("validator subset references unknown document type %q", name)
		}
	}

	if _, ok := r.MismatchNote("Notice to Appear (NTA)", "Criminal Defense (Pretrial & Trial)"); !ok {
		t.Error("expected NTA/criminal-defense pairing to be a known mismatch")
	}
	if _, ok := r.MismatchNote("Affidavit", "Asylum & Refugee"); ok {
		t.Error("unexpected mismatch for a valid pairing")
	}
}

func TestDefinitionText(t *testing.T) {
	e := Entry{
		Name:                 "Asylum & Refugee",
		Kind:                 KindCategory,
		Description:          "Protection claims.",
		Keywords:             []string{"asylum", "refugee"},
		ExampleDocumentTypes: []string{"asylum application"},
	}
	got := DefinitionText(e)
	for _, want := range []string{"Asylum & Refugee:", "Protection claims.", "Keywords: asylum, refugee", "Common documents: asylum application"} {
		if !strings.Contains(got, want) {
			t.Errorf("DefinitionText missing %q in %q", want, got)
		}
	}
}

func TestLoad(t *testing.T) {
	doc := `
categories:
  - name: Employment-Based Immigration
    description: Work sponsorship cases.
    keywords: [employment, perm]
document_types:
  - name: Official Form/Application
    description: Completed official form.
    keywords: [form]
examples:
  - text: PERM labor certification filing
    category: Employment-Based Immigration
    doc_type: Official Form/Application
no_match_category: Employment-Based Immigration
no_match_doc_type: Official Form/Application
`
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(r.Categories()); got != 1 {
		t.Fatalf("len(Categories) = %d, want 1", got)
	}
	e, ok := r.LookupCategory("Employment-Based Immigration")
	if !ok {
		t.Fatal("loaded category not found")
	}
	if len(e.Keywords) != 2 {
		t.Errorf("keywords = %v", e.Keywords)
	}
	if got := len(r.Examples()); got != 1 {
		t.Errorf("len(Examples) = %d, want 1", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

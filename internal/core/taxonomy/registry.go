package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind distinguishes the two entry families of the taxonomy.
type Kind string

const (
	KindCategory     Kind = "category"
	KindDocumentType Kind = "document_type"
)

// Entry is one taxonomy definition. Entries are immutable after load; the
// taxonomy is fixed for the lifetime of the process.
type Entry struct {
	Name                 string   `yaml:"name"`
	Kind                 Kind     `yaml:"kind"`
	Description          string   `yaml:"description"`
	Keywords             []string `yaml:"keywords"`
	ExampleDocumentTypes []string `yaml:"example_document_types"`
}

// Example is a curated classification example seeded into the similarity
// store to ground future retrieval context.
type Example struct {
	Text        string `yaml:"text"`
	Category    string `yaml:"category"`
	DocType     string `yaml:"doc_type"`
	Description string `yaml:"description"`
}

// Registry holds the category and document-type definitions. Read-only after
// construction.
type Registry struct {
	categories []Entry
	docTypes   []Entry

	categoryByName map[string]Entry
	docTypeByName  map[string]Entry

	examples         []Example
	validatorSubset  []string
	mismatches       map[mismatchKey]string
	noMatchCategory  string
	noMatchDocType   string
}

type mismatchKey struct {
	docType  string
	category string
}

// Mismatch marks a type/category pairing that indicates an internally
// inconsistent classification.
type Mismatch struct {
	DocType  string
	Category string
	Note     string
}

// Config assembles a registry from explicit parts. Used directly by tests;
// production code goes through Default or Load.
type Config struct {
	Entries         []Entry
	Examples        []Example
	ValidatorSubset []string
	Mismatches      []Mismatch
	NoMatchCategory string
	NoMatchDocType  string
}

func New(cfg Config) (*Registry, error) {
	r := &Registry{
		categoryByName:  make(map[string]Entry),
		docTypeByName:   make(map[string]Entry),
		examples:        cfg.Examples,
		validatorSubset: cfg.ValidatorSubset,
		mismatches:      make(map[mismatchKey]string),
		noMatchCategory: cfg.NoMatchCategory,
		noMatchDocType:  cfg.NoMatchDocType,
	}

	for _, entry := range cfg.Entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("taxonomy entry with empty name")
		}
		entry.Name = name
		switch entry.Kind {
		case KindCategory:
			if _, exists := r.categoryByName[name]; exists {
				return nil, fmt.Errorf("duplicate category %q", name)
			}
			r.categories = append(r.categories, entry)
			r.categoryByName[name] = entry
		case KindDocumentType:
			if _, exists := r.docTypeByName[name]; exists {
				return nil, fmt.Errorf("duplicate document type %q", name)
			}
			r.docTypes = append(r.docTypes, entry)
			r.docTypeByName[name] = entry
		default:
			return nil, fmt.Errorf("taxonomy entry %q has unknown kind %q", name, entry.Kind)
		}
	}

	if len(r.categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}
	if r.noMatchCategory == "" {
		r.noMatchCategory = r.categories[0].Name
	}
	if _, ok := r.categoryByName[r.noMatchCategory]; !ok {
		return nil, fmt.Errorf("no-match category %q is not in the taxonomy", r.noMatchCategory)
	}
	if r.noMatchDocType == "" && len(r.docTypes) > 0 {
		r.noMatchDocType = r.docTypes[0].Name
	}
	if r.noMatchDocType != "" {
		if _, ok := r.docTypeByName[r.noMatchDocType]; !ok {
			return nil, fmt.Errorf("no-match document type %q is not in the taxonomy", r.noMatchDocType)
		}
	}

	for _, m := range cfg.Mismatches {
		r.mismatches[mismatchKey{docType: m.DocType, category: m.Category}] = m.Note
	}

	if len(r.validatorSubset) == 0 {
		for _, dt := range r.docTypes {
			r.validatorSubset = append(r.validatorSubset, dt.Name)
		}
	}

	return r, nil
}

// Load reads a registry definition from a YAML file. The file replaces the
// built-in taxonomy wholesale; there is no merging.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var doc struct {
		Categories      []Entry    `yaml:"categories"`
		DocumentTypes   []Entry    `yaml:"document_types"`
		Examples        []Example  `yaml:"examples"`
		ValidatorSubset []string   `yaml:"validator_doc_types"`
		Mismatches      []Mismatch `yaml:"mismatches"`
		NoMatchCategory string     `yaml:"no_match_category"`
		NoMatchDocType  string     `yaml:"no_match_doc_type"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy yaml: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Categories)+len(doc.DocumentTypes))
	for _, c := range doc.Categories {
		c.Kind = KindCategory
		entries = append(entries, c)
	}
	for _, dt := range doc.DocumentTypes {
		dt.Kind = KindDocumentType
		entries = append(entries, dt)
	}

	return New(Config{
		Entries:         entries,
		Examples:        doc.Examples,
		ValidatorSubset: doc.ValidatorSubset,
		Mismatches:      doc.Mismatches,
		NoMatchCategory: doc.NoMatchCategory,
		NoMatchDocType:  doc.NoMatchDocType,
	})
}

// Categories returns the category entries in definition order.
func (r *Registry) Categories() []Entry { return r.categories }

// DocTypes returns the document-type entries in definition order.
func (r *Registry) DocTypes() []Entry { return r.docTypes }

func (r *Registry) CategoryNames() []string {
	names := make([]string, 0, len(r.categories))
	for _, c := range r.categories {
		names = append(names, c.Name)
	}
	return names
}

func (r *Registry) DocTypeNames() []string {
	names := make([]string, 0, len(r.docTypes))
	for _, dt := range r.docTypes {
		names = append(names, dt.Name)
	}
	return names
}

// LookupCategory resolves an exact, case-sensitive category name.
func (r *Registry) LookupCategory(name string) (Entry, bool) {
	e, ok := r.categoryByName[name]
	return e, ok
}

// LookupDocType resolves an exact, case-sensitive document-type name.
func (r *Registry) LookupDocType(name string) (Entry, bool) {
	e, ok := r.docTypeByName[name]
	return e, ok
}

// NoMatchCategory is the sentinel used when no stage maps a response onto the
// taxonomy.
func (r *Registry) NoMatchCategory() string { return r.noMatchCategory }

// NoMatchDocType is the sentinel document type for unmapped responses.
func (r *Registry) NoMatchDocType() string { return r.noMatchDocType }

// Examples returns the curated classification examples.
func (r *Registry) Examples() []Example { return r.examples }

// ValidatorDocTypes is the representative document-type subset the zero-shot
// validator scores against. The full list is too wide to be tractable.
func (r *Registry) ValidatorDocTypes() []string { return r.validatorSubset }

// MismatchNote reports whether a type/category pairing is a known
// inconsistency, with the explanatory note.
func (r *Registry) MismatchNote(docType, category string) (string, bool) {
	note, ok := r.mismatches[mismatchKey{docType: docType, category: category}]
	return note, ok
}

// DefinitionText renders a category entry into the text that gets embedded
// for the similarity store's definitions collection.
func DefinitionText(e Entry) string {
	return fmt.Sprintf("%s: %s Keywords: %s Common documents: %s",
		e.Name,
		e.Description,
		strings.Join(e.Keywords, ", "),
		strings.Join(e.ExampleDocumentTypes, ", "),
	)
}

package domain

// SimilarCategory is a taxonomy definition returned by similarity search.
type SimilarCategory struct {
	Name        string
	Description string
	Keywords    []string
	Score       float64
}

// SimilarExample is a curated classification example near the query text.
type SimilarExample struct {
	Text     string
	Category string
	DocType  string
	Score    float64
}

// SimilarDocument is a previously classified document near the query text.
type SimilarDocument struct {
	Filename string
	Category string
	DocType  string
	Score    float64
}

// RetrievalContext bundles the three similarity searches grounding one
// classification attempt. Each slice is descending by score; an empty slice
// means the corresponding collection was empty or unreachable.
type RetrievalContext struct {
	SimilarCategories []SimilarCategory
	SimilarExamples   []SimilarExample
	SimilarDocuments  []SimilarDocument
}

// Empty reports whether no retrieval signal of any kind is present.
func (c RetrievalContext) Empty() bool {
	return len(c.SimilarCategories) == 0 &&
		len(c.SimilarExamples) == 0 &&
		len(c.SimilarDocuments) == 0
}

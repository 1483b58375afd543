package usecase

import (
	"context"
	"log/slog"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
)

// Collections names the three logical similarity collections the engine
// reads and writes.
type Collections struct {
	Categories string
	Examples   string
	Documents  string
}

func DefaultCollections() Collections {
	return Collections{
		Categories: "legal_categories",
		Examples:   "classification_examples",
		Documents:  "classified_documents",
	}
}

// ContextRetriever grounds a classification attempt in similarity search:
// nearest taxonomy definitions, nearest curated examples, and nearest
// previously classified documents. Read-only.
type ContextRetriever struct {
	embedder    ports.Embedder
	store       ports.SimilarityStore
	collections Collections
	topK        int
	logger      *slog.Logger
}

func NewContextRetriever(embedder ports.Embedder, store ports.SimilarityStore, collections Collections, topK int, logger *slog.Logger) *ContextRetriever {
	if topK <= 0 {
		topK = 5
	}
	return &ContextRetriever{
		embedder:    embedder,
		store:       store,
		collections: collections,
		topK:        topK,
		logger:      logger,
	}
}

// Retrieve builds the RetrievalContext for one document. Each of the three
// searches independently degrades to an empty sequence when its collection
// is empty or unreachable; only failure to embed the query text is a hard
// error.
func (r *ContextRetriever) Retrieve(ctx context.Context, text string) (domain.RetrievalContext, error) {
	vector, err := r.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return domain.RetrievalContext{}, domain.WrapError(domain.ErrUnavailable, "embed query text", err)
	}

	rc := domain.RetrievalContext{
		SimilarCategories: r.searchCategories(ctx, vector),
		SimilarExamples:   r.searchExamples(ctx, vector),
		SimilarDocuments:  r.searchDocuments(ctx, vector),
	}
	return rc, nil
}

func (r *ContextRetriever) searchCategories(ctx context.Context, vector []float32) []domain.SimilarCategory {
	hits, err := r.store.Search(ctx, r.collections.Categories, vector, r.topK)
	if err != nil {
		r.logger.Warn("category similarity search degraded to empty", "collection", r.collections.Categories, "error", err)
		return nil
	}
	out := make([]domain.SimilarCategory, 0, len(hits))
	for _, hit := range hits {
		out = append(out, domain.SimilarCategory{
			Name:        payloadString(hit.Payload, "name"),
			Description: payloadString(hit.Payload, "description"),
			Keywords:    payloadStrings(hit.Payload, "keywords"),
			Score:       hit.Score,
		})
	}
	return out
}

func (r *ContextRetriever) searchExamples(ctx context.Context, vector []float32) []domain.SimilarExample {
	hits, err := r.store.Search(ctx, r.collections.Examples, vector, r.topK)
	if err != nil {
		r.logger.Warn("example similarity search degraded to empty", "collection", r.collections.Examples, "error", err)
		return nil
	}
	out := make([]domain.SimilarExample, 0, len(hits))
	for _, hit := range hits {
		out = append(out, domain.SimilarExample{
			Text:     payloadString(hit.Payload, "text"),
			Category: payloadString(hit.Payload, "category"),
			DocType:  payloadString(hit.Payload, "doc_type"),
			Score:    hit.Score,
		})
	}
	return out
}

func (r *ContextRetriever) searchDocuments(ctx context.Context, vector []float32) []domain.SimilarDocument {
	hits, err := r.store.Search(ctx, r.collections.Documents, vector, r.topK)
	if err != nil {
		r.logger.Warn("past-document similarity search degraded to empty", "collection", r.collections.Documents, "error", err)
		return nil
	}
	out := make([]domain.SimilarDocument, 0, len(hits))
	for _, hit := range hits {
		out = append(out, domain.SimilarDocument{
			Filename: payloadString(hit.Payload, "filename"),
			Category: payloadString(hit.Payload, "category"),
			DocType:  payloadString(hit.Payload, "doc_type"),
			Score:    hit.Score,
		})
	}
	return out
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func payloadStrings(payload map[string]any, key string) []string {
	switch v := payload[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

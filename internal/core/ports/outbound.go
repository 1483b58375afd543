package ports

import (
	"context"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
)

// Embedder builds the query vector for similarity retrieval.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Point is one vector with its payload, addressed by ID within a collection.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// ScoredPayload is a search hit: the stored payload plus its similarity score.
type ScoredPayload struct {
	Score   float64
	Payload map[string]any
}

// SimilarityStore indexes and searches vectors across named collections.
type SimilarityStore interface {
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
	Upsert(ctx context.Context, collection string, points []Point) error
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]ScoredPayload, error)
	Count(ctx context.Context, collection string) (int, error)
}

// CompletionClient produces a free-text completion for a prompt.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// LocalModel is a completion client whose weights occupy local memory and
// can be released between batches.
type LocalModel interface {
	CompletionClient
	Unload(ctx context.Context) error
}

// LabelScore is one candidate label with the validator's confidence in it.
type LabelScore struct {
	Label string
	Score float64
}

// ZeroShotClassifier scores a text against candidate labels without
// task-specific training. Results are descending by score.
type ZeroShotClassifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]LabelScore, error)
}

// ClassificationStore persists final classification records.
type ClassificationStore interface {
	EnsureSchema(ctx context.Context) error
	SaveResult(ctx context.Context, record *domain.ClassificationRecord) error
}

// JobQueue publishes and consumes classification jobs.
type JobQueue interface {
	PublishClassificationJob(ctx context.Context, job domain.ClassificationJob) error
	SubscribeClassificationJobs(ctx context.Context, handler func(context.Context, domain.ClassificationJob) error) error
}

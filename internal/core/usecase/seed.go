package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// Seeder populates the similarity store with the taxonomy's category
// definitions and curated examples so retrieval has grounding from the first
// classification. Seeding is idempotent: collections that already hold
// points are left untouched.
type Seeder struct {
	embedder    ports.Embedder
	store       ports.SimilarityStore
	registry    *taxonomy.Registry
	collections Collections
	vectorSize  int
	logger      *slog.Logger
}

func NewSeeder(embedder ports.Embedder, store ports.SimilarityStore, registry *taxonomy.Registry, collections Collections, vectorSize int, logger *slog.Logger) *Seeder {
	return &Seeder{
		embedder:    embedder,
		store:       store,
		registry:    registry,
		collections: collections,
		vectorSize:  vectorSize,
		logger:      logger,
	}
}

// Seed ensures all three collections exist and loads definitions/examples
// into the two static ones when empty.
func (s *Seeder) Seed(ctx context.Context) error {
	for _, collection := range []string{s.collections.Categories, s.collections.Examples, s.collections.Documents} {
		if err := s.store.EnsureCollection(ctx, collection, s.vectorSize); err != nil {
			return fmt.Errorf("ensure collection %s: %w", collection, err)
		}
	}

	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	return s.seedExamples(ctx)
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	count, err := s.store.Count(ctx, s.collections.Categories)
	if err != nil {
		return fmt.Errorf("count %s: %w", s.collections.Categories, err)
	}
	if count > 0 {
		s.logger.Debug("category definitions already seeded", "count", count)
		return nil
	}

	points := make([]ports.Point, 0, len(s.registry.Categories()))
	for _, entry := range s.registry.Categories() {
		vector, err := s.embedder.EmbedQuery(ctx, taxonomy.DefinitionText(entry))
		if err != nil {
			return fmt.Errorf("embed category definition %q: %w", entry.Name, err)
		}
		points = append(points, ports.Point{
			ID:     uuid.NewString(),
			Vector: vector,
			Payload: map[string]any{
				"name":        entry.Name,
				"description": entry.Description,
				"keywords":    entry.Keywords,
			},
		})
	}
	if err := s.store.Upsert(ctx, s.collections.Categories, points); err != nil {
		return fmt.Errorf("seed category definitions: %w", err)
	}
	s.logger.Info("seeded category definitions", "count", len(points))
	return nil
}

func (s *Seeder) seedExamples(ctx context.Context) error {
	count, err := s.store.Count(ctx, s.collections.Examples)
	if err != nil {
		return fmt.Errorf("count %s: %w", s.collections.Examples, err)
	}
	if count > 0 {
		s.logger.Debug("classification examples already seeded", "count", count)
		return nil
	}

	examples := s.registry.Examples()
	points := make([]ports.Point, 0, len(examples))
	for _, ex := range examples {
		vector, err := s.embedder.EmbedQuery(ctx, ex.Text)
		if err != nil {
			return fmt.Errorf("embed example %q: %w", ex.Text, err)
		}
		points = append(points, ports.Point{
			ID:     uuid.NewString(),
			Vector: vector,
			Payload: map[string]any{
				"text":        ex.Text,
				"category":    ex.Category,
				"doc_type":    ex.DocType,
				"description": ex.Description,
			},
		})
	}
	if len(points) == 0 {
		return nil
	}
	if err := s.store.Upsert(ctx, s.collections.Examples, points); err != nil {
		return fmt.Errorf("seed classification examples: %w", err)
	}
	s.logger.Info("seeded classification examples", "count", len(points))
	return nil
}

package qdrant

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
)

// MemoryStore is an in-process similarity store with the same contract as
// the Qdrant client. Used when no Qdrant endpoint is configured and in
// tests; cosine similarity, exact search.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]ports.Point
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]ports.Point)}
}

func (s *MemoryStore) EnsureCollection(_ context.Context, collection string, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = nil
	}
	return nil
}

func (s *MemoryStore) Upsert(_ context.Context, collection string, points []ports.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.collections[collection]
	for _, p := range points {
		replaced := false
		for i := range existing {
			if existing[i].ID == p.ID {
				existing[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, p)
		}
	}
	s.collections[collection] = existing
	return nil
}

func (s *MemoryStore) Search(_ context.Context, collection string, vector []float32, limit int) ([]ports.ScoredPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.collections[collection]
	if !ok {
		return nil, domain.WrapError(domain.ErrRecordNotFound, "memory search", errCollectionMissing(collection))
	}

	hits := make([]ports.ScoredPayload, 0, len(points))
	for _, p := range points {
		hits = append(hits, ports.ScoredPayload{
			Score:   cosineSimilarity(vector, p.Vector),
			Payload: p.Payload,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *MemoryStore) Count(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection]), nil
}

type errCollectionMissing string

func (e errCollectionMissing) Error() string { return "collection " + string(e) + " does not exist" }

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

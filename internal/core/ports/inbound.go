package ports

import (
	"context"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
)

// DocumentClassifier is the inbound contract for classifying one document.
// The implementation is total over textual input: malformed, empty, or
// garbled text yields a low-confidence result flagged for review, not an
// error. A non-nil error indicates the engine itself is misconfigured.
type DocumentClassifier interface {
	Classify(ctx context.Context, text, filename string) (*domain.ClassificationResult, error)
}

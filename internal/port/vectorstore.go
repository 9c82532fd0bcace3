package port

import (
	"context"

	"docingest/internal/domain"
)

// VectorStore persists embedded chunks under a namespace.
type VectorStore interface {
	// Upsert adds or replaces records in the given namespace.
	Upsert(ctx context.Context, namespace string, records []domain.VectorRecord) error

	// Count returns the number of vectors stored in the namespace.
	Count(ctx context.Context, namespace string) (int, error)

	Close() error
}

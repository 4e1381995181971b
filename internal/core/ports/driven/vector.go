package driven

import (
	"context"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// VectorIndex owns a persistent, named collection of embedded chunks and
// answers similarity queries over it. It embeds documents and queries with
// the same EmbeddingService.
//
// A VectorIndex never reindexes on its own and never repairs an empty
// store; callers decide from Count whether a rebuild is needed.
type VectorIndex interface {
	// Reindex replaces the whole collection with chunks, in order.
	// An empty slice is a no-op.
	Reindex(ctx context.Context, chunks []domain.Chunk) error

	// Search returns at most topK results ordered by ascending cosine
	// distance. A non-empty category restricts results to chunks whose
	// category metadata equals it exactly. No match yields an empty slice.
	Search(ctx context.Context, query string, topK int, category string) ([]domain.SearchResult, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)

	// Reset destroys and recreates the collection empty.
	Reset(ctx context.Context) error

	// Name returns the collection namespace.
	Name() string

	// Close releases the collection handle.
	Close() error
}

package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/gichul/internal/adapters/driven/storage/vectors"
	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/logger"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is an in-memory implementation of driven.VectorIndex.
// It follows the same replace, filter and ranking rules as the SQLite index.
type VectorIndex struct {
	mu       sync.RWMutex
	name     string
	embedder driven.EmbeddingService
	entries  []vectors.Entry
}

// NewVectorIndex creates an empty in-memory collection.
func NewVectorIndex(name string, embedder driven.EmbeddingService) *VectorIndex {
	if name == "" {
		name = domain.DefaultCollectionName
	}
	return &VectorIndex{
		name:     name,
		embedder: embedder,
	}
}

// Reindex replaces the collection with chunks.
func (v *VectorIndex) Reindex(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		logger.Info("Nothing to index")
		return nil
	}
	if v.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.entries = nil
	position := 0
	for _, batch := range vectors.Batches(chunks, vectors.BatchSize) {
		embeddings, err := v.embedder.EmbedBatch(ctx, vectors.Texts(batch))
		if err != nil {
			return fmt.Errorf("embed batch: %w", err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embed batch: got %d embeddings for %d chunks", len(embeddings), len(batch))
		}
		for i, c := range batch {
			v.entries = append(v.entries, vectors.Entry{
				Position:  position,
				ID:        c.ID,
				Text:      c.Text,
				Metadata:  c.Metadata,
				Embedding: embeddings[i],
			})
			position++
		}
		logger.Debug("Indexed %d/%d chunks", position, len(chunks))
	}
	return nil
}

// Search returns at most topK entries closest to query.
func (v *VectorIndex) Search(
	ctx context.Context, query string, topK int, category string,
) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return []domain.SearchResult{}, nil
	}
	if v.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	embedding, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	v.mu.RLock()
	candidates := make([]vectors.Entry, 0, len(v.entries))
	for _, e := range v.entries {
		if category == "" || e.Metadata.Category == category {
			candidates = append(candidates, e)
		}
	}
	v.mu.RUnlock()

	return vectors.Rank(embedding, candidates, topK), nil
}

// Count returns the number of stored entries.
func (v *VectorIndex) Count(_ context.Context) (int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries), nil
}

// Reset empties the collection.
func (v *VectorIndex) Reset(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = nil
	return nil
}

// Name returns the collection namespace.
func (v *VectorIndex) Name() string {
	return v.name
}

// Close releases nothing; the embedder is owned by the caller.
func (v *VectorIndex) Close() error {
	return nil
}

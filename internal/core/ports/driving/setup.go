package driving

import (
	"context"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// SetupService builds the knowledge base: collect, chunk, index.
type SetupService interface {
	// Run collects raw questions, persists them, builds and persists chunks,
	// then reindexes the collection.
	Run(ctx context.Context, req domain.SetupRequest) (*domain.SetupReport, error)
}

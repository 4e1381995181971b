package driving

import (
	"context"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// PracticeService answers keyword queries against the knowledge base.
type PracticeService interface {
	// Search returns references for a keyword.
	// Returns domain.ErrIndexEmpty when nothing has been indexed.
	Search(ctx context.Context, keyword, category string, topK int) ([]domain.SearchResult, error)

	// Generate searches for references and produces practice questions.
	// Returns domain.ErrNotFound when no reference matches.
	Generate(ctx context.Context, req domain.PracticeRequest) (*domain.PracticeResult, error)

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)

	// Reset destroys and recreates the collection.
	Reset(ctx context.Context) error

	// Categories returns the known subject areas.
	Categories() []string

	// CollectionName returns the collection namespace.
	CollectionName() string
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/core/ports/driving"
	"github.com/custodia-labs/gichul/internal/logger"
)

// Ensure PracticeService implements the interface.
var _ driving.PracticeService = (*PracticeService)(nil)

// PracticeConfig holds retrieval and generation defaults.
type PracticeConfig struct {
	// TopK is the default number of references.
	TopK int

	// NumQuestions is the default number of generated questions.
	NumQuestions int

	// Categories lists the known subject areas.
	Categories []string
}

// PracticeService searches the collection and drives generation.
type PracticeService struct {
	index     driven.VectorIndex
	generator *Generator
	cfg       PracticeConfig
}

// NewPracticeService creates a new practice service.
func NewPracticeService(index driven.VectorIndex, generator *Generator, cfg PracticeConfig) *PracticeService {
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	if cfg.NumQuestions <= 0 {
		cfg.NumQuestions = domain.DefaultNumQuestions
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = domain.DefaultCategories()
	}
	if generator == nil {
		generator = NewGenerator(nil, nil, GeneratorConfig{})
	}
	return &PracticeService{
		index:     index,
		generator: generator,
		cfg:       cfg,
	}
}

// Search returns references for keyword, most similar first.
func (s *PracticeService) Search(
	ctx context.Context, keyword, category string, topK int,
) ([]domain.SearchResult, error) {
	logger.Section("Search")
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: empty keyword", domain.ErrInvalidInput)
	}
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	count, err := s.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	if count == 0 {
		return nil, domain.ErrIndexEmpty
	}

	if topK <= 0 {
		topK = s.cfg.TopK
	}
	category = strings.TrimSpace(category)
	logger.Debug("Query: %q, category: %q, topK: %d", keyword, category, topK)

	results, err := s.index.Search(ctx, keyword, topK, category)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Found %d references", len(results))
	return results, nil
}

// Generate searches for references and produces practice questions.
func (s *PracticeService) Generate(ctx context.Context, req domain.PracticeRequest) (*domain.PracticeResult, error) {
	refs, err := s.Search(ctx, req.Keyword, req.Category, req.TopK)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no references for %q", domain.ErrNotFound, req.Keyword)
	}

	num := req.Num
	if num <= 0 {
		num = s.cfg.NumQuestions
	}

	logger.Section("Generate")
	gen := s.generator.Generate(ctx, strings.TrimSpace(req.Keyword), refs, num)
	logger.Info("Generated %s output (%d chars)", gen.Kind, len(gen.Text))

	return &domain.PracticeResult{
		References: refs,
		Generation: gen,
	}, nil
}

// Count returns the number of indexed chunks.
func (s *PracticeService) Count(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, domain.ErrVectorIndexUnavailable
	}
	return s.index.Count(ctx)
}

// Reset destroys and recreates the collection.
func (s *PracticeService) Reset(ctx context.Context) error {
	if s.index == nil {
		return domain.ErrVectorIndexUnavailable
	}
	return s.index.Reset(ctx)
}

// Categories returns the known subject areas.
func (s *PracticeService) Categories() []string {
	return append([]string(nil), s.cfg.Categories...)
}

// CollectionName returns the collection namespace.
func (s *PracticeService) CollectionName() string {
	if s.index == nil {
		return ""
	}
	return s.index.Name()
}

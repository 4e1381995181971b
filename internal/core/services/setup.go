package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/core/ports/driving"
	"github.com/custodia-labs/gichul/internal/logger"
)

// Ensure SetupService implements the interface.
var _ driving.SetupService = (*SetupService)(nil)

// SetupService runs the collect, chunk and index pipeline.
type SetupService struct {
	sources   driven.SourceFactory
	questions driven.QuestionStore
	chunks    driven.ChunkStore
	index     driven.VectorIndex
}

// NewSetupService creates a new setup service.
func NewSetupService(
	sources driven.SourceFactory,
	questions driven.QuestionStore,
	chunks driven.ChunkStore,
	index driven.VectorIndex,
) *SetupService {
	return &SetupService{
		sources:   sources,
		questions: questions,
		chunks:    chunks,
		index:     index,
	}
}

// Run collects raw questions, persists them, builds and persists chunks,
// then reindexes the collection.
func (s *SetupService) Run(ctx context.Context, req domain.SetupRequest) (*domain.SetupReport, error) {
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	logger.Section("Collect")
	source, questions, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoSourceData
	}
	logger.Info("Collected %d questions from %s", len(questions), source)

	if err := s.questions.Save(questions); err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}
	logger.Debug("Saved raw questions to %s", s.questions.Path())

	logger.Section("Chunk")
	chunks := BuildChunks(questions)
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	if err := s.chunks.Save(chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}
	logger.Info("Built %d chunks -> %s", len(chunks), s.chunks.Path())

	logger.Section("Index")
	if err := s.index.Reindex(ctx, chunks); err != nil {
		return nil, fmt.Errorf("reindex: %w", err)
	}
	count, err := s.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	return &domain.SetupReport{
		Source:    source,
		Questions: len(questions),
		Chunks:    len(chunks),
		Indexed:   count,
	}, nil
}

// collect walks the source tiers in order and returns the first non-empty
// result: requested web pages and PDFs, then the question file, then the
// embedded sample set.
func (s *SetupService) collect(ctx context.Context, req domain.SetupRequest) (string, []domain.RawQuestion, error) {
	var tiers [][]driven.QuestionSource

	var primary []driven.QuestionSource
	if len(req.URLs) > 0 {
		primary = append(primary, s.sources.Web(req.URLs))
	}
	if len(req.PDFs) > 0 {
		primary = append(primary, s.sources.PDF(req.PDFs))
	}
	if len(primary) > 0 {
		tiers = append(tiers, primary)
	}
	if req.QuestionFile != "" {
		tiers = append(tiers, []driven.QuestionSource{s.sources.File(req.QuestionFile)})
	}
	tiers = append(tiers, []driven.QuestionSource{s.sources.Sample()})

	for i, tier := range tiers {
		var names []string
		var collected []domain.RawQuestion
		for _, src := range tier {
			qs, err := src.Fetch(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return "", nil, err
				}
				logger.Warn("%s source failed: %v", src.Name(), err)
				continue
			}
			logger.Debug("%s source returned %d questions", src.Name(), len(qs))
			if len(qs) > 0 {
				names = append(names, src.Name())
				collected = append(collected, qs...)
			}
		}
		if len(collected) > 0 {
			return strings.Join(names, "+"), collected, nil
		}
		if i < len(tiers)-1 {
			logger.Warn("No questions collected, trying next source")
		}
	}

	return "", nil, nil
}

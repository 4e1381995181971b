// Package file imports exam questions from a raw-question JSON file.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/logger"
	"github.com/custodia-labs/gichul/internal/normalisers/exam"
)

var _ driven.QuestionSource = (*Source)(nil)

// Source reads one JSON array of question records.
type Source struct {
	path string
}

// New creates a file source for path.
func New(path string) *Source {
	return &Source{path: path}
}

// Name identifies the source.
func (s *Source) Name() string {
	return "file"
}

// Fetch loads and validates the file. A missing file yields no questions;
// malformed JSON is an error.
func (s *Source) Fetch(ctx context.Context) ([]domain.RawQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("question file %s not found", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	return exam.Decode(data, s.path)
}

// Package sample provides a built-in set of representative exam questions.
package sample

import (
	"context"
	_ "embed"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/normalisers/exam"
)

//go:embed sample_questions.json
var sampleQuestions []byte

var _ driven.QuestionSource = (*Source)(nil)

// Source serves the embedded sample set. It never touches the network.
type Source struct{}

// New creates the sample source.
func New() *Source {
	return &Source{}
}

// Name identifies the source.
func (s *Source) Name() string {
	return "sample"
}

// Fetch decodes the embedded questions.
func (s *Source) Fetch(ctx context.Context) ([]domain.RawQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return exam.Decode(sampleQuestions, "embedded sample set")
}

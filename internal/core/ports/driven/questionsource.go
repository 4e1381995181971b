package driven

import (
	"context"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// QuestionSource produces raw exam questions from one origin.
// An unavailable origin yields an empty slice rather than failing the
// whole collection step; errors are reserved for misconfiguration.
type QuestionSource interface {
	// Name identifies the source in logs and setup reports.
	Name() string

	// Fetch collects questions.
	Fetch(ctx context.Context) ([]domain.RawQuestion, error)
}

// SourceFactory builds question sources for a setup run.
// Each method returns a source bound to its inputs.
type SourceFactory interface {
	// Web returns a source that scrapes the given pages.
	Web(urls []string) QuestionSource

	// PDF returns a source that parses the given local PDF files.
	PDF(paths []string) QuestionSource

	// File returns a source that imports a raw-question JSON file.
	File(path string) QuestionSource

	// Sample returns the embedded sample question set.
	Sample() QuestionSource
}

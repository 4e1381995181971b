package driven

import "github.com/custodia-labs/gichul/internal/core/domain"

// ChunkStore persists an ordered chunk set.
// A Save followed by Load returns the same sequence.
type ChunkStore interface {
	// Save replaces the stored chunk set.
	Save(chunks []domain.Chunk) error

	// Load returns the stored chunk set, or an empty slice if none exists.
	Load() ([]domain.Chunk, error)

	// Path returns the backing file location.
	Path() string
}

// QuestionStore persists the collected raw questions.
type QuestionStore interface {
	// Save replaces the stored questions.
	Save(questions []domain.RawQuestion) error

	// Load returns the stored questions, or an empty slice if none exist.
	Load() ([]domain.RawQuestion, error)

	// Path returns the backing file location.
	Path() string
}

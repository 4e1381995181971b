package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or source type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Generation degrades to the template path without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service could not be created.
	// The vector index cannot be built or queried without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// Pipeline Errors.

	// ErrNoSourceData indicates every question source came back empty.
	ErrNoSourceData = errors.New("no question data available")

	// ErrEmptyCorpus indicates chunking produced nothing to index.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrIndexEmpty indicates the collection holds no rows at query time.
	// Callers are expected to offer a rebuild.
	ErrIndexEmpty = errors.New("vector index is empty")
)

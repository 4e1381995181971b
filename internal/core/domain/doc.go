// Package domain defines the core business entities for gichul.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawQuestion: A past exam question as produced by a question source
//   - Chunk: The single retrievable unit built from one RawQuestion
//   - SearchResult: A chunk returned by a similarity query
//   - Generation: The outcome of a practice-question generation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package hashing provides an offline embedding service based on feature
// hashing of character n-grams and whitespace tokens.
//
// The vectors carry no learned semantics, but overlapping terms such as
// "SQL" or "정규화" land in the same buckets, which is enough to rank a
// small exam corpus without any network access.
package hashing

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = domain.DefaultHashingModel
	DefaultDimensions = domain.DefaultHashingDimension
	maxNGram          = 3
	tokenPrefix       = "\x00w:"
)

// Config holds configuration for the hashing embedding service.
type Config struct {
	// Dimensions is the number of hash buckets (default: 512).
	Dimensions int
}

// EmbeddingService embeds text by hashing features into a fixed vector.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a new hashing embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: cfg.Dimensions}
}

// Embed generates a unit-length vector for text. Empty text yields the
// zero vector.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float64, s.dimensions)
	for _, feature := range features(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(feature))
		sum := h.Sum32()
		bucket := int(sum % uint32(s.dimensions))
		if sum&(1<<31) != 0 {
			vec[bucket]--
		} else {
			vec[bucket]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, s.dimensions)
	if norm == 0 {
		return out, nil
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// EmbedBatch embeds each text in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the feature scheme identifier.
func (s *EmbeddingService) ModelName() string {
	return DefaultModel
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// features returns the character 1..3-grams of the normalised text and
// its whitespace tokens.
func features(text string) []string {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil
	}
	runes := []rune(strings.Join(tokens, " "))

	out := make([]string, 0, len(runes)*maxNGram+len(tokens))
	for n := 1; n <= maxNGram; n++ {
		for i := 0; i+n <= len(runes); i++ {
			gram := runes[i : i+n]
			if n == 1 && gram[0] == ' ' {
				continue
			}
			out = append(out, string(gram))
		}
	}
	for _, tok := range tokens {
		out = append(out, tokenPrefix+tok)
	}
	return out
}

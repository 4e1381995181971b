package driven

import (
	"context"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// AIConfigValidator checks that provider settings reach a working service.
// Settings that leave a provider unconfigured validate successfully.
type AIConfigValidator interface {
	ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error
	ValidateLLM(ctx context.Context, config *domain.LLMSettings) error
}

package ai

import (
	"context"
	"time"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator builds the configured adapter and pings it, bounded by Timeout.
type ConfigValidator struct {
	Timeout time.Duration
}

// NewConfigValidator returns a validator using the default ping timeout.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{Timeout: pingTimeout}
}

// ValidateEmbedding pings the embedding provider described by config.
func (v *ConfigValidator) ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error {
	ctx, cancel := v.bound(ctx)
	defer cancel()
	return ValidateEmbeddingConfig(ctx, config)
}

// ValidateLLM pings the LLM provider described by config.
func (v *ConfigValidator) ValidateLLM(ctx context.Context, config *domain.LLMSettings) error {
	ctx, cancel := v.bound(ctx)
	defer cancel()
	return ValidateLLMConfig(ctx, config)
}

func (v *ConfigValidator) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if v.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, v.Timeout)
}

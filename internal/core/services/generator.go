package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/logger"
)

// Fallback reasons reported on template generations.
const (
	reasonNoLLM         = "no LLM configured"
	reasonEmptyResponse = "LLM returned an empty response"
)

// GeneratorConfig holds the fixed sampling parameters for the model path.
type GeneratorConfig struct {
	// MaxTokens caps the generated output length.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64
}

// Generator orchestrates practice generation. With an LLM it makes one
// synchronous call; when there is no LLM, or the call fails for any reason,
// it returns the template output instead. It never returns an error and
// never returns partial model output.
type Generator struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	cfg     GeneratorConfig
}

// NewGenerator creates a generator. llm and prompts may be nil.
func NewGenerator(llm driven.LLMService, prompts driven.PromptStore, cfg GeneratorConfig) *Generator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = domain.DefaultMaxTokens
	}
	return &Generator{
		llm:     llm,
		prompts: prompts,
		cfg:     cfg,
	}
}

// HasLLM reports whether the model path is available.
func (g *Generator) HasLLM() bool {
	return g.llm != nil
}

// Generate produces n practice questions about keyword grounded in results.
func (g *Generator) Generate(
	ctx context.Context, keyword string, results []domain.SearchResult, n int,
) domain.Generation {
	if g.llm == nil {
		logger.Debug("Generation path: template (%s)", reasonNoLLM)
		return domain.FallbackOutput(RenderTemplate(keyword, results, n), reasonNoLLM)
	}

	logger.Debug("Generation path: model %s (max_tokens=%d, temperature=%.2f)",
		g.llm.ModelName(), g.cfg.MaxTokens, g.cfg.Temperature)

	text, err := g.callModel(ctx, keyword, results, n)
	if err != nil {
		logger.Warn("LLM call failed, using template: %v", err)
		return domain.FallbackOutput(RenderTemplate(keyword, results, n), err.Error())
	}

	return domain.ModelOutput(text, g.llm.ModelName())
}

func (g *Generator) callModel(
	ctx context.Context, keyword string, results []domain.SearchResult, n int,
) (string, error) {
	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: g.loadPrompt(domain.PromptPracticeSystem)},
		{Role: driven.RoleUser, Content: g.userPrompt(keyword, results, n)},
	}

	text, err := g.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: driven.Float(g.cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New(reasonEmptyResponse)
	}
	return text, nil
}

// userPrompt builds the user message embedding keyword, context and count.
func (g *Generator) userPrompt(keyword string, results []domain.SearchResult, n int) string {
	return fmt.Sprintf(g.loadPrompt(domain.PromptPracticeUser), keyword, AssembleContext(results), n)
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (g *Generator) loadPrompt(name string) string {
	fallback := domain.DefaultPrompts()[name]
	if g.prompts == nil {
		return fallback
	}
	prompt, err := g.prompts.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}

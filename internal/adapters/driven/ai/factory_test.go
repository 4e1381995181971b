package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	result := &InitResult{}
	assert.NotPanics(t, result.Close)
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantNil  bool
		wantDims int
		wantErr  bool
	}{
		{name: "nil settings", settings: nil, wantNil: true},
		{name: "unconfigured", settings: &domain.EmbeddingSettings{}, wantNil: true},
		{
			name:     "hashing",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderHashing, Model: domain.DefaultHashingModel},
			wantDims: domain.DefaultHashingDimension,
		},
		{
			name:     "hashing custom dims",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderHashing, Dimensions: 64},
			wantDims: 64,
		},
		{
			name:     "ollama",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOllama, Model: "all-minilm"},
			wantDims: 384,
		},
		{
			name:     "openai",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI, APIKey: "k", Model: "text-embedding-3-small"},
			wantDims: 1536,
		},
		{
			name:     "gemini",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderGemini, APIKey: "k", Model: "text-embedding-004"},
			wantDims: 768,
		},
		{
			name:     "openai without key is unconfigured",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
			wantNil:  true,
		},
		{
			name:     "anthropic has no embeddings",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(context.Background(), tt.settings)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			defer svc.Close()
			assert.Equal(t, tt.wantDims, svc.Dimensions())
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantModel string
	}{
		{name: "nil settings", settings: nil, wantNil: true},
		{name: "unconfigured", settings: &domain.LLMSettings{}, wantNil: true},
		{name: "openai without key", settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI}, wantNil: true},
		{name: "hashing is not an LLM", settings: &domain.LLMSettings{Provider: domain.AIProviderHashing}, wantNil: true},
		{
			name:      "ollama",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "qwen2"},
			wantModel: "qwen2",
		},
		{
			name:      "openai",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"},
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "anthropic",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name:      "gemini",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderGemini, APIKey: "k", Model: "gemini-2.0-flash"},
			wantModel: "gemini-2.0-flash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(context.Background(), tt.settings)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			defer svc.Close()
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("defaults give hashing and no LLM", func(t *testing.T) {
		settings := domain.DefaultAppSettings()

		result, err := Init(context.Background(), settings)

		require.NoError(t, err)
		defer result.Close()
		assert.Equal(t, domain.DefaultHashingModel, result.EmbeddingService.ModelName())
		assert.Nil(t, result.LLMService)
		assert.Empty(t, result.Warnings)
	})

	t.Run("configured LLM is created", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.LLM.APIKey = "sk-test"

		result, err := Init(context.Background(), settings)

		require.NoError(t, err)
		defer result.Close()
		require.NotNil(t, result.LLMService)
		assert.Equal(t, "gpt-4o-mini", result.LLMService.ModelName())
	})

	t.Run("unconfigured embedding fails", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.Embedding = domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI}

		_, err := Init(context.Background(), settings)

		assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	})
}

func TestValidateEmbeddingConfig(t *testing.T) {
	assert.NoError(t, ValidateEmbeddingConfig(context.Background(), nil))
	assert.NoError(t, ValidateEmbeddingConfig(context.Background(), &domain.EmbeddingSettings{Provider: domain.AIProviderHashing}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := ValidateEmbeddingConfig(context.Background(), &domain.EmbeddingSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL})
	assert.Error(t, err)
}

func TestValidateLLMConfig(t *testing.T) {
	assert.NoError(t, ValidateLLMConfig(context.Background(), nil))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	assert.NoError(t, ValidateLLMConfig(context.Background(), &domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL}))
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

func noEnv(string) (string, bool) { return "", false }

func envWith(vals map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vals[key]
		return v, ok
	}
}

func newTestSettingsService(store *mockConfigStore) *SettingsService {
	service := NewSettingsService(store, nil)
	service.SetEnvLookup(noEnv)
	return service
}

func TestNewSettingsService(t *testing.T) {
	store := newMockConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := newTestSettingsService(newMockConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Embedding.Model, settings.Embedding.Model)
	assert.Equal(t, defaults.Embedding.Dimensions, settings.Embedding.Dimensions)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.LLM.Model, settings.LLM.Model)
	assert.Equal(t, defaults.LLM.MaxTokens, settings.LLM.MaxTokens)
	assert.InDelta(t, defaults.LLM.Temperature, settings.LLM.Temperature, 1e-9)
	assert.Equal(t, defaults.LLM.Timeout, settings.LLM.Timeout)
	assert.Equal(t, domain.DefaultTopK, settings.Search.TopK)
	assert.Equal(t, domain.DefaultNumQuestions, settings.Generation.NumQuestions)
	assert.Equal(t, domain.DefaultCollectionName, settings.Collection.Name)
	assert.Equal(t, domain.DefaultScrapeDelay, settings.Scraper.Delay)
	assert.Equal(t, domain.DefaultUserAgent, settings.Scraper.UserAgent)
	assert.False(t, settings.LLM.IsConfigured())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := newMockConfigStore()
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("llm.temperature", 0.2)
	_ = store.Set("llm.timeout", "30s")
	_ = store.Set("search.top_k", 7)
	_ = store.Set("generation.num_questions", 4)
	_ = store.Set("collection.name", "custom")
	_ = store.Set("scraper.delay", "2s")

	service := newTestSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, 3072, settings.Embedding.Dimensions)
	assert.InDelta(t, 0.2, settings.LLM.Temperature, 1e-9)
	assert.Equal(t, 30*time.Second, settings.LLM.Timeout)
	assert.Equal(t, 7, settings.Search.TopK)
	assert.Equal(t, 4, settings.Generation.NumQuestions)
	assert.Equal(t, "custom", settings.Collection.Name)
	assert.Equal(t, 2*time.Second, settings.Scraper.Delay)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := newMockConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")
	_ = store.Set("llm.timeout", "soon")
	_ = store.Set("search.top_k", -1)

	service := newTestSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.LLM.Timeout, settings.LLM.Timeout)
	assert.Equal(t, defaults.Search.TopK, settings.Search.TopK)
}

func TestSettingsService_Get_APIKeyFromEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		env      map[string]string
		expected string
	}{
		{"env only", "", map[string]string{"OPENAI_API_KEY": "sk-env"}, "sk-env"},
		{"stored wins", "sk-file", map[string]string{"OPENAI_API_KEY": "sk-env"}, "sk-file"},
		{"neither", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockConfigStore()
			if tt.stored != "" {
				_ = store.Set("llm.api_key", tt.stored)
			}
			service := NewSettingsService(store, nil)
			service.SetEnvLookup(envWith(tt.env))

			settings, err := service.Get()

			require.NoError(t, err)
			assert.Equal(t, tt.expected, settings.LLM.APIKey)
			assert.Equal(t, tt.expected != "", settings.LLM.IsConfigured())
		})
	}
}

func TestSettingsService_Save(t *testing.T) {
	store := newMockConfigStore()
	service := newTestSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.LLM.Provider = domain.AIProviderAnthropic
	settings.LLM.Model = "claude-3-5-haiku-latest"
	settings.LLM.APIKey = "sk-ant-test"
	settings.Search.TopK = 9

	err := service.Save(&settings)

	require.NoError(t, err)
	assert.Equal(t, "anthropic", store.GetString("llm.provider"))
	assert.Equal(t, "claude-3-5-haiku-latest", store.GetString("llm.model"))
	assert.Equal(t, "sk-ant-test", store.GetString("llm.api_key"))
	assert.Equal(t, 9, store.GetInt("search.top_k"))
	assert.Equal(t, "2m0s", store.GetString("llm.timeout"))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.LLM, loaded.LLM)
	assert.Equal(t, settings.Scraper, loaded.Scraper)
}

func TestSettingsService_Save_DoesNotPersistEnvironmentKey(t *testing.T) {
	store := newMockConfigStore()
	service := NewSettingsService(store, nil)
	service.SetEnvLookup(envWith(map[string]string{"OPENAI_API_KEY": "sk-env"}))

	settings, err := service.Get()
	require.NoError(t, err)
	require.Equal(t, "sk-env", settings.LLM.APIKey)

	require.NoError(t, service.Save(settings))

	_, exists := store.Get("llm.api_key")
	assert.False(t, exists)
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	tests := []struct {
		name        string
		provider    domain.AIProvider
		model       string
		apiKey      string
		wantErr     bool
		wantModel   string
		wantDims    int
		wantBaseURL string
	}{
		{name: "hashing", provider: domain.AIProviderHashing, wantModel: domain.DefaultHashingModel, wantDims: 512},
		{
			name: "ollama default url", provider: domain.AIProviderOllama, model: "nomic-embed-text",
			wantModel: "nomic-embed-text", wantDims: 768, wantBaseURL: "http://localhost:11434",
		},
		{
			name: "ollama multilingual default", provider: domain.AIProviderOllama,
			wantModel: "bge-m3", wantDims: 1024, wantBaseURL: "http://localhost:11434",
		},
		{
			name: "openai with key", provider: domain.AIProviderOpenAI, apiKey: "sk-test",
			wantModel: "text-embedding-3-small", wantDims: 1536,
		},
		{name: "openai missing key", provider: domain.AIProviderOpenAI, wantErr: true},
		{name: "anthropic has no embeddings", provider: domain.AIProviderAnthropic, apiKey: "k", wantErr: true},
		{name: "invalid provider", provider: domain.AIProvider("bogus"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestSettingsService(newMockConfigStore())

			err := service.SetEmbeddingProvider(tt.provider, tt.model, tt.apiKey)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.Embedding.Provider)
			assert.Equal(t, tt.wantModel, settings.Embedding.Model)
			assert.Equal(t, tt.wantDims, settings.Embedding.Dimensions)
			assert.Equal(t, tt.wantBaseURL, settings.Embedding.BaseURL)
			assert.Equal(t, tt.apiKey, settings.Embedding.APIKey)
		})
	}
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		name      string
		provider  domain.AIProvider
		model     string
		apiKey    string
		wantErr   bool
		wantModel string
	}{
		{name: "gemini default model", provider: domain.AIProviderGemini, apiKey: "g-key", wantModel: "gemini-2.0-flash"},
		{name: "anthropic custom model", provider: domain.AIProviderAnthropic, model: "claude-x", apiKey: "a", wantModel: "claude-x"},
		{name: "ollama no key", provider: domain.AIProviderOllama, wantModel: "llama3.2"},
		{name: "hashing cannot generate", provider: domain.AIProviderHashing, wantErr: true},
		{name: "missing key", provider: domain.AIProviderOpenAI, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestSettingsService(newMockConfigStore())

			err := service.SetLLMProvider(tt.provider, tt.model, tt.apiKey)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantModel, settings.LLM.Model)
			assert.True(t, settings.LLM.IsConfigured())
		})
	}
}

func TestSettingsService_SetLLMProvider_ClearsBaseURLForCloud(t *testing.T) {
	service := newTestSettingsService(newMockConfigStore())

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))
	require.NoError(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", "sk"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Empty(t, settings.LLM.BaseURL)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := newTestSettingsService(newMockConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

type stubValidator struct {
	embedErr error
	llmErr   error
	embedded *domain.EmbeddingSettings
	llm      *domain.LLMSettings
}

func (v *stubValidator) ValidateEmbedding(_ context.Context, cfg *domain.EmbeddingSettings) error {
	v.embedded = cfg
	return v.embedErr
}

func (v *stubValidator) ValidateLLM(_ context.Context, cfg *domain.LLMSettings) error {
	v.llm = cfg
	return v.llmErr
}

func TestSettingsService_Validate(t *testing.T) {
	t.Run("nil validator", func(t *testing.T) {
		service := newTestSettingsService(newMockConfigStore())
		assert.NoError(t, service.ValidateEmbeddingConfig(context.Background()))
		assert.NoError(t, service.ValidateLLMConfig(context.Background()))
	})

	t.Run("delegates current settings", func(t *testing.T) {
		validator := &stubValidator{llmErr: domain.ErrLLMUnavailable}
		service := NewSettingsService(newMockConfigStore(), validator)
		service.SetEnvLookup(noEnv)

		assert.NoError(t, service.ValidateEmbeddingConfig(context.Background()))
		assert.ErrorIs(t, service.ValidateLLMConfig(context.Background()), domain.ErrLLMUnavailable)
		require.NotNil(t, validator.embedded)
		assert.Equal(t, domain.AIProviderHashing, validator.embedded.Provider)
		require.NotNil(t, validator.llm)
		assert.Equal(t, domain.AIProviderOpenAI, validator.llm.Provider)
	})
}

func TestSettingsService_SetLLMProvider_UsesEnvironmentKey(t *testing.T) {
	store := newMockConfigStore()
	service := NewSettingsService(store, nil)
	service.SetEnvLookup(envWith(map[string]string{"ANTHROPIC_API_KEY": "sk-ant-env"}))

	require.NoError(t, service.SetLLMProvider(domain.AIProviderAnthropic, "", ""))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "sk-ant-env", settings.LLM.APIKey)
	_, exists := store.Get("llm.api_key")
	assert.False(t, exists)
}

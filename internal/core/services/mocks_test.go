package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/gichul/internal/adapters/driven/embedding/hashing"
	"github.com/custodia-labs/gichul/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
)

// newTestIndex returns an in-memory collection using the offline embedder.
func newTestIndex() *memory.VectorIndex {
	return memory.NewVectorIndex("test", hashing.NewEmbeddingService(hashing.Config{}))
}

// --- Config ---

// mockConfigStore implements driven.ConfigStore over a plain map.
type mockConfigStore struct {
	values map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: map[string]any{}}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.values[key].(bool)
	return b
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error  { return nil }
func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return ":memory:" }

var _ driven.ConfigStore = (*mockConfigStore)(nil)

// --- LLM ---

// mockLLM implements driven.LLMService and records each call.
type mockLLM struct {
	reply    string
	err      error
	calls    int
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = messages
	m.opts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// --- PromptStore ---

type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

// --- Question sources ---

type mockSource struct {
	name      string
	questions []domain.RawQuestion
	err       error
	fetched   int
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Fetch(_ context.Context) ([]domain.RawQuestion, error) {
	m.fetched++
	return m.questions, m.err
}

// mockSourceFactory hands out the configured sources and records the inputs.
type mockSourceFactory struct {
	web, pdf, file, sample *mockSource

	webURLs  []string
	pdfPaths []string
	filePath string
}

func newMockSourceFactory() *mockSourceFactory {
	return &mockSourceFactory{
		web:    &mockSource{name: "web"},
		pdf:    &mockSource{name: "pdf"},
		file:   &mockSource{name: "file"},
		sample: &mockSource{name: "sample"},
	}
}

func (f *mockSourceFactory) Web(urls []string) driven.QuestionSource {
	f.webURLs = urls
	return f.web
}

func (f *mockSourceFactory) PDF(paths []string) driven.QuestionSource {
	f.pdfPaths = paths
	return f.pdf
}

func (f *mockSourceFactory) File(path string) driven.QuestionSource {
	f.filePath = path
	return f.file
}

func (f *mockSourceFactory) Sample() driven.QuestionSource {
	return f.sample
}

// --- Stores ---

type mockQuestionStore struct {
	saved   []domain.RawQuestion
	saveErr error
}

func (m *mockQuestionStore) Save(questions []domain.RawQuestion) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = questions
	return nil
}

func (m *mockQuestionStore) Load() ([]domain.RawQuestion, error) {
	return m.saved, nil
}

func (m *mockQuestionStore) Path() string { return "raw/scraped_questions.json" }

type mockChunkStore struct {
	saved   []domain.Chunk
	saveErr error
}

func (m *mockChunkStore) Save(chunks []domain.Chunk) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = chunks
	return nil
}

func (m *mockChunkStore) Load() ([]domain.Chunk, error) {
	return m.saved, nil
}

func (m *mockChunkStore) Path() string { return "processed/chunks.json" }

// --- VectorIndex ---

// failingIndex wraps an index and fails the selected operations.
type failingIndex struct {
	driven.VectorIndex
	reindexErr error
	searchErr  error
	countErr   error
}

func (f *failingIndex) Reindex(ctx context.Context, chunks []domain.Chunk) error {
	if f.reindexErr != nil {
		return f.reindexErr
	}
	return f.VectorIndex.Reindex(ctx, chunks)
}

func (f *failingIndex) Search(ctx context.Context, q string, k int, c string) ([]domain.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.VectorIndex.Search(ctx, q, k, c)
}

func (f *failingIndex) Count(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.VectorIndex.Count(ctx)
}

var errBoom = errors.New("boom")

// --- Fixtures ---

// sampleQuestions returns a small corpus: two database questions and one
// network question.
func sampleQuestions() []domain.RawQuestion {
	return []domain.RawQuestion{
		{
			Number: 1, Year: "2023", Session: "1회",
			Category: "데이터베이스", Subcategory: "정규화",
			Question: "제2정규형에서 제거되는 종속을 쓰시오.",
			Answer:   "부분 함수적 종속",
			Keywords: []string{"정규화", "함수적 종속"},
		},
		{
			Number: 2, Year: "2023", Session: "1회",
			Category: "데이터베이스", Subcategory: "트랜잭션",
			Question: "트랜잭션의 ACID 특성 중 원자성을 설명하시오.",
			Keywords: []string{"트랜잭션", "원자성"},
		},
		{
			Number: 3, Year: "2022", Session: "2회",
			Category: "네트워크",
			Question: "OSI 7계층 중 전송 계층의 역할을 쓰시오.",
			Answer:   "종단 간 신뢰성 있는 전송",
		},
	}
}

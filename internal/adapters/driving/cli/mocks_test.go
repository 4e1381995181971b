package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

var errBoom = errors.New("boom")

// --- PracticeService ---

type mockPracticeService struct {
	results   []domain.SearchResult
	searchErr error

	result *domain.PracticeResult
	// generateErrs are returned by successive Generate calls before result.
	generateErrs []error

	count    int
	countErr error
	resetErr error
	resets   int

	keyword  string
	category string
	topK     int
	requests []domain.PracticeRequest
}

func (m *mockPracticeService) Search(_ context.Context, keyword, category string, topK int) ([]domain.SearchResult, error) {
	m.keyword, m.category, m.topK = keyword, category, topK
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockPracticeService) Generate(_ context.Context, req domain.PracticeRequest) (*domain.PracticeResult, error) {
	m.requests = append(m.requests, req)
	if len(m.generateErrs) > 0 {
		err := m.generateErrs[0]
		m.generateErrs = m.generateErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.result, nil
}

func (m *mockPracticeService) Count(_ context.Context) (int, error) {
	return m.count, m.countErr
}

func (m *mockPracticeService) Reset(_ context.Context) error {
	m.resets++
	return m.resetErr
}

func (m *mockPracticeService) Categories() []string {
	return domain.DefaultCategories()
}

func (m *mockPracticeService) CollectionName() string {
	return domain.DefaultCollectionName
}

// --- SetupService ---

type mockSetupService struct {
	report *domain.SetupReport
	err    error
	calls  int
	req    domain.SetupRequest
}

func (m *mockSetupService) Run(_ context.Context, req domain.SetupRequest) (*domain.SetupReport, error) {
	m.calls++
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// --- SettingsService ---

type mockSettingsService struct {
	settings    domain.AppSettings
	getErr      error
	setErr      error
	validateErr error

	provider domain.AIProvider
	model    string
	apiKey   string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.provider, m.model, m.apiKey = provider, model, apiKey
	return m.setErr
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.provider, m.model, m.apiKey = provider, model, apiKey
	return m.setErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig(context.Context) error { return m.validateErr }
func (m *mockSettingsService) ValidateLLMConfig(context.Context) error       { return m.validateErr }

// --- Helpers ---

type testServices struct {
	practice *mockPracticeService
	setup    *mockSetupService
	settings *mockSettingsService
}

// setupTestServices installs mock services with a populated index and
// returns a cleanup that restores the previous services and flag values.
func setupTestServices() (*testServices, func()) {
	oldPractice, oldSetup, oldSettings := practiceService, setupService, settingsService
	oldInteractive := isInteractive

	svc := &testServices{
		practice: &mockPracticeService{
			results: sampleResults(),
			result: &domain.PracticeResult{
				References: sampleResults(),
				Generation: domain.ModelOutput("[연습문제 1]\n정규화의 목적을 쓰시오.", "gpt-test"),
			},
			count: 14,
		},
		setup: &mockSetupService{
			report: &domain.SetupReport{Source: "sample", Questions: 14, Chunks: 14, Indexed: 14},
		},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
	}
	SetServices(svc.practice, svc.setup, svc.settings)
	isInteractive = func() bool { return false }

	return svc, func() {
		practiceService, setupService, settingsService = oldPractice, oldSetup, oldSettings
		isInteractive = oldInteractive
		resetFlags()
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}
}

// resetFlags restores package-level flag variables between executions.
func resetFlags() {
	searchTopK, searchCategory, searchJSON = 0, "", false
	generateNum, generateCategory, generateTopK, generateJSON = 0, "", 0, false
	_ = rootCmd.PersistentFlags().Set("verbose", "false")

	// Repeatable flags keep their values across executions.
	for _, name := range []string{"url", "pdf"} {
		if sv, ok := setupCmd.Flags().Lookup(name).Value.(interface{ Replace([]string) error }); ok {
			_ = sv.Replace(nil)
		}
	}
	_ = setupCmd.Flags().Set("file", "")
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			ID:       "chunk_0",
			Text:     "[2023년 1회 제1문]\n분야: 데이터베이스 > 정규화\n\n문제:\n제2정규형에서 제거되는 종속을 쓰시오.",
			Metadata: domain.Metadata{ChunkID: "0", Year: "2023", Session: "1회", Number: "1", Category: "데이터베이스", Subcategory: "정규화"},
			Distance: 0.127,
		},
		{
			ID:       "chunk_2",
			Text:     "[문제 3]\n\n문제:\nOSI 7계층 중 전송 계층의 역할을 쓰시오.",
			Metadata: domain.Metadata{ChunkID: "2", Number: "3"},
			Distance: 0.5,
		},
	}
}

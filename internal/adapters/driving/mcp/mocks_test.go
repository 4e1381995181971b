package mcp

import (
	"context"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// mockPracticeService is a mock implementation of driving.PracticeService.
type mockPracticeService struct {
	results []domain.SearchResult
	result  *domain.PracticeResult
	count   int
	err     error

	keyword  string
	category string
	topK     int
	request  domain.PracticeRequest
}

func (m *mockPracticeService) Search(_ context.Context, keyword, category string, topK int) ([]domain.SearchResult, error) {
	m.keyword, m.category, m.topK = keyword, category, topK
	return m.results, m.err
}

func (m *mockPracticeService) Generate(_ context.Context, req domain.PracticeRequest) (*domain.PracticeResult, error) {
	m.request = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockPracticeService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockPracticeService) Reset(_ context.Context) error {
	return m.err
}

func (m *mockPracticeService) Categories() []string {
	return domain.DefaultCategories()
}

func (m *mockPracticeService) CollectionName() string {
	return "exam_questions"
}

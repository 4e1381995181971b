package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// SearchQuestionsInput is the input schema for the search_questions tool.
type SearchQuestionsInput struct {
	Query    string `json:"query" jsonschema:"keyword or topic to find similar past exam questions for"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to one category, e.g. 데이터베이스"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"maximum number of results (default from settings)"`
}

// SearchQuestionsOutput is the output schema for the search_questions tool.
type SearchQuestionsOutput struct {
	Results []QuestionOutput `json:"results"`
	Count   int              `json:"count"`
}

// QuestionOutput represents a single matched past question.
type QuestionOutput struct {
	ID          string  `json:"id"`
	Similarity  float64 `json:"similarity"`
	Year        string  `json:"year,omitempty"`
	Session     string  `json:"session,omitempty"`
	Number      string  `json:"number,omitempty"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
	Keywords    string  `json:"keywords,omitempty"`
	Text        string  `json:"text"`
}

// GenerateQuestionsInput is the input schema for the generate_questions tool.
type GenerateQuestionsInput struct {
	Keyword  string `json:"keyword" jsonschema:"keyword to generate practice questions about"`
	Category string `json:"category,omitempty" jsonschema:"restrict reference questions to one category"`
	Num      int    `json:"num,omitempty" jsonschema:"number of questions to generate (default from settings)"`
}

// GenerateQuestionsOutput is the output schema for the generate_questions tool.
type GenerateQuestionsOutput struct {
	// Mode is "model" or "fallback".
	Mode       string `json:"mode"`
	Model      string `json:"model,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Text       string `json:"text"`
	References int    `json:"references"`
}

// IndexStatusInput is the (empty) input schema for the index_status tool.
type IndexStatusInput struct{}

// IndexStatusOutput is the output schema for the index_status tool.
type IndexStatusOutput struct {
	Count      int    `json:"count"`
	Collection string `json:"collection"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_questions",
		Description: "Find past 정보처리기사 실기 exam questions similar to a query",
	}, s.handleSearchQuestions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_questions",
		Description: "Generate new practice questions for a keyword, grounded on similar past exam questions",
	}, s.handleGenerateQuestions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_status",
		Description: "Report how many past exam questions are indexed",
	}, s.handleIndexStatus)
}

// handleSearchQuestions handles the search_questions tool invocation.
func (s *Server) handleSearchQuestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchQuestionsInput,
) (*mcp.CallToolResult, SearchQuestionsOutput, error) {
	results, err := s.ports.Practice.Search(ctx, input.Query, input.Category, input.TopK)
	if err != nil {
		return nil, SearchQuestionsOutput{}, toolError(err)
	}

	output := SearchQuestionsOutput{
		Results: make([]QuestionOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		r := &results[i]
		output.Results[i] = QuestionOutput{
			ID:          r.ID,
			Similarity:  r.Similarity(),
			Year:        r.Metadata.Year,
			Session:     r.Metadata.Session,
			Number:      r.Metadata.Number,
			Category:    r.Metadata.Category,
			Subcategory: r.Metadata.Subcategory,
			Keywords:    r.Metadata.Keywords,
			Text:        r.Text,
		}
	}

	return nil, output, nil
}

// handleGenerateQuestions handles the generate_questions tool invocation.
func (s *Server) handleGenerateQuestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateQuestionsInput,
) (*mcp.CallToolResult, GenerateQuestionsOutput, error) {
	result, err := s.ports.Practice.Generate(ctx, domain.PracticeRequest{
		Keyword:  input.Keyword,
		Category: input.Category,
		Num:      input.Num,
	})
	if err != nil {
		return nil, GenerateQuestionsOutput{}, toolError(err)
	}

	return nil, GenerateQuestionsOutput{
		Mode:       result.Generation.Kind.String(),
		Model:      result.Generation.Model,
		Reason:     result.Generation.Reason,
		Text:       result.Generation.Text,
		References: len(result.References),
	}, nil
}

// handleIndexStatus handles the index_status tool invocation.
func (s *Server) handleIndexStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexStatusInput,
) (*mcp.CallToolResult, IndexStatusOutput, error) {
	count, err := s.ports.Practice.Count(ctx)
	if err != nil {
		return nil, IndexStatusOutput{}, fmt.Errorf("counting documents: %w", err)
	}
	return nil, IndexStatusOutput{
		Count:      count,
		Collection: s.ports.Practice.CollectionName(),
	}, nil
}

// toolError adds operator guidance to errors the assistant can act on.
func toolError(err error) error {
	switch {
	case errors.Is(err, domain.ErrIndexEmpty):
		return fmt.Errorf("%w: run 'gichul setup' to build the index", err)
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("no related past questions: %w", err)
	default:
		return err
	}
}

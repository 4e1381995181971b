package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// BuildChunk renders one question as the chunk at position index.
// Sections appear in a fixed order (header, category, question, answer,
// keywords) and absent sections are omitted entirely.
func BuildChunk(q domain.RawQuestion, index int) domain.Chunk {
	return domain.Chunk{
		ID:       domain.ChunkID(index),
		Text:     chunkText(q),
		Metadata: chunkMetadata(q, index),
	}
}

// BuildChunks maps questions to chunks in input order.
// There is no deduplication and no reordering.
func BuildChunks(questions []domain.RawQuestion) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(questions))
	for i, q := range questions {
		chunks = append(chunks, BuildChunk(q, i))
	}
	return chunks
}

func chunkText(q domain.RawQuestion) string {
	var parts []string

	switch {
	case q.HasExamDate():
		parts = append(parts, fmt.Sprintf("[%s년 %s 제%d문]", q.Year, q.Session, q.Number))
	case q.Number != 0:
		parts = append(parts, fmt.Sprintf("[문제 %d]", q.Number))
	}

	if q.Category != "" {
		header := "분야: " + q.Category
		if q.Subcategory != "" {
			header += " > " + q.Subcategory
		}
		parts = append(parts, header)
	}

	// Body sections are separated from what precedes them by a blank line.
	parts = append(parts, "\n문제:\n"+q.Question)
	if q.Answer != "" {
		parts = append(parts, "\n정답:\n"+q.Answer)
	}
	if len(q.Keywords) > 0 {
		parts = append(parts, "\n키워드: "+strings.Join(q.Keywords, ", "))
	}

	return strings.TrimPrefix(strings.Join(parts, "\n"), "\n")
}

func chunkMetadata(q domain.RawQuestion, index int) domain.Metadata {
	number := ""
	if q.Number != 0 {
		number = strconv.Itoa(q.Number)
	}
	return domain.Metadata{
		ChunkID:     strconv.Itoa(index),
		Year:        q.Year,
		Session:     q.Session,
		Number:      number,
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Keywords:    strings.Join(q.Keywords, ", "),
	}
}

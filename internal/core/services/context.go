package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// AssembleContext renders search results as one grounding text block,
// keeping the order in which they arrived. The caller bounds its size
// through topK.
func AssembleContext(results []domain.SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("--- 참고 기출문제 %d ---\n%s\n", i+1, r.Text)
	}
	return strings.Join(blocks, "\n")
}

package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

var templateDivider = "\n" + strings.Repeat("=", 50)

// RenderTemplate produces the offline practice document. It is a pure
// function of its arguments and performs no I/O. At most n references are
// rendered, fewer when results is shorter.
func RenderTemplate(keyword string, results []domain.SearchResult, n int) string {
	if n < 0 {
		n = 0
	}
	if n > len(results) {
		n = len(results)
	}

	parts := []string{
		fmt.Sprintf("=== '%s' 관련 연습문제 ===\n", keyword),
		"(LLM을 사용할 수 없어 템플릿 기반으로 생성합니다.)\n",
		"아래 기출문제를 참고하여 직접 연습해 보세요:\n",
	}

	for i, r := range results[:n] {
		parts = append(parts, templateDivider, fmt.Sprintf("[참고 기출문제 %d]", i+1))
		if r.Metadata.Year != "" {
			parts = append(parts, fmt.Sprintf("출처: %s년 %s", r.Metadata.Year, r.Metadata.Session))
		}
		if r.Metadata.Category != "" {
			parts = append(parts, "분야: "+r.Metadata.Category)
		}
		parts = append(parts,
			"유사도: "+formatPercent(r.Similarity()),
			"\n"+r.Text,
		)
	}

	parts = append(parts,
		templateDivider,
		"\n[연습 가이드]",
		"1. 위 기출문제의 핵심 개념을 정리해 보세요.",
		"2. 유사한 문제를 스스로 만들어 풀어 보세요.",
		fmt.Sprintf("3. '%s' 관련 추가 개념을 학습하세요.", keyword),
		"\nTip: OPENAI_API_KEY 환경 변수를 설정하거나 'gichul settings llm'으로 "+
			"LLM을 구성하면 AI가 자동으로 새로운 연습문제를 생성합니다.",
	)

	return strings.Join(parts, "\n")
}

// formatPercent renders a ratio with one decimal place, e.g. 0.8731 -> "87.3%".
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

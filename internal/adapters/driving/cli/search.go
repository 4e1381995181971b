package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

var (
	searchTopK     int
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed exam questions",
	Long: `Finds the past exam questions most similar to the query by cosine
similarity over the indexed chunks. Use --category to restrict results to
one subject area.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of results (0 = search.top_k setting)")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict results to one category")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if practiceService == nil {
		return errors.New("practice service not configured")
	}

	results, err := practiceService.Search(cmd.Context(), args[0], searchCategory, searchTopK)
	if err != nil {
		if errors.Is(err, domain.ErrIndexEmpty) {
			cmd.Println("The index is empty. Run 'gichul setup' first.")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, referencesJSON(results))
	}

	outputReferences(cmd, results)
	return nil
}

// referenceJSON is the JSON shape of one search hit.
type referenceJSON struct {
	ID          string  `json:"id"`
	Similarity  float64 `json:"similarity"`
	Distance    float64 `json:"distance"`
	Year        string  `json:"year,omitempty"`
	Session     string  `json:"session,omitempty"`
	Number      string  `json:"number,omitempty"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
	Keywords    string  `json:"keywords,omitempty"`
	Text        string  `json:"text"`
}

func referencesJSON(results []domain.SearchResult) []referenceJSON {
	out := make([]referenceJSON, 0, len(results))
	for i := range results {
		r := &results[i]
		out = append(out, referenceJSON{
			ID:          r.ID,
			Similarity:  r.Similarity(),
			Distance:    r.Distance,
			Year:        r.Metadata.Year,
			Session:     r.Metadata.Session,
			Number:      r.Metadata.Number,
			Category:    r.Metadata.Category,
			Subcategory: r.Metadata.Subcategory,
			Keywords:    r.Metadata.Keywords,
			Text:        r.Text,
		})
	}
	return out
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReferences(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No related questions found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (similarity %.1f%%)\n", i+1, referenceLabel(r.Metadata), r.Similarity()*100)
		if line := questionSnippet(r.Text); line != "" {
			cmd.Printf("      %s\n", line)
		}
		cmd.Println()
	}
}

// referenceLabel renders e.g. "데이터베이스 > 정규화 | 2023 1회 #3".
func referenceLabel(m domain.Metadata) string {
	label := m.Category
	if label == "" {
		label = "미분류"
	}
	if m.Subcategory != "" {
		label += " > " + m.Subcategory
	}
	var exam []string
	if m.Year != "" {
		exam = append(exam, m.Year)
	}
	if m.Session != "" {
		exam = append(exam, m.Session)
	}
	if m.Number != "" {
		exam = append(exam, "#"+m.Number)
	}
	if len(exam) > 0 {
		label += " | " + strings.Join(exam, " ")
	}
	return label
}

// questionSnippet returns the first line of the question section of a
// chunk, or of the whole text when there is none, cut to 80 runes.
func questionSnippet(text string) string {
	if _, body, ok := strings.Cut(text, "문제:\n"); ok {
		text = body
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 80 {
			return string(r[:80]) + "..."
		}
		return line
	}
	return ""
}

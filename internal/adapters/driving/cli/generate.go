package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

var (
	generateNum      int
	generateCategory string
	generateTopK     int
	generateJSON     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [keyword]",
	Short: "Generate practice questions for a keyword",
	Long: `Searches the indexed past exam questions for the keyword and asks the
configured LLM to write new practice questions in the same style.

When no LLM is configured, or the model call fails, a template built from
the retrieved questions is printed instead.

--num and --top-k default to the generation.num_questions and search.top_k
settings.

Examples:
  gichul generate 정규화
  gichul generate SQL -n 5 -c 데이터베이스`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateNum, "num", "n", 0, "number of questions to generate (0 = generation.num_questions setting)")
	generateCmd.Flags().StringVarP(&generateCategory, "category", "c", "", "restrict references to one category")
	generateCmd.Flags().IntVarP(&generateTopK, "top-k", "k", 0, "number of reference questions (0 = search.top_k setting)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req := domain.PracticeRequest{
		Keyword:  args[0],
		Category: generateCategory,
		Num:      generateNum,
		TopK:     generateTopK,
	}

	if generateJSON {
		if practiceService == nil {
			return errors.New("practice service not configured")
		}
		result, err := practiceService.Generate(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("generate failed: %w", err)
		}
		return outputJSON(cmd, practiceJSON(result))
	}

	return searchAndGenerate(cmd, bufio.NewReader(cmd.InOrStdin()), req)
}

// searchAndGenerate prints references and generated questions. An empty
// index in an interactive terminal offers to run setup first.
func searchAndGenerate(cmd *cobra.Command, reader *bufio.Reader, req domain.PracticeRequest) error {
	if practiceService == nil {
		return errors.New("practice service not configured")
	}

	cmd.Printf("Searching past questions for %q...\n", req.Keyword)
	result, err := practiceService.Generate(cmd.Context(), req)
	if errors.Is(err, domain.ErrIndexEmpty) {
		cmd.Println("The index is empty.")
		if !isInteractive() || !confirm(cmd, reader, "Run setup now? (y/n): ") {
			cmd.Println("Run 'gichul setup' to build the index.")
			return err
		}
		if err := runSetupPipeline(cmd, domain.SetupRequest{}); err != nil {
			return err
		}
		result, err = practiceService.Generate(cmd.Context(), req)
	}
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No related questions found for %q.\n", req.Keyword)
		return nil
	}
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	cmd.Printf("Found %d related questions.\n", len(result.References))
	if result.Generation.IsFallback() {
		cmd.Printf("Using template output: %s\n", result.Generation.Reason)
	} else {
		cmd.Printf("Generating with %s...\n", result.Generation.Model)
	}
	cmd.Println()
	cmd.Println(result.Generation.Text)
	return nil
}

// practiceResultJSON is the JSON shape of a generate result.
type practiceResultJSON struct {
	Mode       string          `json:"mode"`
	Model      string          `json:"model,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Text       string          `json:"text"`
	References []referenceJSON `json:"references"`
}

func practiceJSON(result *domain.PracticeResult) practiceResultJSON {
	return practiceResultJSON{
		Mode:       result.Generation.Kind.String(),
		Model:      result.Generation.Model,
		Reason:     result.Generation.Reason,
		Text:       result.Generation.Text,
		References: referencesJSON(result.References),
	}
}

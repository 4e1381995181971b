package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Collect, chunk and index past exam questions",
	Long: `Build the knowledge base in three steps:

  1. Collect questions from web pages (--url) and PDF files (--pdf).
     When those yield nothing, the question file (--file) and then the
     built-in sample set are used.
  2. Turn every question into one chunk.
  3. Replace the collection contents with the new chunks.

Examples:
  gichul setup
  gichul setup --url https://example.tistory.com/123 --url https://example.tistory.com/124
  gichul setup --pdf 2023_1회.pdf --file questions.json`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringArray("url", nil, "Web page to scrape (repeatable)")
	setupCmd.Flags().StringArray("pdf", nil, "PDF file to parse (repeatable)")
	setupCmd.Flags().String("file", "", "Raw question JSON file to import")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	urls, err := cmd.Flags().GetStringArray("url")
	if err != nil {
		return fmt.Errorf("getting url flag: %w", err)
	}
	pdfs, err := cmd.Flags().GetStringArray("pdf")
	if err != nil {
		return fmt.Errorf("getting pdf flag: %w", err)
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("getting file flag: %w", err)
	}

	return runSetupPipeline(cmd, domain.SetupRequest{URLs: urls, PDFs: pdfs, QuestionFile: file})
}

// runSetupPipeline runs the setup service and prints the step summary.
func runSetupPipeline(cmd *cobra.Command, req domain.SetupRequest) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}

	cmd.Println("[1/3] Collecting questions...")
	report, err := setupService.Run(cmd.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrNoSourceData) {
			cmd.Println("No questions could be collected from any source.")
		}
		return fmt.Errorf("setup failed: %w", err)
	}
	cmd.Printf("      %d questions from %s\n", report.Questions, report.Source)
	cmd.Println("[2/3] Chunking questions...")
	cmd.Printf("      %d chunks\n", report.Chunks)
	cmd.Println("[3/3] Indexing chunks...")
	cmd.Printf("Done. %d documents indexed.\n", report.Indexed)
	return nil
}

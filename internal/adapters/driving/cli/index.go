package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the number of indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runCount,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete and recreate the collection",
	Long: `Removes every indexed document and recreates an empty collection.
Raw and processed question files are kept; run 'gichul setup' to rebuild.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List exam subject categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCount(cmd *cobra.Command, _ []string) error {
	if practiceService == nil {
		return errors.New("practice service not configured")
	}
	count, err := practiceService.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}
	cmd.Printf("Indexed documents: %d\n", count)
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	if practiceService == nil {
		return errors.New("practice service not configured")
	}
	if err := practiceService.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	cmd.Printf("Collection %q reset.\n", practiceService.CollectionName())
	return nil
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if practiceService == nil {
		return errors.New("practice service not configured")
	}
	printCategories(cmd)
	return nil
}

func printCategories(cmd *cobra.Command) {
	cmd.Println("Categories:")
	for _, c := range practiceService.Categories() {
		cmd.Printf("  - %s\n", c)
	}
}

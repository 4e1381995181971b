// Package cli provides the gichul command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gichul/internal/core/ports/driving"
	"github.com/custodia-labs/gichul/internal/logger"
)

// version is set by the composition root.
var version = "dev"

// Services used by the commands. Set by SetServices before Execute.
var (
	practiceService driving.PracticeService
	setupService    driving.SetupService
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "gichul",
	Short: "정보처리기사 실기 practice question generator",
	Long: `gichul builds a knowledge base of past 정보처리기사 실기 exam questions
and generates new practice questions for a keyword.

Run 'gichul setup' once to collect and index questions, then
'gichul generate <keyword>'. Without a subcommand gichul starts
an interactive session.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose") //nolint:errcheck // flag is always registered
		logger.SetVerbose(verbose)
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show pipeline progress and debug output")
}

// SetServices injects the driving ports the commands call into.
func SetServices(practice driving.PracticeService, setup driving.SetupService, settings driving.SettingsService) {
	practiceService = practice
	setupService = setup
	settingsService = settings
}

// SetVersion sets the version printed by 'gichul version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

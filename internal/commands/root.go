package commands

import (
	"github.com/spf13/cobra"

	"github.com/spendscope-dev/spendscope/internal/buildinfo"
	"github.com/spendscope-dev/spendscope/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:     "spendscope",
		Short:   "Clean procurement spend exports and report where the money goes",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(cmd.ErrOrStderr(), logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json, logfmt)")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newScanCommand())

	return rootCmd
}

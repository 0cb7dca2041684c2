// Package cli defines the codex command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "AI-assisted code review for GitHub pull requests",
	Long: `codex reviews GitHub pull requests by combining static analysis
(pylint, bandit, radon) with an LLM review pass, then posts the findings
back to the PR as inline comments.

Run it as a webhook server with "codex serve", or review a single PR
from the command line with "codex review".`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

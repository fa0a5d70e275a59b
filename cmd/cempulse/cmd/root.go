package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cempulse",
	Short: "CemPulse plant operations dashboard",
	Long: `cempulse serves the cement plant operations dashboard: session login,
role-gated process monitoring, the AI process advisor and analysis approvals.
Configuration is read from environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

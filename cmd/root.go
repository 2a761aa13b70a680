// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-repos",
	Short: "A CLI tool to list the public repositories of GitHub organizations.",
	Long: `github-repos lists the public repositories of one or more GitHub
organizations, optionally keeping only those published under a given license.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger discards all logs unless --verbose is set, then logs to standard error.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

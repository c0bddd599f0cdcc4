// =============================================================================
// CSV Export - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csvexport)
//   ├── exportCmd (csvexport export)
//   ├── validateCmd (csvexport validate)
//   └── versionCmd (csvexport version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the job file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csvexport",
	Short: "Export typed records to delimited text",
	Long: `csvexport reads records from spreadsheets or YAML documents and writes
them as delimited text with locale-aware dates and decimals.

Key Features:
  - Comma, semicolon, tab, pipe or any single-character delimiter
  - Unix or Windows line endings
  - Quoting of no fields, text fields only, or every field
  - ISO and French presets for dates and decimals, or custom patterns
  - Header titles translated from a YAML table

Example Usage:
  csvexport export                        # Run every job in jobs.yaml
  csvexport export --job people --stdout  # Print one job to the terminal
  csvexport validate --config ./my.yaml   # Check a job file`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"jobs.yaml",
		"Path to the job file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

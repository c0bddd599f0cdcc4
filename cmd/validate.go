// =============================================================================
// CSV Export - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks a job file without
// writing any output.
//
// CHECKS:
//   - The job file parses and every setting is known
//   - Every date pattern compiles
//   - Every translation table loads
//   - Every source opens and every value parses
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/csvexport/internal/config"
	"github.com/ginjaninja78/csvexport/internal/source"
	"github.com/ginjaninja78/csvexport/pkg/translate"
	"github.com/spf13/cobra"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the job file, its translations and its sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate loads the job file and dry-reads every job.
func runValidate(out io.Writer) error {
	mainConfig, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load job file: %w", err)
	}

	failed := 0
	for i := range mainConfig.Jobs {
		job := &mainConfig.Jobs[i]
		if err := validateJob(out, mainConfig, job); err != nil {
			failed++
			fmt.Fprintf(out, "  ✗ %s: %v\n", job.Name, err)
			continue
		}
		fmt.Fprintf(out, "  ✓ %s\n", job.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs are invalid", failed, len(mainConfig.Jobs))
	}
	return nil
}

// validateJob checks everything a run of job would touch.
func validateJob(out io.Writer, cfg *config.MainConfig, job *config.JobConfig) error {
	s, err := cfg.Serializer(job)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(out, "    %s\n", s.Config())
	}

	if path := cfg.TranslationsFor(job); path != "" {
		if _, err := translate.Load(path); err != nil {
			return err
		}
	}

	columns, err := source.ColumnsFromConfig(job.Columns)
	if err != nil {
		return err
	}
	if _, err := source.Read(job.Source, columns); err != nil {
		return err
	}

	return nil
}

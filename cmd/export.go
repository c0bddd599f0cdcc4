// =============================================================================
// CSV Export - Export Command
// =============================================================================
//
// This file defines the 'export' command, which runs the jobs of the job file.
//
// COMMAND USAGE:
//   csvexport export [flags]
//
// FLAGS:
//   --job      : Run only the named job (repeatable)
//   --dry-run  : Read and serialize without writing files
//   --stdout   : Print the output instead of writing files
//   --summary  : Write a run summary to the output directory
//
// PROCESSING PIPELINE:
//   1. Load the job file
//   2. Select the jobs to run
//   3. Run each job (source -> serializer -> file)
//   4. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ginjaninja78/csvexport/internal/config"
	"github.com/ginjaninja78/csvexport/internal/exporter"
	"github.com/ginjaninja78/csvexport/pkg/utils"
	"github.com/spf13/cobra"
)

// jobNames restricts the run to these jobs.
var jobNames []string

// dryRun reads and serializes without writing output files.
var dryRun bool

// toStdout prints the output instead of writing files.
var toStdout bool

// writeSummary writes a summary file after the run.
var writeSummary bool

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the export jobs of the job file",
	Long: `The export command reads each job's records, serializes them with the
job's delimiter, line ending, quoting and locale settings, and writes one
file per job to the output directory.

A failing job does not stop the others. The command exits with an error if
any job failed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVar(&jobNames, "job", nil, "Run only the named job (repeatable)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Read and serialize without writing output files")
	exportCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the output instead of writing files")
	exportCmd.Flags().BoolVar(&writeSummary, "summary", false, "Write a run summary to the output directory")
}

// runExport loads the job file and runs the selected jobs.
func runExport(out io.Writer) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load job file: %w", err)
	}

	jobs, err := selectJobs(mainConfig, jobNames)
	if err != nil {
		return err
	}

	// Progress goes to stderr when the data itself goes to stdout.
	progress := out
	if toStdout {
		progress = os.Stderr
	}
	logger := exporter.NewLogger(progress, verbose || mainConfig.LogLevel == "debug")

	// =========================================================================
	// STEP 2: RUN JOBS
	// =========================================================================

	summary := utils.ProcessingSummary{StartTime: startTime, TotalJobs: len(jobs)}

	for i, job := range jobs {
		e := exporter.New(job, mainConfig).WithLogger(logger).WithDryRun(dryRun)
		if toStdout {
			if i > 0 {
				fmt.Fprintln(out)
			}
			e = e.WithStdout(out)
		}

		result := e.Run()
		if result.Success {
			summary.SuccessfulJobs++
			summary.TotalRecords += result.Stats.Records
			summary.ExportedJobs = append(summary.ExportedJobs, utils.ExportedJobInfo{
				Job:         result.Job,
				OutputFile:  result.OutputFile,
				ArchivePath: result.ArchivePath,
				Records:     result.Stats.Records,
				Bytes:       result.Stats.Bytes,
				ProcessTime: result.Stats.ProcessingTime,
			})
			fmt.Fprintf(progress, "  ✓ %s (%d records)\n", result.Job, result.Stats.Records)
		} else {
			summary.FailedJobs++
			summary.FailedJobsList = append(summary.FailedJobsList, utils.FailedJobInfo{
				Job:          result.Job,
				ErrorMessage: result.Error.Error(),
			})
			fmt.Fprintf(progress, "  ✗ %s: %v\n", result.Job, result.Error)
		}
	}

	// =========================================================================
	// STEP 3: PRINT SUMMARY
	// =========================================================================

	summary.EndTime = time.Now()

	fmt.Fprintln(progress, "\n=== Export Complete ===")
	fmt.Fprintf(progress, "Total jobs:      %d\n", summary.TotalJobs)
	fmt.Fprintf(progress, "Successful:      %d\n", summary.SuccessfulJobs)
	fmt.Fprintf(progress, "Errors:          %d\n", summary.FailedJobs)
	fmt.Fprintf(progress, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if writeSummary && !dryRun {
		files := utils.NewFileManager(mainConfig.OutputDir, "")
		if err := files.EnsureDirectories(); err != nil {
			return err
		}
		path, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "Summary:         %s\n", path)
	}

	if summary.FailedJobs > 0 {
		return fmt.Errorf("%d of %d jobs failed", summary.FailedJobs, summary.TotalJobs)
	}
	return nil
}

// selectJobs returns the named jobs, or all jobs when names is empty.
func selectJobs(cfg *config.MainConfig, names []string) ([]*config.JobConfig, error) {
	if len(names) == 0 {
		jobs := make([]*config.JobConfig, len(cfg.Jobs))
		for i := range cfg.Jobs {
			jobs[i] = &cfg.Jobs[i]
		}
		return jobs, nil
	}

	jobs := make([]*config.JobConfig, 0, len(names))
	for _, name := range names {
		job, err := cfg.Job(name)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

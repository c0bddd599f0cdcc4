// =============================================================================
// CSV Export - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the exporter, including:
//   - Directory management
//   - Output file naming
//   - Writing and archiving generated files
//   - Run summaries
//
// ARCHIVAL STRATEGY:
//   - Output files are copied to the archive directory, never moved
//   - Archives may use date-based subdirectories (archive/2024/01/15/...)
//   - Nothing is archived when no archive directory is configured
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the exporter.
type FileManager struct {
	// OutputDir is the directory where generated files are placed.
	OutputDir string

	// ArchiveDir receives a copy of every generated file. Empty disables archiving.
	ArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: archive/2024/01/15/people.csv
	UseTimestampSubdirs bool

	// now is replaced in tests.
	now func() time.Time
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
		now:        time.Now,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output and archive directories if needed.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// WRITING AND ARCHIVING
// =============================================================================

// WriteOutput writes data to fileName inside the output directory.
//
// RETURNS:
//   - The path of the written file.
//   - An error if fileName is not a plain file name, or the file cannot be
//     written.
func (fm *FileManager) WriteOutput(fileName string, data []byte) (string, error) {
	if fileName == "" || fileName == "." || fileName == ".." || filepath.Base(fileName) != fileName || strings.ContainsAny(fileName, `/\`) {
		return "", fmt.Errorf("invalid output file name %q: must be a plain file name", fileName)
	}
	outputPath := filepath.Join(fm.OutputDir, fileName)

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return outputPath, nil
}

// ArchiveOutputFile copies a generated file to the archive directory.
//
// RETURNS:
//   - The path to the archived file, or "" when archiving is disabled.
//   - An error if archival fails.
func (fm *FileManager) ArchiveOutputFile(filePath string) (string, error) {
	if fm.ArchiveDir == "" {
		return "", nil
	}

	archivePath := fm.getArchivePath(filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := copyFile(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to copy file to archive: %w", err)
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := fm.clock()
		return filepath.Join(
			fm.ArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(fm.ArchiveDir, fileName)
}

func (fm *FileManager) clock() time.Time {
	if fm.now == nil {
		return time.Now()
	}
	return fm.now()
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName builds a file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {name}      - Job name (from params)
//   - params: Extra placeholder values, keyed without braces.
//
// EXAMPLE:
//   format: "{name}_{timestamp}_{uuid}.csv"
//   params: {"name": "people"}
//   output: "people_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.csv"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now())
}

func generateOutputFileName(format string, params map[string]string, now time.Time) string {
	builtins := []string{
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		builtins = append(builtins, "{uuid}", uuid.New().String())
	}
	result := strings.NewReplacer(builtins...).Replace(format)

	// Params are substituted last; their values are not expanded.
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", params[key])
	}
	result = strings.NewReplacer(pairs...).Replace(result)

	// Ensure .csv extension.
	if !strings.HasSuffix(strings.ToLower(result), ".csv") {
		result += ".csv"
	}

	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about an export run.
type ProcessingSummary struct {
	StartTime      time.Time
	EndTime        time.Time
	TotalJobs      int
	SuccessfulJobs int
	FailedJobs     int
	TotalRecords   int
	ExportedJobs   []ExportedJobInfo
	FailedJobsList []FailedJobInfo
}

// ExportedJobInfo describes a job that produced a file.
type ExportedJobInfo struct {
	Job         string
	OutputFile  string
	ArchivePath string
	Records     int
	Bytes       int
	ProcessTime time.Duration
}

// FailedJobInfo describes a job that failed.
type FailedJobInfo struct {
	Job          string
	ErrorMessage string
}

// WriteSummaryLog writes a run summary next to the generated files.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	summaryFileName := fmt.Sprintf("export_summary_%s.txt", summary.EndTime.Format("20060102_150405"))
	summaryPath := filepath.Join(outputDir, summaryFileName)

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if err := writeSummary(file, summary); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}

	return summaryPath, nil
}

// writeSummary renders summary as plain text.
func writeSummary(w io.Writer, summary ProcessingSummary) error {
	writer := bufio.NewWriter(w)
	rule := "================================================================================\n"

	fmt.Fprintf(writer, "CSV Export - Run Summary\n%s\n", rule)
	fmt.Fprintf(writer, "Run Information:\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime))
	fmt.Fprintf(writer, "Statistics:\n"+
		"  Total Jobs:     %d\n"+
		"  Successful:     %d\n"+
		"  Failed:         %d\n"+
		"  Total Records:  %d\n\n",
		summary.TotalJobs,
		summary.SuccessfulJobs,
		summary.FailedJobs,
		summary.TotalRecords)

	if len(summary.ExportedJobs) > 0 {
		fmt.Fprintf(writer, "Exported Jobs:\n%s", strings.Repeat("-", 80)+"\n")
		for _, job := range summary.ExportedJobs {
			fmt.Fprintf(writer, "  Job:          %s\n", job.Job)
			fmt.Fprintf(writer, "  Output:       %s\n", job.OutputFile)
			if job.ArchivePath != "" {
				fmt.Fprintf(writer, "  Archive:      %s\n", job.ArchivePath)
			}
			fmt.Fprintf(writer, "  Records:      %d\n", job.Records)
			fmt.Fprintf(writer, "  Bytes:        %d\n", job.Bytes)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", job.ProcessTime)
		}
	}

	if len(summary.FailedJobsList) > 0 {
		fmt.Fprintf(writer, "Failed Jobs:\n%s", strings.Repeat("-", 80)+"\n")
		for _, job := range summary.FailedJobsList {
			fmt.Fprintf(writer, "  Job:   %s\n", job.Job)
			fmt.Fprintf(writer, "  Error: %s\n\n", job.ErrorMessage)
		}
	}

	fmt.Fprintf(writer, "%sEnd of Summary\n", rule)

	return writer.Flush()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// =============================================================================
// CSV Export - Export Pipeline
// =============================================================================
//
// This module runs a single export job from the job file.
//
// PROCESSING STEPS:
//   1. Build the serializer from the job's output settings
//   2. Load the translation table, if any
//   3. Read the records from the job's source
//   4. Serialize the records
//   5. Write the output file (or stream it to a writer)
//   6. Archive a copy of the output file
//
// =============================================================================

package exporter

import (
	"fmt"
	"io"
	"time"

	"github.com/ginjaninja78/csvexport/internal/config"
	"github.com/ginjaninja78/csvexport/internal/source"
	"github.com/ginjaninja78/csvexport/pkg/translate"
	"github.com/ginjaninja78/csvexport/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of running a single job.
type Result struct {
	// Job is the name of the job.
	Job string

	// OutputFile is the path to the generated file.
	// This is empty if the job failed, ran dry, or streamed to a writer.
	OutputFile string

	// ArchivePath is the path of the archived copy, if any.
	ArchivePath string

	// Success indicates whether the job completed.
	Success bool

	// Error contains the error if the job failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about a job.
type ProcessingStats struct {
	// Records is the number of records read from the source.
	Records int

	// Bytes is the size of the generated text.
	Bytes int

	// ProcessingTime is the time taken by the job.
	ProcessingTime time.Duration
}

// =============================================================================
// EXPORTER STRUCTURE
// =============================================================================

// Exporter runs one job.
type Exporter struct {
	job        *config.JobConfig
	mainConfig *config.MainConfig
	files      *utils.FileManager
	logger     Logger

	// dryRun skips writing and archiving.
	dryRun bool

	// stdout, when set, receives the output instead of a file.
	stdout io.Writer
}

// New creates an Exporter for job.
func New(job *config.JobConfig, mainConfig *config.MainConfig) *Exporter {
	files := utils.NewFileManager(mainConfig.OutputDir, mainConfig.ArchiveDir)
	files.UseTimestampSubdirs = mainConfig.ArchiveByDate

	return &Exporter{
		job:        job,
		mainConfig: mainConfig,
		files:      files,
		logger:     NewLogger(io.Discard, false),
	}
}

// WithLogger sets the logger.
func (e *Exporter) WithLogger(l Logger) *Exporter {
	e.logger = l
	return e
}

// WithDryRun runs the job without writing anything.
func (e *Exporter) WithDryRun(dryRun bool) *Exporter {
	e.dryRun = dryRun
	return e
}

// WithStdout sends the output to w instead of a file.
func (e *Exporter) WithStdout(w io.Writer) *Exporter {
	e.stdout = w
	return e
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the job.
func (e *Exporter) Run() Result {
	startTime := time.Now()
	result := Result{Job: e.job.Name}

	e.logger.Info("Running job: %s", e.job.Name)

	// =========================================================================
	// STEP 1: BUILD SERIALIZER
	// =========================================================================

	serializer, err := e.mainConfig.Serializer(e.job)
	if err != nil {
		return e.fail(result, fmt.Errorf("failed to build serializer: %w", err))
	}

	e.logger.Debug("Output settings: %s", serializer.Config())

	// =========================================================================
	// STEP 2: LOAD TRANSLATIONS
	// =========================================================================
	// A missing table is not an error: titles are printed as they are.

	var translator translate.Translator
	if path := e.mainConfig.TranslationsFor(e.job); path != "" {
		table, err := translate.Load(path)
		if err != nil {
			return e.fail(result, fmt.Errorf("failed to load translations: %w", err))
		}
		translator = table
		e.logger.Debug("Loaded translations from %s", path)
	}

	// =========================================================================
	// STEP 3: READ RECORDS
	// =========================================================================

	columns, err := source.ColumnsFromConfig(e.job.Columns)
	if err != nil {
		return e.fail(result, fmt.Errorf("invalid columns: %w", err))
	}

	records, err := source.Read(e.job.Source, columns)
	if err != nil {
		return e.fail(result, fmt.Errorf("failed to read source: %w", err))
	}

	result.Stats.Records = len(records)
	e.logger.Debug("Read %d records from %s", len(records), e.job.Source.Path)

	// =========================================================================
	// STEP 4: SERIALIZE
	// =========================================================================

	text := serializer.Serialize(records, translator)
	result.Stats.Bytes = len(text)

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	switch {
	case e.dryRun:
		e.logger.Info("Dry run: %d bytes not written", len(text))

	case e.stdout != nil:
		if _, err := io.WriteString(e.stdout, text); err != nil {
			return e.fail(result, fmt.Errorf("failed to write output: %w", err))
		}

	default:
		if err := e.files.EnsureDirectories(); err != nil {
			return e.fail(result, err)
		}

		fileName := utils.GenerateOutputFileName(e.mainConfig.FileNameFormat, map[string]string{"name": e.job.Name})
		outputPath, err := e.files.WriteOutput(fileName, []byte(text))
		if err != nil {
			return e.fail(result, fmt.Errorf("failed to write output: %w", err))
		}
		result.OutputFile = outputPath
		e.logger.Info("Wrote output to: %s", outputPath)

		// =====================================================================
		// STEP 6: ARCHIVE
		// =====================================================================

		archivePath, err := e.files.ArchiveOutputFile(outputPath)
		if err != nil {
			// Log the error but don't fail the job.
			e.logger.Warn("Failed to archive output: %v", err)
		}
		result.ArchivePath = archivePath
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// fail records err on result and logs it.
func (e *Exporter) fail(result Result, err error) Result {
	e.logger.Error("Job %s failed: %v", e.job.Name, err)
	result.Error = err
	return result
}

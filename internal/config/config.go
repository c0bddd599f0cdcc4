// =============================================================================
// CSV Export - Configuration Module
// =============================================================================
//
// This module loads the YAML job file that drives the command line tool.
//
// FILE LAYOUT:
//   output_dir: ./output
//   archive_dir: ./archive
//   archive_by_date: true
//   file_name_format: "{name}_{timestamp}.csv"
//   translations: ./i18n/fr.yaml
//   output:                      # defaults for every job
//     locale: fr
//     quote_mode: mixed
//   jobs:
//     - name: people
//       source: { type: xlsx, path: ./people.xlsx, sheet: Sheet1 }
//       output: { delimiter: "," }   # per-job overrides
//       columns:
//         - { title: person.name, field: Name, type: text }
//         - { title: person.size, field: Size, type: float32 }
//
// Relative paths are resolved against the directory of the job file.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/csvexport/pkg/cell"
	"github.com/ginjaninja78/csvexport/pkg/export"
	"github.com/ginjaninja78/csvexport/pkg/format"
	"github.com/ginjaninja78/csvexport/pkg/quote"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the whole job file.
type MainConfig struct {
	// OutputDir is where generated files are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives a copy of every generated file when set.
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveByDate files archived copies under year/month/day folders.
	// Example: archive/2024/01/15/people.csv
	ArchiveByDate bool `yaml:"archive_by_date"`

	// FileNameFormat names output files.
	// Placeholders: {name}, {uuid}, {timestamp}, {date}, {time}
	// Default: "{name}_{timestamp}.csv"
	FileNameFormat string `yaml:"file_name_format"`

	// LogLevel is "debug" or "info".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Translations is a YAML translation table used for header titles.
	// Leave empty to print titles as they are.
	Translations string `yaml:"translations"`

	// Output holds the defaults applied to every job.
	Output OutputSettings `yaml:"output"`

	// Jobs lists the exports this file describes.
	Jobs []JobConfig `yaml:"jobs"`

	// baseDir is the directory the file was loaded from.
	baseDir string
}

// OutputSettings selects the layout and locale of the generated text.
// Empty fields inherit from the next level up.
type OutputSettings struct {
	// Locale picks a formatting preset: "iso" or "fr".
	Locale string `yaml:"locale"`

	// DatePattern overrides the preset's strftime date pattern.
	DatePattern string `yaml:"date_pattern"`

	// DecimalSeparator overrides the preset's decimal separator.
	DecimalSeparator string `yaml:"decimal_separator"`

	// Delimiter is "comma", "semicolon", "tab", "pipe" or any single character.
	// Default: ";" when the resolved decimal separator is ",", otherwise ",".
	// It follows decimal_separator, so "locale: fr" with "decimal_separator: ."
	// gets ",".
	Delimiter string `yaml:"delimiter"`

	// LineEnding is "unix" or "windows".
	LineEnding string `yaml:"line_ending"`

	// QuoteMode is "none", "mixed" or "all".
	QuoteMode string `yaml:"quote_mode"`

	// Header turns the header line on or off. Default: on.
	Header *bool `yaml:"header"`
}

// JobConfig describes one export.
type JobConfig struct {
	// Name identifies the job on the command line and in file names.
	// It must not contain path separators or "..".
	Name string `yaml:"name"`

	// Source is where the records come from.
	Source SourceConfig `yaml:"source"`

	// Columns lists the output columns in order.
	Columns []ColumnConfig `yaml:"columns"`

	// Output overrides the top-level output settings for this job.
	Output OutputSettings `yaml:"output"`

	// Translations overrides the top-level translation table for this job.
	Translations string `yaml:"translations"`
}

// SourceConfig locates the input records.
type SourceConfig struct {
	// Type is "xlsx" or "yaml". Default: taken from the file extension.
	Type string `yaml:"type"`

	// Path is the input file.
	Path string `yaml:"path"`

	// Sheet is the worksheet to read (xlsx only). Default: the first sheet.
	Sheet string `yaml:"sheet"`

	// HeaderRow is the 1-based row holding column names (xlsx only).
	// Data starts on the next row. Default: 1
	HeaderRow int `yaml:"header_row"`
}

// ColumnConfig maps one input field to one output column.
type ColumnConfig struct {
	// Title is the header title or translation key ("size", "person.size").
	Title string `yaml:"title"`

	// Field is the input field name: the header text in a sheet, or the key
	// in a YAML record. Default: Title.
	Field string `yaml:"field"`

	// Column addresses a sheet column by letter ("B") instead of by header.
	Column string `yaml:"column"`

	// Type is text, date, datetime, float32, float64 or integer.
	// Default: text
	Type string `yaml:"type"`

	// Optional allows empty input, which is exported as an empty field.
	Optional bool `yaml:"optional"`

	// Layout is the Go time layout used to read dates from text.
	Layout string `yaml:"layout"`

	// Untitled leaves the column out of the header line.
	Untitled bool `yaml:"untitled"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads, defaults and validates the job file at configPath.
func Load(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data, filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes a job file. Relative paths are resolved against baseDir.
func Parse(data []byte, baseDir string) (*MainConfig, error) {
	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.baseDir = baseDir

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in unset options and resolves paths.
func applyDefaults(cfg *MainConfig) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.FileNameFormat == "" {
		cfg.FileNameFormat = "{name}_{timestamp}.csv"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.OutputDir = cfg.resolve(cfg.OutputDir)
	cfg.ArchiveDir = cfg.resolve(cfg.ArchiveDir)
	cfg.Translations = cfg.resolve(cfg.Translations)

	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]

		job.Source.Path = cfg.resolve(job.Source.Path)
		job.Translations = cfg.resolve(job.Translations)

		if job.Source.Type == "" {
			job.Source.Type = strings.TrimPrefix(strings.ToLower(filepath.Ext(job.Source.Path)), ".")
		}
		if job.Source.Type == "yml" {
			job.Source.Type = "yaml"
		}
		if job.Source.HeaderRow == 0 {
			job.Source.HeaderRow = 1
		}

		for j := range job.Columns {
			col := &job.Columns[j]
			if col.Type == "" {
				col.Type = "text"
			}
			if col.Field == "" {
				col.Field = col.Title
			}
		}
	}
}

// resolve makes p relative to the job file's directory.
func (c *MainConfig) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// validate checks every job. Output settings are compiled so that bad
// patterns and unknown names fail here rather than during an export.
func validate(cfg *MainConfig) error {
	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("no jobs defined")
	}

	seen := make(map[string]bool)
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]

		if job.Name == "" {
			return fmt.Errorf("job %d: name is required", i+1)
		}
		if seen[job.Name] {
			return fmt.Errorf("job %q: duplicate name", job.Name)
		}
		seen[job.Name] = true
		if strings.ContainsAny(job.Name, `/\`) || strings.Contains(job.Name, "..") {
			return fmt.Errorf("job %q: name must not contain path separators or \"..\"", job.Name)
		}

		if job.Source.Path == "" {
			return fmt.Errorf("job %q: source path is required", job.Name)
		}
		switch job.Source.Type {
		case "xlsx", "yaml":
		default:
			return fmt.Errorf("job %q: unsupported source type %q", job.Name, job.Source.Type)
		}
		if job.Source.HeaderRow < 1 {
			return fmt.Errorf("job %q: header_row must be 1 or more", job.Name)
		}

		if len(job.Columns) == 0 {
			return fmt.Errorf("job %q: no columns defined", job.Name)
		}
		for j, col := range job.Columns {
			if col.Field == "" && col.Column == "" {
				return fmt.Errorf("job %q column %d: field or column is required", job.Name, j+1)
			}
			if _, err := cell.ParseKind(col.Type); err != nil {
				return fmt.Errorf("job %q column %d: %w", job.Name, j+1, err)
			}
		}

		if _, err := cfg.Serializer(job); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
	}

	return nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Job returns the job called name.
func (c *MainConfig) Job(name string) (*JobConfig, error) {
	for i := range c.Jobs {
		if c.Jobs[i].Name == name {
			return &c.Jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job %q not found", name)
}

// TranslationsFor returns the translation file used by job, or "".
func (c *MainConfig) TranslationsFor(job *JobConfig) string {
	if job.Translations != "" {
		return job.Translations
	}
	return c.Translations
}

// Settings returns the output settings of job merged over the defaults.
func (c *MainConfig) Settings(job *JobConfig) OutputSettings {
	return c.Output.Merge(job.Output)
}

// Serializer builds the serializer for job.
func (c *MainConfig) Serializer(job *JobConfig) (*export.Serializer, error) {
	return c.Settings(job).Serializer()
}

// Kind returns the parsed cell type of col.
func (col ColumnConfig) Kind() cell.Kind {
	k, err := cell.ParseKind(col.Type)
	if err != nil {
		return cell.KindText
	}
	return k
}

// =============================================================================
// OUTPUT SETTINGS
// =============================================================================

// Merge returns s with every non-empty field of override applied.
func (s OutputSettings) Merge(override OutputSettings) OutputSettings {
	if override.Locale != "" {
		s.Locale = override.Locale
	}
	if override.DatePattern != "" {
		s.DatePattern = override.DatePattern
	}
	if override.DecimalSeparator != "" {
		s.DecimalSeparator = override.DecimalSeparator
	}
	if override.Delimiter != "" {
		s.Delimiter = override.Delimiter
	}
	if override.LineEnding != "" {
		s.LineEnding = override.LineEnding
	}
	if override.QuoteMode != "" {
		s.QuoteMode = override.QuoteMode
	}
	if override.Header != nil {
		s.Header = override.Header
	}
	return s
}

// Serializer compiles s into an export.Serializer.
func (s OutputSettings) Serializer() (*export.Serializer, error) {
	policy, err := format.Lookup(s.Locale)
	if err != nil {
		return nil, err
	}
	if s.DatePattern != "" {
		policy = policy.WithDatePattern(s.DatePattern)
	}
	if s.DecimalSeparator != "" {
		policy = policy.WithDecimalSeparator(s.DecimalSeparator)
	}

	// A decimal comma would collide with a comma delimiter.
	cfg := export.UnixComma()
	if policy.DecimalSeparator() == "," {
		cfg = export.UnixSemicolon()
	}

	if s.Delimiter != "" {
		sep, err := export.ParseSeparator(s.Delimiter)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithSeparator(sep)
	}

	eol, err := export.ParseLineEnding(s.LineEnding)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithLineEnding(eol)

	mode, err := quote.ParseMode(s.QuoteMode)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithMode(mode)

	if s.Header != nil {
		cfg = cfg.WithHeader(*s.Header)
	}

	return export.New(cfg, policy)
}

// =============================================================================
// CSV Export - Main Entry Point
// =============================================================================
//
// This is the main entry point for the csvexport CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   csvexport export        - Run every job in the job file
//   csvexport validate      - Check the job file without exporting
//   csvexport version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - pkg/           : the serialization library (cell, format, quote,
//                      translate, export) and file utilities
//   - internal/      : job file loading, record sources, export pipeline
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csvexport/cmd"
)

func main() {
	cmd.Execute()
}

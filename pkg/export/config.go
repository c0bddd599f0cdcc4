package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/csvexport/pkg/quote"
)

// =============================================================================
// LINE ENDINGS
// =============================================================================

// LineEnding is the sequence placed between rows.
type LineEnding int

const (
	// Unix terminates rows with "\n".
	Unix LineEnding = iota

	// Windows terminates rows with "\r\n".
	Windows
)

// Sequence returns the characters written between rows.
func (e LineEnding) Sequence() string {
	if e == Windows {
		return "\r\n"
	}
	return "\n"
}

// String returns the configuration name of e.
func (e LineEnding) String() string {
	if e == Windows {
		return "windows"
	}
	return "unix"
}

// ParseLineEnding resolves "unix"/"lf" or "windows"/"crlf".
func ParseLineEnding(name string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unix", "lf", "":
		return Unix, nil
	case "windows", "crlf":
		return Windows, nil
	}
	return 0, fmt.Errorf("unknown line ending %q", name)
}

// =============================================================================
// SEPARATORS
// =============================================================================

// Separator is the text placed between fields of a row.
type Separator string

const (
	Comma     Separator = ","
	Semicolon Separator = ";"
	Tab       Separator = "\t"
	Pipe      Separator = "|"
)

// ParseSeparator accepts a separator name or any single character.
func ParseSeparator(name string) (Separator, error) {
	switch strings.ToLower(name) {
	case "comma", "":
		return Comma, nil
	case "semicolon":
		return Semicolon, nil
	case "tab", `\t`:
		return Tab, nil
	case "pipe":
		return Pipe, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		return Separator(name), nil
	}
	return "", fmt.Errorf("invalid delimiter %q: must be a single character", name)
}

// =============================================================================
// CONFIG
// =============================================================================

// Config holds the layout of the output text. It is a value type: the With
// methods return modified copies and never change the receiver.
type Config struct {
	lineEnding LineEnding
	separator  Separator
	mode       quote.Mode
	header     bool
}

// UnixSemicolon is "\n" rows, ";" fields, mixed quoting and a header line.
func UnixSemicolon() Config {
	return Config{lineEnding: Unix, separator: Semicolon, mode: quote.Mixed, header: true}
}

// UnixComma is "\n" rows, "," fields, mixed quoting and a header line.
func UnixComma() Config {
	return Config{lineEnding: Unix, separator: Comma, mode: quote.Mixed, header: true}
}

// WithLineEnding returns a copy of c that ends rows with e.
func (c Config) WithLineEnding(e LineEnding) Config {
	c.lineEnding = e
	return c
}

// WithSeparator returns a copy of c that separates fields with s.
func (c Config) WithSeparator(s Separator) Config {
	c.separator = s
	return c
}

// WithMode returns a copy of c using quoting mode m.
func (c Config) WithMode(m quote.Mode) Config {
	c.mode = m
	return c
}

// WithHeader returns a copy of c with the header line turned on or off.
func (c Config) WithHeader(on bool) Config {
	c.header = on
	return c
}

// LineEnding returns the row terminator.
func (c Config) LineEnding() LineEnding { return c.lineEnding }

// Separator returns the field delimiter.
func (c Config) Separator() Separator { return c.separator }

// Mode returns the quoting mode.
func (c Config) Mode() quote.Mode { return c.mode }

// Header reports whether a header line is written.
func (c Config) Header() bool { return c.header }

// String describes c for logs.
func (c Config) String() string {
	return fmt.Sprintf("eol=%s delimiter=%q quote=%s header=%t", c.lineEnding, string(c.separator), c.mode, c.header)
}

// Package quote decides whether rendered cell text is wrapped in double quotes.
//
//	| Mode  | textual value | other values |
//	|-------|---------------|--------------|
//	| None  | bare          | bare         |
//	| Mixed | quoted        | bare         |
//	| All   | quoted        | quoted       |
//
// Header titles always take the textual branch. Quoting is plain wrapping:
// quote characters already inside the text are not doubled.
package quote

import (
	"fmt"
	"strings"
)

// Char is the character placed on each side of a quoted field.
const Char = `"`

// Mode selects which fields are quoted.
type Mode int

const (
	// Mixed quotes text values and headers only. It is the default.
	Mixed Mode = iota

	// None never quotes.
	None

	// All quotes every field, including empty ones.
	All
)

// String returns the configuration name of m.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Mixed:
		return "mixed"
	case All:
		return "all"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves a configuration name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "never":
		return None, nil
	case "mixed", "":
		return Mixed, nil
	case "all", "always":
		return All, nil
	}
	return 0, fmt.Errorf("unknown quote mode %q", name)
}

// Apply returns text quoted or bare according to mode and the value category.
func Apply(mode Mode, text string, textual bool) string {
	switch mode {
	case None:
		return text
	case Mixed:
		if textual {
			return wrap(text)
		}
		return text
	case All:
		return wrap(text)
	}
	panic(fmt.Sprintf("quote: unhandled mode %v", mode))
}

// Header quotes a header title. Titles follow the textual rule.
func Header(mode Mode, title string) string {
	return Apply(mode, title, true)
}

func wrap(text string) string {
	return Char + text + Char
}

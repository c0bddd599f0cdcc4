// =============================================================================
// CSV Export - Formatting Policy
// =============================================================================
//
// This package turns typed cell values into text. A Policy supplies the two
// locale-dependent pieces (a strftime date pattern and a decimal separator);
// a Formatter compiles the policy once and renders values with it.
//
// RENDERING RULES:
//   text      : verbatim
//   absent    : empty string, whatever the kind
//   date      : date pattern                 e.g. %d/%m/%Y -> 28/01/2020
//   date-time : date pattern + "T%H:%M"      e.g. 2020-01-28T09:05
//   float     : three decimals, "." swapped for the separator
//   integer   : plain decimal
//
// =============================================================================

package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/csvexport/pkg/cell"
	"github.com/lestrrat-go/strftime"
)

// =============================================================================
// POLICY
// =============================================================================

// Policy describes how dates and decimal numbers are written for a locale.
type Policy interface {
	// DatePattern is a strftime pattern such as "%Y-%m-%d".
	DatePattern() string

	// DecimalSeparator replaces the "." of formatted floats.
	DecimalSeparator() string
}

// Layout is the value type behind the built-in policies.
type Layout struct {
	datePattern string
	separator   string
}

// ISO formats dates as 2020-01-28 and decimals with a point.
func ISO() Layout { return Layout{datePattern: "%Y-%m-%d", separator: "."} }

// French formats dates as 28/01/2020 and decimals with a comma.
func French() Layout { return Layout{datePattern: "%d/%m/%Y", separator: ","} }

// Custom returns a policy with the given pattern and separator.
// The pattern is checked when a Formatter is built from it.
func Custom(datePattern, separator string) Layout {
	return Layout{datePattern: datePattern, separator: separator}
}

// Lookup returns the built-in policy registered under name.
func Lookup(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "iso", "en", "":
		return ISO(), nil
	case "fr", "french":
		return French(), nil
	}
	return Layout{}, fmt.Errorf("unknown locale %q", name)
}

// DatePattern returns the strftime pattern used for dates.
func (l Layout) DatePattern() string { return l.datePattern }

// DecimalSeparator returns the text that replaces the decimal point.
func (l Layout) DecimalSeparator() string { return l.separator }

// WithDatePattern returns a copy of l using pattern for dates.
func (l Layout) WithDatePattern(pattern string) Layout {
	l.datePattern = pattern
	return l
}

// WithDecimalSeparator returns a copy of l using sep for decimals.
func (l Layout) WithDecimalSeparator(sep string) Layout {
	l.separator = sep
	return l
}

// =============================================================================
// FORMATTER
// =============================================================================

// dateTimeSuffix is appended to the date pattern for date-time values.
// Minute precision is fixed.
const dateTimeSuffix = "T%H:%M"

// floatDigits is the fixed number of decimals for float values.
const floatDigits = 3

// Formatter renders cell values with a compiled Policy.
// It holds no mutable state and is safe for concurrent use.
type Formatter struct {
	policy    Policy
	date      *strftime.Strftime
	dateTime  *strftime.Strftime
	separator string
}

// New compiles p. A malformed date pattern is reported here so that Format
// can never fail.
func New(p Policy) (*Formatter, error) {
	if p == nil {
		return nil, fmt.Errorf("nil formatting policy")
	}

	date, err := strftime.New(p.DatePattern())
	if err != nil {
		return nil, fmt.Errorf("invalid date pattern %q: %w", p.DatePattern(), err)
	}

	dateTime, err := strftime.New(p.DatePattern() + dateTimeSuffix)
	if err != nil {
		return nil, fmt.Errorf("invalid date-time pattern %q: %w", p.DatePattern()+dateTimeSuffix, err)
	}

	return &Formatter{
		policy:    p,
		date:      date,
		dateTime:  dateTime,
		separator: p.DecimalSeparator(),
	}, nil
}

// MustNew is like New but panics on error. It is meant for the built-in
// policies, whose patterns are known to compile.
func MustNew(p Policy) *Formatter {
	f, err := New(p)
	if err != nil {
		panic(err)
	}
	return f
}

// Policy returns the policy f was compiled from.
func (f *Formatter) Policy() Policy { return f.policy }

// Format renders v as text.
func (f *Formatter) Format(v cell.Value) string {
	if !v.Valid() {
		return ""
	}

	switch v.Kind() {
	case cell.KindText:
		return v.Str()
	case cell.KindDate:
		return f.date.FormatString(v.Time())
	case cell.KindDateTime:
		return f.dateTime.FormatString(v.Time())
	case cell.KindFloat32:
		return f.decimal(strconv.FormatFloat(v.Float(), 'f', floatDigits, 32))
	case cell.KindFloat64:
		return f.decimal(strconv.FormatFloat(v.Float(), 'f', floatDigits, 64))
	case cell.KindInteger:
		return strconv.FormatInt(v.Int(), 10)
	}

	panic(fmt.Sprintf("format: unhandled cell kind %v", v.Kind()))
}

// decimal swaps the decimal point for the configured separator.
func (f *Formatter) decimal(s string) string {
	if f.separator == "." {
		return s
	}
	return strings.Replace(s, ".", f.separator, 1)
}

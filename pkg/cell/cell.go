// =============================================================================
// CSV Export - Cell Value Model
// =============================================================================
//
// This package defines the typed values that records hand to the serializer.
//
// DATA MODEL:
//   Value  : one scalar of a fixed Kind, present or absent
//   Cell   : an optional column title paired with a Value
//   Record : anything that can list its Cells in column order
//
// A Value is built fresh for every record on every export and is never
// mutated afterwards.
//
// =============================================================================

package cell

import (
	"fmt"
	"time"
)

// =============================================================================
// KINDS
// =============================================================================

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	// KindText is a plain string.
	KindText Kind = iota

	// KindDate is a calendar date. Only the date part of the time is rendered.
	KindDate

	// KindDateTime is a date with a time of day, rendered to the minute.
	KindDateTime

	// KindFloat32 is a single precision float.
	KindFloat32

	// KindFloat64 is a double precision float.
	KindFloat64

	// KindInteger is a signed 64-bit integer.
	KindInteger
)

// kindNames maps each Kind to the name used in configuration files.
var kindNames = map[Kind]string{
	KindText:     "text",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindInteger:  "integer",
}

// String returns the configuration name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a configuration name to a Kind.
// "string", "float" and "int" are accepted as aliases.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "text", "string":
		return KindText, nil
	case "date":
		return KindDate, nil
	case "datetime", "date_time":
		return KindDateTime, nil
	case "float32", "float":
		return KindFloat32, nil
	case "float64", "double":
		return KindFloat64, nil
	case "integer", "int":
		return KindInteger, nil
	}
	return 0, fmt.Errorf("unknown cell type %q", name)
}

// =============================================================================
// VALUE
// =============================================================================

// Value is a typed, optionally absent scalar.
//
// The zero Value is an absent text value.
type Value struct {
	kind  Kind
	valid bool

	text  string
	time  time.Time
	float float64
	int   int64
}

// Text returns a present text value.
func Text(s string) Value { return Value{kind: KindText, valid: true, text: s} }

// Date returns a present date value.
func Date(t time.Time) Value { return Value{kind: KindDate, valid: true, time: t} }

// DateTime returns a present date-time value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, valid: true, time: t} }

// Float32 returns a present single precision value.
func Float32(f float32) Value { return Value{kind: KindFloat32, valid: true, float: float64(f)} }

// Float64 returns a present double precision value.
func Float64(f float64) Value { return Value{kind: KindFloat64, valid: true, float: f} }

// Integer returns a present integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, valid: true, int: i} }

// Null returns an absent value of the given kind.
func Null(kind Kind) Value { return Value{kind: kind} }

// OptText returns Text(*s), or an absent text value when s is nil.
func OptText(s *string) Value {
	if s == nil {
		return Null(KindText)
	}
	return Text(*s)
}

// OptDate returns Date(*t), or an absent date when t is nil.
func OptDate(t *time.Time) Value {
	if t == nil {
		return Null(KindDate)
	}
	return Date(*t)
}

// OptDateTime returns DateTime(*t), or an absent date-time when t is nil.
func OptDateTime(t *time.Time) Value {
	if t == nil {
		return Null(KindDateTime)
	}
	return DateTime(*t)
}

// OptFloat32 returns Float32(*f), or an absent value when f is nil.
func OptFloat32(f *float32) Value {
	if f == nil {
		return Null(KindFloat32)
	}
	return Float32(*f)
}

// OptFloat64 returns Float64(*f), or an absent value when f is nil.
func OptFloat64(f *float64) Value {
	if f == nil {
		return Null(KindFloat64)
	}
	return Float64(*f)
}

// OptInteger returns Integer(*i), or an absent value when i is nil.
func OptInteger(i *int64) Value {
	if i == nil {
		return Null(KindInteger)
	}
	return Integer(*i)
}

// Kind reports the scalar type of v.
func (v Value) Kind() Kind { return v.kind }

// Valid reports whether v holds a value.
func (v Value) Valid() bool { return v.valid }

// Textual reports whether v belongs to the textual category used by quoting.
// An absent text value is still textual.
func (v Value) Textual() bool { return v.kind == KindText }

// Str returns the text of a text value.
func (v Value) Str() string { return v.text }

// Time returns the time of a date or date-time value.
func (v Value) Time() time.Time { return v.time }

// Float returns the float of a Float32 or Float64 value, widened to float64.
func (v Value) Float() float64 { return v.float }

// Int returns the integer of an integer value.
func (v Value) Int() int64 { return v.int }

// =============================================================================
// CELL AND RECORD
// =============================================================================

// Cell pairs a column title with a value.
// Untitled cells are left out of the header line.
type Cell struct {
	// Title is the column title, or a translation key such as "person.name".
	Title string

	// HasTitle is false for untitled columns.
	HasTitle bool

	// Value is the typed content of the cell.
	Value Value
}

// New returns an untitled cell.
func New(v Value) Cell { return Cell{Value: v} }

// Titled returns a cell with a header title.
func Titled(title string, v Value) Cell { return Cell{Title: title, HasTitle: true, Value: v} }

// Record is implemented by anything that can be exported as one row.
// The order of the returned cells defines the column order.
type Record interface {
	Cells() []Cell
}

// RecordFunc adapts a plain function to the Record interface.
type RecordFunc func() []Cell

// Cells calls f.
func (f RecordFunc) Cells() []Cell { return f() }

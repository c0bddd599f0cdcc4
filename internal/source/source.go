// =============================================================================
// CSV Export - Record Sources
// =============================================================================
//
// This package reads raw input rows and turns them into typed records for
// the serializer. Two inputs are supported:
//   - xlsx : a worksheet read with excelize (see xlsx.go)
//   - yaml : a list of mappings (see yaml.go)
//
// Every source produces raw text per field; Column.Parse converts that text
// into a cell.Value of the configured kind.
//
// =============================================================================

package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/csvexport/internal/config"
	"github.com/ginjaninja78/csvexport/pkg/cell"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// COLUMNS
// =============================================================================

// Column describes one output column and where its input comes from.
type Column struct {
	Title    string
	Field    string
	Letter   string
	Kind     cell.Kind
	Optional bool
	Layout   string
	Untitled bool
}

// ColumnsFromConfig converts column definitions from the job file.
func ColumnsFromConfig(defs []config.ColumnConfig) ([]Column, error) {
	columns := make([]Column, 0, len(defs))
	for i, def := range defs {
		kind, err := cell.ParseKind(def.Type)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		columns = append(columns, Column{
			Title:    def.Title,
			Field:    def.Field,
			Letter:   strings.ToUpper(def.Column),
			Kind:     kind,
			Optional: def.Optional,
			Layout:   def.Layout,
			Untitled: def.Untitled,
		})
	}
	return columns, nil
}

// defaultDateTimeLayouts are tried in order when a date-time column has no layout.
var defaultDateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse converts raw input text into a value of the column's kind.
//
// Empty input is an absent value for optional columns. For required text
// columns it is an empty string; for any other required column it is an
// error.
func (c Column) Parse(raw string) (cell.Value, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		switch {
		case c.Optional:
			return cell.Null(c.Kind), nil
		case c.Kind == cell.KindText:
			return cell.Text(raw), nil
		default:
			return cell.Value{}, fmt.Errorf("value is required")
		}
	}

	switch c.Kind {
	case cell.KindText:
		return cell.Text(raw), nil

	case cell.KindDate:
		t, err := c.parseTime(trimmed, []string{"2006-01-02"})
		if err != nil {
			return cell.Value{}, err
		}
		return cell.Date(t), nil

	case cell.KindDateTime:
		t, err := c.parseTime(trimmed, defaultDateTimeLayouts)
		if err != nil {
			return cell.Value{}, err
		}
		return cell.DateTime(t), nil

	case cell.KindFloat32:
		f, err := strconv.ParseFloat(decimalPoint(trimmed), 32)
		if err != nil {
			return cell.Value{}, fmt.Errorf("not a number")
		}
		return cell.Float32(float32(f)), nil

	case cell.KindFloat64:
		f, err := strconv.ParseFloat(decimalPoint(trimmed), 64)
		if err != nil {
			return cell.Value{}, fmt.Errorf("not a number")
		}
		return cell.Float64(f), nil

	case cell.KindInteger:
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return cell.Value{}, fmt.Errorf("not an integer")
		}
		return cell.Integer(i), nil
	}

	panic(fmt.Sprintf("source: unhandled cell kind %v", c.Kind))
}

// parseTime reads a date using the column layout, the fallbacks, or an Excel
// serial date number as stored in raw worksheet cells.
func (c Column) parseTime(s string, fallbacks []string) (time.Time, error) {
	layouts := fallbacks
	if c.Layout != "" {
		layouts = []string{c.Layout}
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("not a date (layout %q)", layouts[0])
}

// decimalPoint accepts "1,5" as well as "1.5".
func decimalPoint(s string) string {
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}

// cellFor wraps a parsed value with the column title.
func (c Column) cellFor(v cell.Value) cell.Cell {
	if c.Untitled {
		return cell.New(v)
	}
	return cell.Titled(c.Title, v)
}

// =============================================================================
// RECORDS
// =============================================================================

// Row is a record read from a source.
type Row struct {
	cells []cell.Cell
}

// Cells implements cell.Record.
func (r Row) Cells() []cell.Cell { return r.cells }

// build parses one raw row. get returns the raw text for a column.
func build(columns []Column, rowNumber int, file string, get func(i int, c Column) string) (Row, error) {
	cells := make([]cell.Cell, 0, len(columns))
	for i, col := range columns {
		raw := get(i, col)
		v, err := col.Parse(raw)
		if err != nil {
			return Row{}, &ParseError{
				File:   file,
				Row:    rowNumber,
				Column: col.name(),
				Value:  raw,
				Err:    err,
			}
		}
		cells = append(cells, col.cellFor(v))
	}
	return Row{cells: cells}, nil
}

// name identifies the column in error messages.
func (c Column) name() string {
	if c.Letter != "" {
		return c.Letter
	}
	return c.Field
}

// =============================================================================
// ERRORS
// =============================================================================

// ParseError reports an input value that does not fit its column.
type ParseError struct {
	// File is the input file.
	File string

	// Row is the 1-based row number in the sheet, or the 1-based record
	// index in a YAML document.
	Row int

	// Column is the field name or column letter.
	Column string

	// Value is the raw input text.
	Value string

	// Err is the underlying problem.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d, column %s: %v (value: %q)", e.File, e.Row, e.Column, e.Err, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// =============================================================================
// DISPATCH
// =============================================================================

// Read loads all records described by src and columns.
func Read(src config.SourceConfig, columns []Column) ([]cell.Record, error) {
	switch src.Type {
	case "xlsx":
		return ReadXLSX(src.Path, src.Sheet, src.HeaderRow, columns)
	case "yaml", "yml":
		return ReadYAML(src.Path, columns)
	}
	return nil, fmt.Errorf("unsupported source type %q", src.Type)
}

func toRecords(rows []Row) []cell.Record {
	records := make([]cell.Record, len(rows))
	for i, r := range rows {
		records[i] = r
	}
	return records
}

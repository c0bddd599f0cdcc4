package source

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/csvexport/pkg/cell"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads records from a worksheet.
//
// PARAMETERS:
//   - path: The XLSX file.
//   - sheet: The worksheet name. Empty selects the first sheet.
//   - headerRow: The 1-based row holding column names. Data starts below it.
//   - columns: The output columns.
//
// Cells are read raw, so numbers keep full precision and dates arrive as
// Excel serial numbers unless they were entered as text. Empty rows are
// skipped.
func ReadXLSX(path, sheet string, headerRow int, columns []Column) ([]cell.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if headerRow < 1 {
		headerRow = 1
	}

	var header []string
	if len(rows) >= headerRow {
		header = rows[headerRow-1]
	}

	index, err := columnIndexes(header, columns)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	var out []Row
	for i := headerRow; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		rec, err := build(columns, i+1, path, func(n int, _ Column) string {
			if index[n] < len(row) {
				return row[index[n]]
			}
			return ""
		})
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return toRecords(out), nil
}

// columnIndexes finds the 0-based sheet column of every output column.
func columnIndexes(header []string, columns []Column) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	index := make([]int, len(columns))
	for i, col := range columns {
		if col.Letter != "" {
			n, err := excelize.ColumnNameToNumber(col.Letter)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", i+1, err)
			}
			index[i] = n - 1
			continue
		}

		n, ok := byName[col.Field]
		if !ok {
			return nil, fmt.Errorf("column %q not found in header row", col.Field)
		}
		index[i] = n
	}

	return index, nil
}

// isRowEmpty checks if all cells in a row are blank.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

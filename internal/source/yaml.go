package source

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/csvexport/pkg/cell"
	"gopkg.in/yaml.v3"
)

// ReadYAML reads records from a YAML list of mappings:
//
//	- name: A
//	  size: 1.79
//	  dob: 2020-01-28
//
// Scalars are read as text and parsed by their column. Missing keys and
// nulls are empty input.
func ReadYAML(path string, columns []Column) ([]cell.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var docs []map[string]string
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}

	out := make([]Row, 0, len(docs))
	for i, doc := range docs {
		rec, err := build(columns, i+1, path, func(_ int, c Column) string {
			return doc[c.Field]
		})
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return toRecords(out), nil
}

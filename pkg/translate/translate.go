// =============================================================================
// CSV Export - Title Translator
// =============================================================================
//
// Header titles may be translation keys. A key is either flat ("size") or
// section-qualified ("person.size"). Keys with more than one dot are not
// looked up. A key that does not resolve to a text leaf is printed as-is.
//
// TABLE FORMAT (YAML):
//   size: Taille
//   person:
//     name: Nom
//     birth: Date de naissance
//
// =============================================================================

package translate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Translator maps a header title to the text printed in the header line.
type Translator interface {
	Translate(title string) string
}

// Table is a nested translation document. Leaves are strings; sections are
// maps of further keys.
type Table map[string]any

// Translate implements Translator.
func (t Table) Translate(title string) string {
	return Resolve(title, t)
}

// Resolve looks title up in table and returns the translation, or title
// unchanged when there is none.
func Resolve(title string, table Table) string {
	if table == nil {
		return title
	}

	parts := strings.Split(title, ".")
	switch len(parts) {
	case 1:
		if text, ok := table[parts[0]].(string); ok {
			return text
		}
	case 2:
		if text, ok := lookup(table[parts[0]], parts[1]); ok {
			return text
		}
	}

	return title
}

// lookup reads key from a section decoded by yaml.v3, which may be keyed by
// string or, for mixed keys, by any.
func lookup(section any, key string) (string, bool) {
	switch s := section.(type) {
	case map[string]any:
		text, ok := s[key].(string)
		return text, ok
	case Table:
		text, ok := s[key].(string)
		return text, ok
	case map[any]any:
		text, ok := s[key].(string)
		return text, ok
	}
	return "", false
}

// Parse decodes a YAML translation document.
func Parse(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}
	if table == nil {
		table = Table{}
	}
	return table, nil
}

// Load reads and decodes the YAML translation file at path.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translations: %w", err)
	}
	return Parse(data)
}

package translate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	table := Table{
		"known": "X",
		"size":  "Taille",
		"count": 3,
		"person": map[string]any{
			"name":  "Nom",
			"inner": map[string]any{"deep": "Profond"},
		},
		"mixed": map[any]any{"key": "Clé"},
	}

	tests := []struct {
		name  string
		title string
		table Table
		want  string
	}{
		{"flatHit", "known", table, "X"},
		{"flatMiss", "unknown", table, "unknown"},
		{"sectionHit", "person.name", table, "Nom"},
		{"sectionMissingKey", "person.age", table, "person.age"},
		{"sectionMissing", "unknown.key", table, "unknown.key"},
		{"emptyTable", "unknown.key", Table{}, "unknown.key"},
		{"nilTable", "known", nil, "known"},
		{"nonTextLeaf", "count", table, "count"},
		{"sectionIsNotLeaf", "person", table, "person"},
		{"sectionIsLeaf", "known.x", table, "known.x"},
		{"threeSegments", "person.inner.deep", table, "person.inner.deep"},
		{"mixedKeySection", "mixed.key", table, "Clé"},
		{"emptyTitle", "", table, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Resolve(tt.title, tt.table); got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	table, err := Parse([]byte("size: Taille\nperson:\n  name: Nom\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := table.Translate("size"); got != "Taille" {
		t.Fatalf("size = %q", got)
	}
	if got := table.Translate("person.name"); got != "Nom" {
		t.Fatalf("person.name = %q", got)
	}

	empty, err := Parse(nil)
	if err != nil || empty == nil {
		t.Fatalf("Parse(nil) = %v, %v", empty, err)
	}

	if _, err := Parse([]byte("a: [unclosed")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fr.yaml")
	if err := os.WriteFile(path, []byte("columns:\n  dob: Date de naissance\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := Resolve("columns.dob", table); got != "Date de naissance" {
		t.Fatalf("columns.dob = %q", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package lang

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMapping_MissingFileIsEmpty(t *testing.T) {
	m, err := LoadMapping(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(m))
	}
}

func TestLoadMapping_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langs.yaml")
	content := `
Zig:
  type: programming
  extensions: [".zig"]
Justfile:
  type: build
  filenames: ["Justfile", "justfile"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMapping(path)
	if err != nil {
		t.Fatal(err)
	}
	if m["Zig"].Extensions[0] != ".zig" {
		t.Errorf("expected .zig extension, got %v", m["Zig"].Extensions)
	}
	if len(m["Justfile"].Filenames) != 2 {
		t.Errorf("expected 2 filenames, got %v", m["Justfile"].Filenames)
	}
}

func TestLoadMapping_MalformedIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not: [valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadMapping(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestMerge_CustomFieldsFallBackToBase(t *testing.T) {
	base := Mapping{
		"Python": {Type: "programming", Extensions: []string{".py"}},
	}
	custom := Mapping{
		"Python": {Extensions: []string{".py", ".pyi"}},
		"Zig":    {Type: "programming", Extensions: []string{".zig"}},
	}

	merged := base.Merge(custom)

	if merged["Python"].Type != "programming" {
		t.Errorf("empty custom type should keep base type, got %q", merged["Python"].Type)
	}
	if len(merged["Python"].Extensions) != 2 {
		t.Errorf("custom extensions should replace base, got %v", merged["Python"].Extensions)
	}
	if _, ok := merged["Zig"]; !ok {
		t.Error("new custom language should be added")
	}
}

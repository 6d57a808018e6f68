// Package lang provides language detection and line classification for
// source files, driven by a declarative language table.
package lang

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition describes one language in the mapping table.
type Definition struct {
	// Type is the coarse category: "programming", "markup", "data", ...
	Type string `yaml:"type"`

	// Extensions lists file extensions including the dot, e.g. ".py".
	Extensions []string `yaml:"extensions"`

	// Filenames lists exact file names detected regardless of extension,
	// e.g. "Makefile".
	Filenames []string `yaml:"filenames"`
}

// Mapping is a declarative language table keyed by language name.
type Mapping map[string]Definition

// LoadMapping reads a language table from a YAML file. A missing file is
// not an error and yields an empty mapping; a malformed file is fatal.
func LoadMapping(path string) (Mapping, error) {
	if path == "" {
		return Mapping{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Mapping{}, nil
		}
		return nil, fmt.Errorf("reading language map: %w", err)
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing language map %s: %w", path, err)
	}
	if m == nil {
		m = Mapping{}
	}
	return m, nil
}

// Merge overlays custom entries on top of the base mapping. Custom
// definitions replace base definitions of the same language name; fields
// left empty in the custom entry fall back to the base entry.
func (m Mapping) Merge(custom Mapping) Mapping {
	if len(custom) == 0 {
		return m
	}
	merged := make(Mapping, len(m)+len(custom))
	for name, def := range m {
		merged[name] = def
	}
	for name, def := range custom {
		base := merged[name]
		if def.Type == "" {
			def.Type = base.Type
		}
		if len(def.Extensions) == 0 {
			def.Extensions = base.Extensions
		}
		if len(def.Filenames) == 0 {
			def.Filenames = base.Filenames
		}
		merged[name] = def
	}
	return merged
}

// DefaultMapping returns the built-in language table.
func DefaultMapping() Mapping {
	return Mapping{
		"Python": {
			Type:       "programming",
			Extensions: []string{".py", ".pyi", ".pyw"},
		},
		"Go": {
			Type:       "programming",
			Extensions: []string{".go"},
		},
		"JavaScript": {
			Type:       "programming",
			Extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		},
		"TypeScript": {
			Type:       "programming",
			Extensions: []string{".ts", ".tsx", ".mts", ".cts"},
		},
		"Rust": {
			Type:       "programming",
			Extensions: []string{".rs"},
		},
		"Java": {
			Type:       "programming",
			Extensions: []string{".java"},
		},
		"C": {
			Type:       "programming",
			Extensions: []string{".c", ".h"},
		},
		"C++": {
			Type:       "programming",
			Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"},
		},
		"C#": {
			Type:       "programming",
			Extensions: []string{".cs"},
		},
		"Ruby": {
			Type:       "programming",
			Extensions: []string{".rb", ".rake"},
			Filenames:  []string{"Rakefile", "Gemfile"},
		},
		"PHP": {
			Type:       "programming",
			Extensions: []string{".php"},
		},
		"Shell": {
			Type:       "programming",
			Extensions: []string{".sh", ".bash", ".zsh"},
		},
		"SQL": {
			Type:       "programming",
			Extensions: []string{".sql"},
		},
		"Lua": {
			Type:       "programming",
			Extensions: []string{".lua"},
		},
		"Perl": {
			Type:       "programming",
			Extensions: []string{".pl", ".pm"},
		},
		"Haskell": {
			Type:       "programming",
			Extensions: []string{".hs"},
		},
		"Kotlin": {
			Type:       "programming",
			Extensions: []string{".kt", ".kts"},
		},
		"Swift": {
			Type:       "programming",
			Extensions: []string{".swift"},
		},
		"HTML": {
			Type:       "markup",
			Extensions: []string{".html", ".htm"},
		},
		"CSS": {
			Type:       "markup",
			Extensions: []string{".css", ".scss", ".sass", ".less"},
		},
		"Markdown": {
			Type:       "prose",
			Extensions: []string{".md", ".markdown"},
		},
		"reStructuredText": {
			Type:       "prose",
			Extensions: []string{".rst"},
		},
		"Text": {
			Type:       "prose",
			Extensions: []string{".txt"},
		},
		"JSON": {
			Type:       "data",
			Extensions: []string{".json"},
		},
		"YAML": {
			Type:       "data",
			Extensions: []string{".yaml", ".yml"},
		},
		"TOML": {
			Type:       "data",
			Extensions: []string{".toml"},
		},
		"XML": {
			Type:       "data",
			Extensions: []string{".xml"},
		},
		"INI": {
			Type:       "data",
			Extensions: []string{".ini", ".cfg"},
		},
		"CSV": {
			Type:       "data",
			Extensions: []string{".csv"},
		},
		"Makefile": {
			Type:       "programming",
			Extensions: []string{".mk"},
			Filenames:  []string{"Makefile", "makefile", "GNUmakefile"},
		},
		"CMake": {
			Type:       "programming",
			Extensions: []string{".cmake"},
			Filenames:  []string{"CMakeLists.txt"},
		},
		"Dockerfile": {
			Type:       "programming",
			Filenames:  []string{"Dockerfile", "Containerfile"},
		},
	}
}

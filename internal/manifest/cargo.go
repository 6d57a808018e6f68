package manifest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// CargoTomlReader reads Rust Cargo.toml files: the package name from
// [package] and dependencies from [dependencies], [dev-dependencies] and
// [build-dependencies].
type CargoTomlReader struct{}

type cargoToml struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// ReadProjectInfo parses the file. Malformed TOML is a hard error.
func (r *CargoTomlReader) ReadProjectInfo(path string) (*ProjectFileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc cargoToml
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var deps []Dependency
	deps = appendCargoSection(deps, doc.Dependencies, CategoryProd)
	deps = appendCargoSection(deps, doc.DevDependencies, CategoryDev)
	deps = appendCargoSection(deps, doc.BuildDependencies, CategoryDev)

	return &ProjectFileInfo{
		Name:         doc.Package.Name,
		Dependencies: buildDependencyInfo(deps, []string{"Cargo.toml"}),
		SourceFiles:  []string{"Cargo.toml"},
	}, nil
}

// appendCargoSection handles both dependency forms: `name = "1.0"` and
// `name = { version = "1.0", features = [...] }`.
func appendCargoSection(deps []Dependency, section map[string]any, category string) []Dependency {
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		version := "*"
		switch v := section[name].(type) {
		case string:
			version = v
		case map[string]any:
			if s, ok := v["version"].(string); ok {
				version = s
			}
		}
		deps = append(deps, Dependency{
			Name:       strings.ToLower(name),
			Version:    version,
			Category:   category,
			SourceFile: "Cargo.toml",
		})
	}
	return deps
}

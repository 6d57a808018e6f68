package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// PackageJSONReader reads Node.js package.json files, separating
// dependencies, devDependencies and optionalDependencies.
type PackageJSONReader struct{}

type packageJSON struct {
	Name                 string            `json:"name"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// ReadProjectInfo parses the file. Malformed JSON is a hard error.
func (r *PackageJSONReader) ReadProjectInfo(path string) (*ProjectFileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc packageJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var deps []Dependency
	deps = appendSorted(deps, doc.Dependencies, CategoryProd)
	deps = appendSorted(deps, doc.DevDependencies, CategoryDev)
	deps = appendSorted(deps, doc.OptionalDependencies, CategoryOptional)

	return &ProjectFileInfo{
		Name:         doc.Name,
		Dependencies: buildDependencyInfo(deps, []string{"package.json"}),
		SourceFiles:  []string{"package.json"},
	}, nil
}

// appendSorted adds one dependency section in name order so repeated reads
// of the same file produce identical results.
func appendSorted(deps []Dependency, section map[string]string, category string) []Dependency {
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		deps = append(deps, Dependency{
			Name:       strings.ToLower(name),
			Version:    section[name],
			Category:   category,
			SourceFile: "package.json",
		})
	}
	return deps
}

package manifest

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// PyProjectReader reads pyproject.toml: the project name from [project]
// and dependencies from [project.dependencies] and
// [project.optional-dependencies].
type PyProjectReader struct{}

type pyProject struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// pep508Name matches the package name and optional extras at the start of a
// PEP 508 requirement string.
var pep508Name = regexp.MustCompile(`^([a-zA-Z0-9._-]+)(\[[^\]]*\])?(.*)$`)

// ReadProjectInfo parses the file. Malformed TOML is a hard error.
func (r *PyProjectReader) ReadProjectInfo(path string) (*ProjectFileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc pyProject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var deps []Dependency
	for _, spec := range doc.Project.Dependencies {
		if d, ok := parseRequirement(spec, CategoryProd, "pyproject.toml"); ok {
			deps = append(deps, d)
		}
	}
	groups := make([]string, 0, len(doc.Project.OptionalDependencies))
	for name := range doc.Project.OptionalDependencies {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, name := range groups {
		for _, spec := range doc.Project.OptionalDependencies[name] {
			if d, ok := parseRequirement(spec, CategoryOptional, "pyproject.toml"); ok {
				deps = append(deps, d)
			}
		}
	}

	return &ProjectFileInfo{
		Name:         doc.Project.Name,
		Dependencies: buildDependencyInfo(deps, []string{"pyproject.toml"}),
		SourceFiles:  []string{"pyproject.toml"},
	}, nil
}

// parseRequirement splits a PEP 508 requirement into name and version
// specification. Environment markers after ";" and extras in brackets are
// discarded.
func parseRequirement(spec, category, source string) (Dependency, bool) {
	if i := strings.Index(spec, ";"); i >= 0 {
		spec = spec[:i]
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Dependency{}, false
	}

	m := pep508Name.FindStringSubmatch(spec)
	if m == nil {
		return Dependency{}, false
	}

	version := strings.TrimSpace(m[3])
	if version == "" {
		version = "*"
	}

	return Dependency{
		Name:       strings.ToLower(m[1]),
		Version:    version,
		Category:   category,
		SourceFile: source,
	}, true
}

// Package manifest extracts project metadata and dependency declarations
// from well-known manifest files: pyproject.toml, package.json, Cargo.toml
// and requirements.txt.
package manifest

// Dependency categories.
const (
	CategoryProd     = "prod"
	CategoryDev      = "dev"
	CategoryOptional = "optional"
)

// Dependency is a single declared dependency.
type Dependency struct {
	// Name is the package name, lowercased for stable comparisons.
	Name string `json:"name"`

	// Version is the raw version specification, "*" when unconstrained.
	Version string `json:"version"`

	// Category is one of prod, dev or optional.
	Category string `json:"category"`

	// SourceFile names the manifest that declared the dependency.
	SourceFile string `json:"source_file"`
}

// DependencyInfo aggregates all dependencies found for a project.
type DependencyInfo struct {
	Dependencies  []Dependency `json:"dependencies"`
	ProdCount     int          `json:"prod_count"`
	DevCount      int          `json:"dev_count"`
	OptionalCount int          `json:"optional_count"`
	TotalCount    int          `json:"total_count"`
	Sources       []string     `json:"sources"`

	// Conflicts describes version mismatches for the same package across
	// manifests.
	Conflicts []string `json:"conflicts,omitempty"`
}

// ProjectFileInfo is the result of reading one or more manifests.
type ProjectFileInfo struct {
	// Name is the declared project name, empty when no manifest carries one.
	Name string `json:"name,omitempty"`

	Dependencies *DependencyInfo `json:"dependencies,omitempty"`

	// SourceFiles lists the manifests that contributed to this record.
	SourceFiles []string `json:"source_files"`
}

// WithoutDev returns a copy of info with development dependencies removed,
// or nil when nothing remains.
func (i *DependencyInfo) WithoutDev() *DependencyInfo {
	if i == nil {
		return nil
	}
	var kept []Dependency
	for _, d := range i.Dependencies {
		if d.Category != CategoryDev {
			kept = append(kept, d)
		}
	}
	out := buildDependencyInfo(kept, i.Sources)
	if out != nil {
		out.Conflicts = findConflicts(kept)
	}
	return out
}

// buildDependencyInfo derives the category counts for a dependency list.
func buildDependencyInfo(deps []Dependency, sources []string) *DependencyInfo {
	if len(deps) == 0 {
		return nil
	}
	info := &DependencyInfo{
		Dependencies: deps,
		TotalCount:   len(deps),
		Sources:      sources,
	}
	for _, d := range deps {
		switch d.Category {
		case CategoryProd:
			info.ProdCount++
		case CategoryDev:
			info.DevCount++
		case CategoryOptional:
			info.OptionalCount++
		}
	}
	return info
}

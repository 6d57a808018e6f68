package manifest

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// RequirementsReader reads pip requirements.txt files. Every requirement is
// treated as a production dependency; there is no name metadata in the format.
type RequirementsReader struct{}

var versionOperators = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

func (r *RequirementsReader) ReadProjectInfo(path string) (*ProjectFileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := filepath.Base(path)
	var deps []Dependency

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Options like "-r other.txt" or "--index-url" are not dependencies.
		if strings.HasPrefix(line, "-") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		deps = append(deps, Dependency{
			Name:       name,
			Version:    version,
			Category:   CategoryProd,
			SourceFile: base,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return &ProjectFileInfo{
		Dependencies: buildDependencyInfo(deps, []string{base}),
		SourceFiles:  []string{base},
	}, nil
}

// splitRequirement separates "requests[socks]>=2.0,<3" into a lowercased
// name and its version constraint. Environment markers after ";" are dropped.
func splitRequirement(line string) (name, version string) {
	if i := strings.Index(line, ";"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	opIdx := -1
	for _, op := range versionOperators {
		if i := strings.Index(line, op); i >= 0 && (opIdx < 0 || i < opIdx) {
			opIdx = i
		}
	}

	version = "*"
	name = line
	if opIdx >= 0 {
		name = strings.TrimSpace(line[:opIdx])
		version = strings.TrimSpace(line[opIdx:])
	}
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.TrimSpace(name)), version
}

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Collect reads every supported manifest in dir and merges the results.
// Manifests are parsed concurrently; a manifest that fails to parse is
// logged and skipped rather than aborting the whole collection. Returns
// nil when the directory holds no recognized manifest.
func Collect(dir string, log zerolog.Logger) (*ProjectFileInfo, error) {
	var found []string
	for _, name := range SupportedFiles {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}

	results := make([]*ProjectFileInfo, len(found))
	var mu sync.Mutex

	var g errgroup.Group
	for i, p := range found {
		g.Go(func() error {
			info, err := ReaderFor(p).ReadProjectInfo(p)
			if err != nil {
				log.Warn().Err(err).Str("manifest", p).Msg("skipping unreadable manifest")
				return nil
			}
			mu.Lock()
			results[i] = info
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeProjectInfo(results), nil
}

// mergeProjectInfo folds per-manifest results into one record. The first
// manifest declaring a name wins, matching the SupportedFiles order.
func mergeProjectInfo(results []*ProjectFileInfo) *ProjectFileInfo {
	merged := &ProjectFileInfo{}
	var deps []Dependency
	var sources []string

	for _, r := range results {
		if r == nil {
			continue
		}
		if merged.Name == "" && r.Name != "" {
			merged.Name = r.Name
		}
		merged.SourceFiles = append(merged.SourceFiles, r.SourceFiles...)
		if r.Dependencies != nil {
			deps = append(deps, r.Dependencies.Dependencies...)
			sources = append(sources, r.Dependencies.Sources...)
		}
	}
	if len(merged.SourceFiles) == 0 {
		return nil
	}

	merged.Dependencies = buildDependencyInfo(deps, sources)
	if merged.Dependencies != nil {
		merged.Dependencies.Conflicts = findConflicts(deps)
	}
	return merged
}

// findConflicts reports packages declared with differing versions across
// manifests. Unconstrained "*" declarations never conflict.
func findConflicts(deps []Dependency) []string {
	versions := make(map[string]map[string][]string)
	for _, d := range deps {
		if d.Version == "*" {
			continue
		}
		if versions[d.Name] == nil {
			versions[d.Name] = make(map[string][]string)
		}
		versions[d.Name][d.Version] = append(versions[d.Name][d.Version], d.SourceFile)
	}

	var conflicts []string
	for name, byVersion := range versions {
		if len(byVersion) < 2 {
			continue
		}
		specs := make([]string, 0, len(byVersion))
		for version, files := range byVersion {
			sort.Strings(files)
			specs = append(specs, fmt.Sprintf("%s (%s)", version, files[0]))
		}
		sort.Strings(specs)
		conflicts = append(conflicts, fmt.Sprintf("%s: %s", name, joinSpecs(specs)))
	}
	sort.Strings(conflicts)
	return conflicts
}

func joinSpecs(specs []string) string {
	out := specs[0]
	for _, s := range specs[1:] {
		out += " vs " + s
	}
	return out
}

package scanner

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// parseGitignore extracts glob patterns from the .gitignore at the scan
// root. A missing file yields no patterns. Negation and nested .gitignore
// files are not supported; the patterns feed the same matcher as explicit
// ignore globs.
func parseGitignore(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSuffix(line, "/")
		line = strings.TrimPrefix(line, "/")
		patterns = append(patterns, line)
	}
	return patterns
}

// matchesAny reports whether the slash-separated relative path matches any
// ignore pattern. Patterns are matched against the base name and against
// the full relative path, so both "*.log" and "build/cache" style globs
// work. Directory matches are applied at descent time, which covers
// ancestor directories implicitly.
func matchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		if ok, err := path.Match(p, base); err == nil && ok {
			return true
		}
		if ok, err := path.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

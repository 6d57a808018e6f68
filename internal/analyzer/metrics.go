// Package analyzer turns a scan snapshot into aggregated code metrics:
// line counts per class, language and category.
package analyzer

import (
	"time"

	"github.com/HermanKarlsson/statsvy-sub001/internal/manifest"
)

// Metrics is the immutable aggregate of one analyzed scan.
type Metrics struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`

	TotalFiles     int   `json:"total_files"`
	TotalSizeBytes int64 `json:"total_size_bytes"`
	TotalSizeKB    int64 `json:"total_size_kb"`
	TotalSizeMB    int64 `json:"total_size_mb"`

	TotalLines   int `json:"total_lines"`
	CommentLines int `json:"comment_lines"`
	BlankLines   int `json:"blank_lines"`

	// Per-language totals. Languages with zero lines are omitted.
	LinesByLang        map[string]int `json:"lines_by_lang,omitempty"`
	CommentLinesByLang map[string]int `json:"comment_lines_by_lang,omitempty"`
	BlankLinesByLang   map[string]int `json:"blank_lines_by_lang,omitempty"`

	// LinesByCategory sums LinesByLang entries per coarse category.
	LinesByCategory map[string]int `json:"lines_by_category,omitempty"`

	// Dependencies is populated by the orchestration layer from manifest
	// readers, never by the Analyzer itself.
	Dependencies *manifest.DependencyInfo `json:"dependencies,omitempty"`
}

// CodeLines returns the implicit code-line count.
func (m *Metrics) CodeLines() int {
	return m.TotalLines - m.CommentLines - m.BlankLines
}

// WithDependencies returns a copy with dependency info attached, leaving
// the receiver untouched.
func (m *Metrics) WithDependencies(info *manifest.DependencyInfo) *Metrics {
	out := *m
	out.Dependencies = info
	return &out
}

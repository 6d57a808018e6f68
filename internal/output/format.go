package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HermanKarlsson/statsvy-sub001/internal/analyzer"
	"github.com/HermanKarlsson/statsvy-sub001/internal/gitstats"
	"github.com/HermanKarlsson/statsvy-sub001/internal/perf"
)

// Report bundles everything a formatter may render: the analyzed metrics
// plus scan-level findings that live outside the Metrics aggregate.
type Report struct {
	Metrics *analyzer.Metrics `json:"metrics"`

	Duplicates []string       `json:"duplicates,omitempty"`
	LargeFiles []LargeFile    `json:"large_files,omitempty"`
	Git        *gitstats.Stats `json:"git,omitempty"`
	Perf       *perf.Metrics  `json:"performance,omitempty"`
}

// LargeFile is a file above the configured large-file threshold.
type LargeFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// Options tunes formatter rendering.
type Options struct {
	// TruncatePaths shortens long paths to their trailing segments.
	TruncatePaths bool

	// ShowPercentages adds per-language percentage columns.
	ShowPercentages bool

	// ShowDepsList renders the full dependency list instead of counts only.
	ShowDepsList bool
}

// Formatter renders a report in one output format.
type Formatter interface {
	Format(r *Report) (string, error)
}

// Names of the supported formats.
var Formats = []string{"table", "json", "markdown", "html", "summary"}

// FormatterFor returns the formatter registered under name.
func FormatterFor(name string, opts Options) (Formatter, error) {
	switch name {
	case "table":
		return &TableFormatter{opts: opts}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{opts: opts}, nil
	case "html":
		return &HTMLFormatter{opts: opts}, nil
	case "summary":
		return &SummaryFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (supported: %s)", name, strings.Join(Formats, ", "))
}

// sortedLanguages returns the report's languages ordered by line count
// descending, ties broken alphabetically.
func sortedLanguages(m *analyzer.Metrics) []string {
	langs := make([]string, 0, len(m.LinesByLang))
	for l := range m.LinesByLang {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if m.LinesByLang[langs[i]] != m.LinesByLang[langs[j]] {
			return m.LinesByLang[langs[i]] > m.LinesByLang[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}

// percent formats part/total as a percentage string.
func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// truncatePath keeps the last three path segments of long paths.
func truncatePath(path string, enabled bool) string {
	if !enabled {
		return path
	}
	parts := strings.Split(path, "/")
	if len(parts) <= 3 {
		return path
	}
	return "…/" + strings.Join(parts[len(parts)-3:], "/")
}

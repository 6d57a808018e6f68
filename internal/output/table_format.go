package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// TableFormatter renders a styled terminal report.
type TableFormatter struct {
	opts Options
}

func (f *TableFormatter) Format(r *Report) (string, error) {
	m := r.Metrics
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render(fmt.Sprintf("Project: %s", m.Name)))
	sb.WriteString("\n")
	sb.WriteString(StyleMuted.Render(truncatePath(m.Path, f.opts.TruncatePaths)))
	sb.WriteString("\n\n")

	writeMetric := func(label, value string) {
		sb.WriteString(StyleLabel.Render(label))
		sb.WriteString(StyleBold.Render(value))
		sb.WriteString("\n")
	}
	writeMetric("Files", humanize.Comma(int64(m.TotalFiles)))
	writeMetric("Total size", humanize.Bytes(uint64(m.TotalSizeBytes)))
	writeMetric("Total lines", humanize.Comma(int64(m.TotalLines)))
	writeMetric("Code lines", humanize.Comma(int64(m.CodeLines())))
	writeMetric("Comment lines", humanize.Comma(int64(m.CommentLines)))
	writeMetric("Blank lines", humanize.Comma(int64(m.BlankLines)))

	if len(m.LinesByLang) > 0 {
		sb.WriteString("\n")
		sb.WriteString(StyleHeader.Render("Languages"))
		sb.WriteString("\n")

		headers := []string{"Language", "Lines", "Comments", "Blanks"}
		if f.opts.ShowPercentages {
			headers = append(headers, "%")
		}
		tbl := NewTable(headers...).AlignRight(1, 2, 3, 4)
		for _, lang := range sortedLanguages(m) {
			row := []string{
				lang,
				humanize.Comma(int64(m.LinesByLang[lang])),
				humanize.Comma(int64(m.CommentLinesByLang[lang])),
				humanize.Comma(int64(m.BlankLinesByLang[lang])),
			}
			if f.opts.ShowPercentages {
				row = append(row, percent(m.LinesByLang[lang], m.TotalLines))
			}
			tbl.AddRow(row...)
		}
		sb.WriteString(tbl.Render())
	}

	if len(m.LinesByCategory) > 0 {
		sb.WriteString("\n")
		sb.WriteString(StyleHeader.Render("Categories"))
		sb.WriteString("\n")
		tbl := NewTable("Category", "Lines").AlignRight(1)
		for _, cat := range sortedKeys(m.LinesByCategory) {
			tbl.AddRow(cat, humanize.Comma(int64(m.LinesByCategory[cat])))
		}
		sb.WriteString(tbl.Render())
	}

	if len(r.Duplicates) > 0 {
		sb.WriteString("\n")
		sb.WriteString(StyleWarning.Render(fmt.Sprintf("Duplicate files (%d)", len(r.Duplicates))))
		sb.WriteString("\n")
		for _, d := range r.Duplicates {
			sb.WriteString("  " + truncatePath(d, f.opts.TruncatePaths) + "\n")
		}
	}

	if len(r.LargeFiles) > 0 {
		sb.WriteString("\n")
		sb.WriteString(StyleWarning.Render(fmt.Sprintf("Large files (%d)", len(r.LargeFiles))))
		sb.WriteString("\n")
		for _, lf := range r.LargeFiles {
			sb.WriteString(fmt.Sprintf("  %s  %s\n",
				truncatePath(lf.Path, f.opts.TruncatePaths),
				humanize.Bytes(uint64(lf.SizeBytes))))
		}
	}

	if deps := m.Dependencies; deps != nil {
		sb.WriteString("\n")
		sb.WriteString(StyleHeader.Render("Dependencies"))
		sb.WriteString("\n")
		writeMetric("Production", strconv.Itoa(deps.ProdCount))
		writeMetric("Development", strconv.Itoa(deps.DevCount))
		writeMetric("Optional", strconv.Itoa(deps.OptionalCount))
		if f.opts.ShowDepsList {
			tbl := NewTable("Name", "Version", "Category", "Source")
			for _, d := range deps.Dependencies {
				tbl.AddRow(d.Name, d.Version, d.Category, d.SourceFile)
			}
			sb.WriteString(tbl.Render())
		}
		for _, c := range deps.Conflicts {
			sb.WriteString(StyleError.Render("  conflict: " + c))
			sb.WriteString("\n")
		}
	}

	if g := r.Git; g != nil {
		sb.WriteString("\n")
		sb.WriteString(StyleHeader.Render("Git"))
		sb.WriteString("\n")
		writeMetric("Branch", g.Branch)
		writeMetric("Commits", humanize.Comma(int64(g.CommitCount)))
		writeMetric("Contributors", strconv.Itoa(g.Contributors))
		writeMetric("Last 30 days", strconv.Itoa(g.RecentCommits))
		if !g.LastCommit.IsZero() {
			writeMetric("Last commit", humanize.Time(g.LastCommit))
		}
	}

	if p := r.Perf; p != nil {
		sb.WriteString("\n")
		sb.WriteString(StyleHeader.Render("Performance"))
		sb.WriteString("\n")
		writeMetric("Wall time", p.WallTime.Round(time.Millisecond).String())
		if p.PeakMemoryBytes > 0 {
			writeMetric("Peak memory", humanize.Bytes(p.PeakMemoryBytes))
		}
		if p.FilesRead > 0 {
			writeMetric("Files read", humanize.Comma(int64(p.FilesRead)))
			writeMetric("Bytes read", humanize.Bytes(uint64(p.TotalBytesRead)))
			writeMetric("IO time", p.TotalIOTime.Round(time.Millisecond).String())
		}
	}

	return sb.String(), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

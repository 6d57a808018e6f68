package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// MarkdownFormatter renders a GitHub-flavored markdown report.
type MarkdownFormatter struct {
	opts Options
}

func (f *MarkdownFormatter) Format(r *Report) (string, error) {
	m := r.Metrics
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", m.Name)
	fmt.Fprintf(&sb, "`%s` scanned %s\n\n", m.Path, m.Timestamp.Format("2006-01-02 15:04:05"))

	sb.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&sb, "| Files | %s |\n", humanize.Comma(int64(m.TotalFiles)))
	fmt.Fprintf(&sb, "| Total size | %s |\n", humanize.Bytes(uint64(m.TotalSizeBytes)))
	fmt.Fprintf(&sb, "| Total lines | %s |\n", humanize.Comma(int64(m.TotalLines)))
	fmt.Fprintf(&sb, "| Code lines | %s |\n", humanize.Comma(int64(m.CodeLines())))
	fmt.Fprintf(&sb, "| Comment lines | %s |\n", humanize.Comma(int64(m.CommentLines)))
	fmt.Fprintf(&sb, "| Blank lines | %s |\n", humanize.Comma(int64(m.BlankLines)))

	if len(m.LinesByLang) > 0 {
		sb.WriteString("\n## Languages\n\n")
		if f.opts.ShowPercentages {
			sb.WriteString("| Language | Lines | Comments | Blanks | % |\n|---|---:|---:|---:|---:|\n")
		} else {
			sb.WriteString("| Language | Lines | Comments | Blanks |\n|---|---:|---:|---:|\n")
		}
		for _, lang := range sortedLanguages(m) {
			fmt.Fprintf(&sb, "| %s | %d | %d | %d |",
				lang, m.LinesByLang[lang], m.CommentLinesByLang[lang], m.BlankLinesByLang[lang])
			if f.opts.ShowPercentages {
				fmt.Fprintf(&sb, " %s |", percent(m.LinesByLang[lang], m.TotalLines))
			}
			sb.WriteString("\n")
		}
	}

	if len(r.Duplicates) > 0 {
		fmt.Fprintf(&sb, "\n## Duplicate files (%d)\n\n", len(r.Duplicates))
		for _, d := range r.Duplicates {
			fmt.Fprintf(&sb, "- `%s`\n", d)
		}
	}

	if deps := m.Dependencies; deps != nil {
		sb.WriteString("\n## Dependencies\n\n")
		fmt.Fprintf(&sb, "%d total (%d prod, %d dev, %d optional)\n",
			deps.TotalCount, deps.ProdCount, deps.DevCount, deps.OptionalCount)
		if f.opts.ShowDepsList {
			sb.WriteString("\n| Name | Version | Category |\n|---|---|---|\n")
			for _, d := range deps.Dependencies {
				fmt.Fprintf(&sb, "| %s | %s | %s |\n", d.Name, d.Version, d.Category)
			}
		}
	}

	if g := r.Git; g != nil {
		sb.WriteString("\n## Git\n\n")
		fmt.Fprintf(&sb, "- Branch: %s\n- Commits: %d\n- Contributors: %d\n- Commits last 30 days: %d\n",
			g.Branch, g.CommitCount, g.Contributors, g.RecentCommits)
	}

	return sb.String(), nil
}

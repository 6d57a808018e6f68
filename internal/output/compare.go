package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/HermanKarlsson/statsvy-sub001/internal/analyzer"
)

// overallOrder fixes the display order of overall delta rows.
var overallOrder = []struct {
	key   string
	label string
}{
	{"total_files", "Files"},
	{"total_lines", "Total lines"},
	{"comment_lines", "Comment lines"},
	{"blank_lines", "Blank lines"},
	{"total_size_bytes", "Size (bytes)"},
}

// RenderComparison renders the delta between two snapshots. Rows with a
// zero delta are hidden unless showUnchanged is set.
func RenderComparison(res *analyzer.ComparisonResult, showUnchanged bool) string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render(fmt.Sprintf("%s → %s", res.First.Name, res.Second.Name)))
	sb.WriteString("\n")
	sb.WriteString(StyleMuted.Render(fmt.Sprintf("%s vs %s", res.First.Path, res.Second.Path)))
	sb.WriteString("\n\n")

	for _, row := range overallOrder {
		delta, ok := res.Overall[row.key]
		if !ok || (delta == 0 && !showUnchanged) {
			continue
		}
		sb.WriteString(StyleLabel.Render(row.label))
		sb.WriteString(renderDelta(delta))
		sb.WriteString("\n")
	}

	if len(res.ByLanguage) > 0 {
		langs := make([]string, 0, len(res.ByLanguage))
		for l := range res.ByLanguage {
			langs = append(langs, l)
		}
		sort.Strings(langs)

		sb.WriteString("\n")
		sb.WriteString(StyleHeader.Render("Languages"))
		sb.WriteString("\n")
		tbl := NewTable("Language", "Lines", "Comments", "Blanks").AlignRight(1, 2, 3)
		for _, lang := range langs {
			d := res.ByLanguage[lang]
			if !showUnchanged && isZeroDelta(d) {
				continue
			}
			tbl.AddRow(lang, deltaCell(d.Lines), deltaCell(d.Comments), deltaCell(d.Blanks))
		}
		sb.WriteString(tbl.Render())
	}

	return sb.String()
}

// renderDelta formats a signed delta with trend coloring.
func renderDelta(d int64) string {
	s := humanize.Comma(d)
	if d > 0 {
		return StyleSuccess.Render("+" + s)
	}
	if d < 0 {
		return StyleError.Render(s)
	}
	return StyleMuted.Render("0")
}

// deltaCell formats an optional delta, "n/a" when the language exists in
// only one snapshot.
func deltaCell(d *int64) string {
	if d == nil {
		return "n/a"
	}
	if *d > 0 {
		return "+" + humanize.Comma(*d)
	}
	return humanize.Comma(*d)
}

func isZeroDelta(d analyzer.LanguageDelta) bool {
	zero := func(p *int64) bool { return p != nil && *p == 0 }
	return zero(d.Lines) && zero(d.Comments) && zero(d.Blanks)
}

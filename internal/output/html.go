package output

import (
	"html/template"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/HermanKarlsson/statsvy-sub001/internal/analyzer"
)

// HTMLFormatter renders a standalone HTML report.
type HTMLFormatter struct {
	opts Options
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}} - statsvy report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 2px solid #64b5f6; padding-bottom: 0.2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
td.num, th.num { text-align: right; }
.muted { color: #888; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p class="muted">{{.Path}} ({{.When}})</p>
<table>
<tr><th>Metric</th><th class="num">Value</th></tr>
<tr><td>Files</td><td class="num">{{.Files}}</td></tr>
<tr><td>Total size</td><td class="num">{{.Size}}</td></tr>
<tr><td>Total lines</td><td class="num">{{.TotalLines}}</td></tr>
<tr><td>Code lines</td><td class="num">{{.CodeLines}}</td></tr>
<tr><td>Comment lines</td><td class="num">{{.CommentLines}}</td></tr>
<tr><td>Blank lines</td><td class="num">{{.BlankLines}}</td></tr>
</table>
{{if .Languages}}
<h2>Languages</h2>
<table>
<tr><th>Language</th><th class="num">Lines</th><th class="num">Comments</th><th class="num">Blanks</th>{{if .ShowPct}}<th class="num">%</th>{{end}}</tr>
{{range .Languages}}<tr><td>{{.Name}}</td><td class="num">{{.Lines}}</td><td class="num">{{.Comments}}</td><td class="num">{{.Blanks}}</td>{{if $.ShowPct}}<td class="num">{{.Pct}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
{{if .Duplicates}}
<h2>Duplicate files ({{len .Duplicates}})</h2>
<ul>{{range .Duplicates}}<li><code>{{.}}</code></li>{{end}}</ul>
{{end}}
</body>
</html>
`))

type htmlLang struct {
	Name     string
	Lines    int
	Comments int
	Blanks   int
	Pct      string
}

type htmlData struct {
	Name, Path, When             string
	Files, Size                  string
	TotalLines, CodeLines        string
	CommentLines, BlankLines     string
	Languages                    []htmlLang
	Duplicates                   []string
	ShowPct                      bool
}

func (f *HTMLFormatter) Format(r *Report) (string, error) {
	m := r.Metrics
	data := htmlData{
		Name:         m.Name,
		Path:         m.Path,
		When:         m.Timestamp.Format("2006-01-02 15:04:05"),
		Files:        humanize.Comma(int64(m.TotalFiles)),
		Size:         humanize.Bytes(uint64(m.TotalSizeBytes)),
		TotalLines:   humanize.Comma(int64(m.TotalLines)),
		CodeLines:    humanize.Comma(int64(m.CodeLines())),
		CommentLines: humanize.Comma(int64(m.CommentLines)),
		BlankLines:   humanize.Comma(int64(m.BlankLines)),
		Languages:    htmlLanguages(m),
		Duplicates:   r.Duplicates,
		ShowPct:      f.opts.ShowPercentages,
	}

	var sb strings.Builder
	if err := htmlReport.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func htmlLanguages(m *analyzer.Metrics) []htmlLang {
	var out []htmlLang
	for _, lang := range sortedLanguages(m) {
		out = append(out, htmlLang{
			Name:     lang,
			Lines:    m.LinesByLang[lang],
			Comments: m.CommentLinesByLang[lang],
			Blanks:   m.BlankLinesByLang[lang],
			Pct:      percent(m.LinesByLang[lang], m.TotalLines),
		})
	}
	return out
}

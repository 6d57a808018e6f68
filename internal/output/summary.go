package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// SummaryFormatter renders a single-line digest, suited for shell
// pipelines and status bars.
type SummaryFormatter struct{}

func (f *SummaryFormatter) Format(r *Report) (string, error) {
	m := r.Metrics
	line := fmt.Sprintf("%s: %s files, %s lines (%s code, %s comments, %s blank), %s",
		m.Name,
		humanize.Comma(int64(m.TotalFiles)),
		humanize.Comma(int64(m.TotalLines)),
		humanize.Comma(int64(m.CodeLines())),
		humanize.Comma(int64(m.CommentLines)),
		humanize.Comma(int64(m.BlankLines)),
		humanize.Bytes(uint64(m.TotalSizeBytes)))
	if n := len(r.Duplicates); n > 0 {
		line += fmt.Sprintf(", %d duplicates", n)
	}
	return line + "\n", nil
}

package lang

import "strings"

// LineCounts is the per-file result of line classification.
type LineCounts struct {
	Total    int
	Comments int
	Blanks   int
}

// Code returns the number of lines that are neither comment nor blank.
func (c LineCounts) Code() int {
	return c.Total - c.Comments - c.Blanks
}

// CountOptions controls which classes are counted. Disabled classes report
// zero while Total is unaffected.
type CountOptions struct {
	Comments   bool
	Blanks     bool
	Docstrings bool
}

// commentSyntax describes the comment tokens of one language.
type commentSyntax struct {
	// line lists prefixes that start a single-line comment.
	line []string

	// blocks lists open/close marker pairs for multi-line comments.
	blocks [][2]string

	// docBlocks lists marker pairs only honored when Docstrings is set.
	docBlocks [][2]string
}

var cSyntax = commentSyntax{
	line:   []string{"//"},
	blocks: [][2]string{{"/*", "*/"}},
}

var hashSyntax = commentSyntax{line: []string{"#"}}

var syntaxByLang = map[string]commentSyntax{
	"Python": {
		line:      []string{"#"},
		docBlocks: [][2]string{{`"""`, `"""`}, {"'''", "'''"}},
	},
	"Go":         cSyntax,
	"JavaScript": cSyntax,
	"TypeScript": cSyntax,
	"Rust":       cSyntax,
	"Java":       cSyntax,
	"C":          cSyntax,
	"C++":        cSyntax,
	"C#":         cSyntax,
	"Kotlin":     cSyntax,
	"Swift":      cSyntax,
	"PHP":        {line: []string{"//", "#"}, blocks: [][2]string{{"/*", "*/"}}},
	"Ruby":       {line: []string{"#"}, blocks: [][2]string{{"=begin", "=end"}}},
	"Shell":      hashSyntax,
	"Perl":       hashSyntax,
	"YAML":       hashSyntax,
	"TOML":       hashSyntax,
	"Makefile":   hashSyntax,
	"CMake":      hashSyntax,
	"Dockerfile": hashSyntax,
	"INI":        {line: []string{";", "#"}},
	"SQL":        {line: []string{"--"}, blocks: [][2]string{{"/*", "*/"}}},
	"Lua":        {line: []string{"--"}, blocks: [][2]string{{"--[[", "]]"}}},
	"Haskell":    {line: []string{"--"}, blocks: [][2]string{{"{-", "-}"}}},
	"HTML":       {blocks: [][2]string{{"<!--", "-->"}}},
	"XML":        {blocks: [][2]string{{"<!--", "-->"}}},
	"CSS":        {blocks: [][2]string{{"/*", "*/"}}},

	// Prose and data formats have no comment concept: every non-blank line
	// is content. Without these entries they would inherit the fallback
	// and count markdown headings as comments.
	"Markdown":         {},
	"reStructuredText": {},
	"Text":             {},
	"JSON":             {},
	"CSV":              {},
}

// fallbackSyntax is used for languages with no table entry at all,
// including "unknown": the two most common line-comment prefixes. No
// block handling.
var fallbackSyntax = commentSyntax{line: []string{"#", "//"}}

// CountLines classifies every line of text as blank, comment or code using
// the comment syntax of the given language. Each line lands in exactly one
// class; whitespace-only lines are blank even inside block comments, so
// Total always equals Comments + Blanks + Code.
func CountLines(language, text string, opts CountOptions) LineCounts {
	lines := SplitLines(text)
	counts := LineCounts{Total: len(lines)}
	if len(lines) == 0 {
		return counts
	}

	syntax, ok := syntaxByLang[language]
	if !ok {
		syntax = fallbackSyntax
	}
	blocks := syntax.blocks
	if opts.Docstrings {
		blocks = append(blocks, syntax.docBlocks...)
	}

	inBlock := false
	var closeMarker string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			if opts.Blanks {
				counts.Blanks++
			}
			continue
		}

		if inBlock {
			if opts.Comments {
				counts.Comments++
			}
			if strings.Contains(trimmed, closeMarker) {
				inBlock = false
			}
			continue
		}

		if hasLineComment(trimmed, syntax.line) {
			if opts.Comments {
				counts.Comments++
			}
			continue
		}

		if open, closer, ok := hasBlockOpen(trimmed, blocks); ok {
			if opts.Comments {
				counts.Comments++
			}
			// A block that closes on its opening line does not span.
			rest := trimmed[len(open):]
			if !strings.Contains(rest, closer) {
				inBlock = true
				closeMarker = closer
			}
			continue
		}
	}

	return counts
}

func hasLineComment(trimmed string, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}

func hasBlockOpen(trimmed string, blocks [][2]string) (open, closer string, ok bool) {
	for _, b := range blocks {
		if strings.HasPrefix(trimmed, b[0]) {
			return b[0], b[1], true
		}
	}
	return "", "", false
}

// SplitLines splits text into lines without a trailing phantom line for a
// final newline, matching how editors count lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

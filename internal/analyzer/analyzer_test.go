package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HermanKarlsson/statsvy-sub001/internal/config"
	"github.com/HermanKarlsson/statsvy-sub001/internal/lang"
	"github.com/HermanKarlsson/statsvy-sub001/internal/scanner"
)

func testConfig() *config.Config {
	return &config.Config{
		Scan: config.Scan{
			MaxFileSizeMB: 100,
		},
		Files: config.Files{
			DuplicateThresholdBytes: 1,
		},
		Language: config.Language{
			CountComments:   true,
			CountBlankLines: true,
			CountDocstrings: true,
		},
	}
}

func newTestAnalyzer(cfg *config.Config) *Analyzer {
	return New("test", "/tmp/test", lang.NewDetector(lang.DefaultMapping()), cfg, nil, zerolog.Nop())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func scanDir(t *testing.T, root string, cfg *config.Config) *scanner.Result {
	t.Helper()
	s, err := scanner.New(root, cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Scan(nil)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestAnalyze_EmptyScanYieldsZeroMetrics(t *testing.T) {
	cfg := testConfig()
	res := scanDir(t, t.TempDir(), cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalLines != 0 || m.TotalFiles != 0 {
		t.Errorf("expected zero metrics, got %d lines / %d files", m.TotalLines, m.TotalFiles)
	}
	if m.LinesByLang == nil || len(m.LinesByLang) != 0 {
		t.Errorf("expected empty non-nil language map, got %v", m.LinesByLang)
	}
}

func TestAnalyze_CountsPerLanguage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "# header\n\nprint('hi')\n")
	writeFile(t, root, "b.txt", "one line\ntwo line\n")

	cfg := testConfig()
	res := scanDir(t, root, cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}

	if m.LinesByLang["Python"] != 3 {
		t.Errorf("expected 3 Python lines, got %d", m.LinesByLang["Python"])
	}
	if m.LinesByLang["Text"] != 2 {
		t.Errorf("expected 2 Text lines, got %d", m.LinesByLang["Text"])
	}
	if m.CommentLinesByLang["Python"] != 1 {
		t.Errorf("expected 1 Python comment, got %d", m.CommentLinesByLang["Python"])
	}
	if m.BlankLinesByLang["Python"] != 1 {
		t.Errorf("expected 1 Python blank, got %d", m.BlankLinesByLang["Python"])
	}
	if m.TotalLines != 5 {
		t.Errorf("expected 5 total lines, got %d", m.TotalLines)
	}
}

func TestAnalyze_LineClassConservation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\n// doc\nfunc main() {}\n")
	writeFile(t, root, "util.py", "x = 1\n")
	writeFile(t, root, "notes.md", "# title\n\nbody\n")

	cfg := testConfig()
	res := scanDir(t, root, cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.CodeLines() + m.CommentLines + m.BlankLines; got != m.TotalLines {
		t.Errorf("classes sum to %d, total is %d", got, m.TotalLines)
	}
}

func TestAnalyze_DuplicatesExcluded(t *testing.T) {
	root := t.TempDir()
	content := "line one\nline two\nline three\n"
	writeFile(t, root, "orig.txt", content)
	writeFile(t, root, "copy.txt", content)

	cfg := testConfig()
	res := scanDir(t, root, cfg)
	if len(res.DuplicateFiles) != 1 {
		t.Fatalf("fixture should produce 1 duplicate, got %v", res.DuplicateFiles)
	}

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Only the canonical copy is counted.
	if m.LinesByLang["Text"] != 3 {
		t.Errorf("expected 3 lines from the canonical file only, got %d", m.LinesByLang["Text"])
	}
	// Duplicates still count toward file totals.
	if m.TotalFiles != 2 {
		t.Errorf("expected both files in TotalFiles, got %d", m.TotalFiles)
	}
}

func TestAnalyze_ExcludedLanguagesSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "print('hi')\n")
	writeFile(t, root, "b.txt", "text\n")

	cfg := testConfig()
	cfg.Language.ExcludeLanguages = []string{"Python"}
	res := scanDir(t, root, cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.LinesByLang["Python"]; ok {
		t.Error("excluded language must not appear in the report")
	}
	if m.TotalLines != 1 {
		t.Errorf("expected 1 line from the text file, got %d", m.TotalLines)
	}
}

func TestAnalyze_MinLinesThreshold(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "short.py", "x = 1\n")
	writeFile(t, root, "long.py", "a = 1\nb = 2\nc = 3\nd = 4\n")

	cfg := testConfig()
	cfg.Language.MinLinesThreshold = 3
	res := scanDir(t, root, cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.LinesByLang["Python"] != 4 {
		t.Errorf("expected only the long file counted, got %d lines", m.LinesByLang["Python"])
	}
}

func TestAnalyze_ZeroLineLanguagesOmitted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty.py", "")

	cfg := testConfig()
	res := scanDir(t, root, cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.LinesByLang) != 0 {
		t.Errorf("empty files must not register their language, got %v", m.LinesByLang)
	}
}

func TestAnalyze_BinaryFilesCountedButNotAnalyzed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "print('hi')\n\n")
	writeFile(t, root, "b.dat", "\x00\x01\x02")

	cfg := testConfig()
	cfg.Scan.BinaryExtensions = []string{".dat"}
	res := scanDir(t, root, cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalFiles != 2 {
		t.Errorf("binary files count at the scanner level, got %d", m.TotalFiles)
	}
	if len(m.LinesByLang) != 1 || m.LinesByLang["Python"] != 2 {
		t.Errorf("expected only Python analyzed, got %v", m.LinesByLang)
	}
	if m.BlankLines != 1 {
		t.Errorf("expected 1 blank line, got %d", m.BlankLines)
	}
}

func TestAnalyze_CategoriesAggregate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "b.py", "x = 1\n")

	cfg := testConfig()
	res := scanDir(t, root, cfg)

	m, err := newTestAnalyzer(cfg).Analyze(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.LinesByCategory["programming"] != 2 {
		t.Errorf("expected 2 programming lines, got %v", m.LinesByCategory)
	}
}

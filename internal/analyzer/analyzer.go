package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/HermanKarlsson/statsvy-sub001/internal/config"
	"github.com/HermanKarlsson/statsvy-sub001/internal/lang"
	"github.com/HermanKarlsson/statsvy-sub001/internal/perf"
	"github.com/HermanKarlsson/statsvy-sub001/internal/scanner"
)

// phaseAnalysis labels the analysis phase in timeout errors.
const phaseAnalysis = "file analysis"

// Analyzer classifies scanned files by language and counts lines. It reads
// nothing the Scanner already read: pre-loaded contents are reused, and only
// missing entries fall back to disk.
type Analyzer struct {
	name     string
	path     string
	detector *lang.Detector
	cfg      *config.Config
	tracker  *perf.Tracker
	log      zerolog.Logger

	excluded  map[string]bool
	binaryExt map[string]bool
}

// New prepares an Analyzer for one target. The tracker may be nil.
func New(name, path string, detector *lang.Detector, cfg *config.Config, tracker *perf.Tracker, logger zerolog.Logger) *Analyzer {
	a := &Analyzer{
		name:      name,
		path:      path,
		detector:  detector,
		cfg:       cfg,
		tracker:   tracker,
		log:       logger,
		excluded:  make(map[string]bool, len(cfg.Language.ExcludeLanguages)),
		binaryExt: make(map[string]bool, len(cfg.Scan.BinaryExtensions)),
	}
	for _, l := range cfg.Language.ExcludeLanguages {
		a.excluded[l] = true
	}
	for _, ext := range cfg.Scan.BinaryExtensions {
		a.binaryExt[strings.ToLower(ext)] = true
	}
	return a
}

// Analyze aggregates metrics over every non-duplicate scanned file. An
// empty scan yields zero-valued Metrics with empty maps, never an error.
// Per-file read failures are skipped; only timeout errors abort.
func (a *Analyzer) Analyze(res *scanner.Result, checker *perf.TimeoutChecker) (*Metrics, error) {
	m := &Metrics{
		Name:           a.name,
		Path:           a.path,
		Timestamp:      time.Now(),
		TotalFiles:     res.TotalFiles,
		TotalSizeBytes: res.TotalSizeBytes,
		TotalSizeKB:    res.TotalSizeBytes / 1024,
		TotalSizeMB:    res.TotalSizeBytes / (1024 * 1024),

		LinesByLang:        make(map[string]int),
		CommentLinesByLang: make(map[string]int),
		BlankLinesByLang:   make(map[string]int),
		LinesByCategory:    make(map[string]int),
	}

	opts := lang.CountOptions{
		Comments:   a.cfg.Language.CountComments,
		Blanks:     a.cfg.Language.CountBlankLines,
		Docstrings: a.cfg.Language.CountDocstrings,
	}

	for _, file := range res.UniqueFiles() {
		if checker != nil {
			if err := checker.Check(phaseAnalysis); err != nil {
				return nil, err
			}
		}
		a.processFile(file, res, opts, m)
	}

	a.log.Debug().
		Int("total_lines", m.TotalLines).
		Int("comment_lines", m.CommentLines).
		Int("blank_lines", m.BlankLines).
		Msg("analysis complete")

	return m, nil
}

func (a *Analyzer) processFile(file string, res *scanner.Result, opts lang.CountOptions, m *Metrics) {
	text, ok := res.FileContents[file]
	if !ok {
		if a.binaryExt[strings.ToLower(filepath.Ext(file))] {
			return
		}
		data, err := a.readFile(file)
		if err != nil {
			a.log.Debug().Str("file", file).Err(err).Msg("skipping unreadable file")
			return
		}
		text = data
	}

	language := a.detector.Detect(file)
	if a.excluded[language] {
		return
	}

	counts := lang.CountLines(language, text, opts)
	if counts.Total == 0 || counts.Total < a.cfg.Language.MinLinesThreshold {
		return
	}

	m.TotalLines += counts.Total
	m.CommentLines += counts.Comments
	m.BlankLines += counts.Blanks

	m.LinesByLang[language] += counts.Total
	m.CommentLinesByLang[language] += counts.Comments
	m.BlankLinesByLang[language] += counts.Blanks
	m.LinesByCategory[a.detector.Category(language)] += counts.Total
}

// readFile is the fallback path for files the Scanner did not pre-load.
// Reads are instrumented when a tracker is active.
func (a *Analyzer) readFile(file string) (string, error) {
	start := time.Now()
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	if a.tracker.TrackingIO() {
		a.tracker.RecordIO(int64(len(data)), time.Since(start))
	}
	return string(data), nil
}

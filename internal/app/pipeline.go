package app

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/HermanKarlsson/statsvy-sub001/internal/analyzer"
	"github.com/HermanKarlsson/statsvy-sub001/internal/config"
	"github.com/HermanKarlsson/statsvy-sub001/internal/gitstats"
	"github.com/HermanKarlsson/statsvy-sub001/internal/lang"
	"github.com/HermanKarlsson/statsvy-sub001/internal/manifest"
	"github.com/HermanKarlsson/statsvy-sub001/internal/output"
	"github.com/HermanKarlsson/statsvy-sub001/internal/perf"
	"github.com/HermanKarlsson/statsvy-sub001/internal/scanner"
)

// runPipeline performs one full scan and analysis of dir and assembles the
// report. It is shared by the scan and compare commands.
func runPipeline(dir string, cfg *config.Config, log zerolog.Logger) (*output.Report, error) {
	detector, err := buildDetector(cfg)
	if err != nil {
		return nil, err
	}

	tracker := perf.NewTracker(cfg.Core.Performance.TrackMem, cfg.Core.Performance.TrackIO)
	if err := tracker.Start(); err != nil {
		return nil, err
	}

	checker, err := perf.NewTimeoutChecker(time.Duration(cfg.Scan.TimeoutSeconds) * time.Second)
	if err != nil {
		return nil, err
	}
	checker.Start()

	sc, err := scanner.New(dir, cfg, tracker, log)
	if err != nil {
		return nil, err
	}
	res, err := sc.Scan(checker)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("files", res.TotalFiles).Int("duplicates", len(res.DuplicateFiles)).Msg("scan complete")

	an := analyzer.New(cfg.Core.Name, dir, detector, cfg, tracker, log)
	metrics, err := an.Analyze(res, checker)
	if err != nil {
		return nil, err
	}

	if cfg.Dependencies.IncludeDependencies {
		info, err := manifest.Collect(dir, log)
		if err != nil {
			return nil, err
		}
		if info != nil && info.Dependencies != nil {
			deps := info.Dependencies
			if cfg.Dependencies.ExcludeDevDependencies {
				deps = deps.WithoutDev()
			}
			metrics = metrics.WithDependencies(deps)
			if info.Name != "" && cfg.Core.Name == config.DefaultProjectName {
				metrics.Name = info.Name
			}
		}
	}

	report := &output.Report{
		Metrics:    metrics,
		Duplicates: res.DuplicateFiles,
	}

	if cfg.Files.FindLargeFiles {
		report.LargeFiles = findLargeFiles(res, int64(cfg.Files.LargeFileThresholdMB)*1024*1024)
	}

	if cfg.Git.Enabled {
		report.Git = gitstats.Collect(dir, log)
	}

	perfMetrics, err := tracker.Stop()
	if err != nil {
		return nil, err
	}
	if cfg.Core.Performance.TrackMem || cfg.Core.Performance.TrackIO {
		report.Perf = &perfMetrics
	}

	return report, nil
}

// buildDetector assembles the language detector from the active mapping.
func buildDetector(cfg *config.Config) (*lang.Detector, error) {
	mapping, err := buildMapping(cfg)
	if err != nil {
		return nil, err
	}
	return lang.NewDetector(mapping), nil
}

// buildMapping layers the language table: built-ins, then the optional
// mapping file, then per-language custom entries from the config.
func buildMapping(cfg *config.Config) (lang.Mapping, error) {
	mapping := lang.DefaultMapping()

	if cfg.Language.MappingFile != "" {
		fromFile, err := lang.LoadMapping(cfg.Language.MappingFile)
		if err != nil {
			return nil, fmt.Errorf("loading language mapping: %w", err)
		}
		mapping = mapping.Merge(fromFile)
	}

	if len(cfg.Language.CustomMapping) > 0 {
		custom := make(lang.Mapping, len(cfg.Language.CustomMapping))
		for name, c := range cfg.Language.CustomMapping {
			custom[name] = lang.Definition{
				Type:       c.Type,
				Extensions: c.Extensions,
				Filenames:  c.Filenames,
			}
		}
		mapping = mapping.Merge(custom)
	}

	return mapping, nil
}

// findLargeFiles stats scanned files against the large-file threshold.
func findLargeFiles(res *scanner.Result, thresholdBytes int64) []output.LargeFile {
	if thresholdBytes <= 0 {
		return nil
	}
	var out []output.LargeFile
	for _, path := range res.ScannedFiles {
		st, err := os.Stat(path)
		if err != nil {
			continue
		}
		if st.Size() >= thresholdBytes {
			out = append(out, output.LargeFile{Path: path, SizeBytes: st.Size()})
		}
	}
	return out
}

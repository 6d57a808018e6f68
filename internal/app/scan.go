package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HermanKarlsson/statsvy-sub001/internal/config"
	"github.com/HermanKarlsson/statsvy-sub001/internal/output"
	"github.com/HermanKarlsson/statsvy-sub001/internal/store"
)

var (
	scanFlagName     string
	scanFlagFormat   string
	scanFlagOutput   string
	scanFlagIgnore   []string
	scanFlagHidden   bool
	scanFlagSymlinks bool
	scanFlagMaxDepth int
	scanFlagMinSize  float64
	scanFlagMaxSize  float64
	scanFlagNoGitig  bool
	scanFlagTimeout  int
	scanFlagMinLines int
	scanFlagExclude  []string
	scanFlagNoSave   bool
	scanFlagTrackMem bool
	scanFlagTrackIO  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a directory and report code statistics",
	Long: `Scan walks the directory tree, classifies every line of every text
file as code, comment or blank, detects duplicate files by content hash,
and reads dependency manifests. The result is rendered in the chosen
format and, unless disabled, saved to the local scan history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	scanCmd.Flags().StringVar(&scanFlagName, "name", "", "Project name for the report")
	scanCmd.Flags().StringVar(&scanFlagFormat, "format", "", "Output format: table, json, markdown, html, summary")
	scanCmd.Flags().StringVarP(&scanFlagOutput, "output", "o", "", "Write the report to a file instead of stdout")
	scanCmd.Flags().StringSliceVar(&scanFlagIgnore, "ignore", nil, "Glob patterns to skip (can be repeated)")
	scanCmd.Flags().BoolVar(&scanFlagHidden, "hidden", false, "Include hidden files and directories")
	scanCmd.Flags().BoolVar(&scanFlagSymlinks, "follow-symlinks", false, "Follow symbolic links")
	scanCmd.Flags().IntVar(&scanFlagMaxDepth, "max-depth", 0, "Maximum directory depth (0 = unlimited)")
	scanCmd.Flags().Float64Var(&scanFlagMinSize, "min-size", 0, "Minimum file size in MB")
	scanCmd.Flags().Float64Var(&scanFlagMaxSize, "max-size", 0, "Maximum file size in MB")
	scanCmd.Flags().BoolVar(&scanFlagNoGitig, "no-gitignore", false, "Do not honor .gitignore patterns")
	scanCmd.Flags().IntVar(&scanFlagTimeout, "timeout", 0, "Scan timeout in seconds (0 = disabled)")
	scanCmd.Flags().IntVar(&scanFlagMinLines, "min-lines", 0, "Skip files with fewer lines than this")
	scanCmd.Flags().StringSliceVar(&scanFlagExclude, "exclude-lang", nil, "Languages to exclude from the report")
	scanCmd.Flags().BoolVar(&scanFlagNoSave, "no-save", false, "Do not record this scan in the history")
	scanCmd.Flags().BoolVar(&scanFlagTrackMem, "track-mem", false, "Track peak memory usage")
	scanCmd.Flags().BoolVar(&scanFlagTrackIO, "track-io", false, "Track file IO volume and timing")

	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyScanFlags(cmd, cfg)

	log := newLogger(flagVerbose || cfg.Core.Verbose)

	report, err := runPipeline(abs, cfg, log)
	if err != nil {
		return err
	}

	format := cfg.Core.DefaultFormat
	if scanFlagFormat != "" {
		format = scanFlagFormat
	}
	if flagJSON {
		format = "json"
	}
	formatter, err := output.FormatterFor(format, displayOptions(cfg))
	if err != nil {
		return err
	}
	rendered, err := formatter.Format(report)
	if err != nil {
		return err
	}

	if scanFlagOutput != "" {
		if err := os.WriteFile(scanFlagOutput, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		log.Info().Str("file", scanFlagOutput).Msg("report written")
	} else {
		fmt.Print(rendered)
	}

	if cfg.Storage.AutoSave && !scanFlagNoSave {
		db, err := store.Open(config.DBPath())
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer db.Close()
		id, err := db.SaveMetrics(report.Metrics, len(report.Duplicates))
		if err != nil {
			return fmt.Errorf("saving scan: %w", err)
		}
		log.Debug().Int64("scan_id", id).Msg("scan recorded")
	}

	return nil
}

// applyScanFlags layers explicit CLI flags over the loaded configuration.
// Only flags the user actually set override the file and environment.
func applyScanFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if scanFlagName != "" {
		cfg.Core.Name = scanFlagName
	}
	if len(scanFlagIgnore) > 0 {
		cfg.Scan.IgnorePatterns = append(cfg.Scan.IgnorePatterns, scanFlagIgnore...)
	}
	if f.Changed("hidden") {
		cfg.Scan.IncludeHidden = scanFlagHidden
	}
	if f.Changed("follow-symlinks") {
		cfg.Scan.FollowSymlinks = scanFlagSymlinks
	}
	if f.Changed("max-depth") {
		cfg.Scan.MaxDepth = scanFlagMaxDepth
	}
	if f.Changed("min-size") {
		cfg.Scan.MinFileSizeMB = scanFlagMinSize
	}
	if f.Changed("max-size") {
		cfg.Scan.MaxFileSizeMB = scanFlagMaxSize
	}
	if scanFlagNoGitig {
		cfg.Scan.RespectGitignore = false
	}
	if f.Changed("timeout") {
		cfg.Scan.TimeoutSeconds = scanFlagTimeout
	}
	if f.Changed("min-lines") {
		cfg.Language.MinLinesThreshold = scanFlagMinLines
	}
	if len(scanFlagExclude) > 0 {
		cfg.Language.ExcludeLanguages = append(cfg.Language.ExcludeLanguages, scanFlagExclude...)
	}
	if scanFlagTrackMem {
		cfg.Core.Performance.TrackMem = true
	}
	if scanFlagTrackIO {
		cfg.Core.Performance.TrackIO = true
	}
}

func displayOptions(cfg *config.Config) output.Options {
	return output.Options{
		TruncatePaths:   cfg.Display.TruncatePaths,
		ShowPercentages: cfg.Display.ShowPercentages,
		ShowDepsList:    cfg.Display.ShowDepsList,
	}
}

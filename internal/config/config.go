package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level statsvy configuration. Commands treat a loaded
// Config as read-only; CLI overrides are applied by constructing a modified
// copy, never by mutating shared state.
type Config struct {
	Core         Core         `mapstructure:"core"`
	Scan         Scan         `mapstructure:"scan"`
	Language     Language     `mapstructure:"language"`
	Files        Files        `mapstructure:"files"`
	Storage      Storage      `mapstructure:"storage"`
	Git          Git          `mapstructure:"git"`
	Display      Display      `mapstructure:"display"`
	Comparison   Comparison   `mapstructure:"comparison"`
	Dependencies Dependencies `mapstructure:"dependencies"`
}

// Core holds general application settings.
type Core struct {
	Name          string      `mapstructure:"name"`
	DefaultFormat string      `mapstructure:"default_format"`
	OutDir        string      `mapstructure:"out_dir"`
	Verbose       bool        `mapstructure:"verbose"`
	Color         bool        `mapstructure:"color"`
	Performance   Performance `mapstructure:"performance"`
}

// Performance groups the instrumentation toggles.
type Performance struct {
	TrackMem bool `mapstructure:"track_mem"`
	TrackIO  bool `mapstructure:"track_io"`
}

// Scan holds file system traversal settings.
type Scan struct {
	FollowSymlinks   bool     `mapstructure:"follow_symlinks"`
	MaxDepth         int      `mapstructure:"max_depth"`
	MinFileSizeMB    float64  `mapstructure:"min_file_size_mb"`
	MaxFileSizeMB    float64  `mapstructure:"max_file_size_mb"`
	RespectGitignore bool     `mapstructure:"respect_gitignore"`
	IncludeHidden    bool     `mapstructure:"include_hidden"`
	TimeoutSeconds   int      `mapstructure:"timeout_seconds"`
	IgnorePatterns   []string `mapstructure:"ignore_patterns"`
	BinaryExtensions []string `mapstructure:"binary_extensions"`
}

// Language holds detection and line-counting settings.
type Language struct {
	// MappingFile points to an optional YAML language table that overrides
	// the built-in mapping. Missing file means built-ins only.
	MappingFile string `mapstructure:"mapping_file"`

	// CustomMapping extends or overrides table entries per language name.
	CustomMapping map[string]CustomLanguage `mapstructure:"custom_mapping"`

	ExcludeLanguages  []string `mapstructure:"exclude_languages"`
	MinLinesThreshold int      `mapstructure:"min_lines_threshold"`
	CountComments     bool     `mapstructure:"count_comments"`
	CountBlankLines   bool     `mapstructure:"count_blank_lines"`
	CountDocstrings   bool     `mapstructure:"count_docstrings"`
}

// CustomLanguage is one user-supplied language mapping entry.
type CustomLanguage struct {
	Type       string   `mapstructure:"type"`
	Extensions []string `mapstructure:"extensions"`
	Filenames  []string `mapstructure:"filenames"`
}

// Files holds file-level analysis settings. Duplicate detection is always
// on; only the hashing threshold is configurable.
type Files struct {
	DuplicateThresholdBytes int64 `mapstructure:"duplicate_threshold_bytes"`
	FindLargeFiles          bool  `mapstructure:"find_large_files"`
	LargeFileThresholdMB    int   `mapstructure:"large_file_threshold_mb"`
}

// Storage holds persistence settings.
type Storage struct {
	AutoSave bool `mapstructure:"auto_save"`
}

// Git holds repository metadata settings.
type Git struct {
	Enabled          bool `mapstructure:"enabled"`
	ShowContributors bool `mapstructure:"show_contributors"`
	MaxContributors  int  `mapstructure:"max_contributors"`
}

// Display holds terminal rendering preferences.
type Display struct {
	TruncatePaths   bool `mapstructure:"truncate_paths"`
	ShowPercentages bool `mapstructure:"show_percentages"`
	ShowDepsList    bool `mapstructure:"show_deps_list"`
}

// Comparison holds snapshot diff preferences.
type Comparison struct {
	ShowUnchanged bool `mapstructure:"show_unchanged"`
}

// Dependencies holds manifest extraction settings.
type Dependencies struct {
	IncludeDependencies    bool `mapstructure:"include_dependencies"`
	ExcludeDevDependencies bool `mapstructure:"exclude_dev_dependencies"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration with the precedence defaults < file < environment.
// CLI flag overrides are applied by the commands on top of the returned
// value. A missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STATSVY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("statsvy")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Core.OutDir = expandPath(cfg.Core.OutDir)
	cfg.Language.MappingFile = expandPath(cfg.Language.MappingFile)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("core.name", DefaultProjectName)
	v.SetDefault("core.default_format", DefaultFormat)
	v.SetDefault("core.out_dir", "./")
	v.SetDefault("core.verbose", false)
	v.SetDefault("core.color", true)
	v.SetDefault("core.performance.track_mem", false)
	v.SetDefault("core.performance.track_io", false)

	v.SetDefault("scan.follow_symlinks", false)
	v.SetDefault("scan.max_depth", 0)
	v.SetDefault("scan.min_file_size_mb", 0.0)
	v.SetDefault("scan.max_file_size_mb", DefaultMaxFileSizeMB)
	v.SetDefault("scan.respect_gitignore", true)
	v.SetDefault("scan.include_hidden", false)
	v.SetDefault("scan.timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("scan.ignore_patterns", DefaultIgnorePatterns)
	v.SetDefault("scan.binary_extensions", DefaultBinaryExtensions)

	v.SetDefault("language.mapping_file", "")
	v.SetDefault("language.exclude_languages", []string{})
	v.SetDefault("language.min_lines_threshold", 0)
	v.SetDefault("language.count_comments", true)
	v.SetDefault("language.count_blank_lines", true)
	v.SetDefault("language.count_docstrings", true)

	v.SetDefault("files.duplicate_threshold_bytes", DefaultDuplicateThresholdBytes)
	v.SetDefault("files.find_large_files", true)
	v.SetDefault("files.large_file_threshold_mb", 10)

	v.SetDefault("storage.auto_save", true)

	v.SetDefault("git.enabled", true)
	v.SetDefault("git.show_contributors", true)
	v.SetDefault("git.max_contributors", 5)

	v.SetDefault("display.truncate_paths", true)
	v.SetDefault("display.show_percentages", true)
	v.SetDefault("display.show_deps_list", true)

	v.SetDefault("comparison.show_unchanged", false)

	v.SetDefault("dependencies.include_dependencies", true)
	v.SetDefault("dependencies.exclude_dev_dependencies", false)
}

// DBPath returns the full path to the SQLite history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

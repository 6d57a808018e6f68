// Package config provides configuration loading and defaults for statsvy.
package config

// DefaultProjectName is used when no project name is configured.
const DefaultProjectName = "statsvy-project"

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = "table"

// DefaultConfigDir is the default location for statsvy configuration
// and the scan-history database.
const DefaultConfigDir = "~/.config/statsvy"

// DefaultDBName is the filename for the SQLite history database.
const DefaultDBName = "statsvy.db"

// DefaultMaxFileSizeMB is the upper size bound for scanned files.
const DefaultMaxFileSizeMB = 100.0

// DefaultTimeoutSeconds is the wall-clock budget for one scan+analyze run.
const DefaultTimeoutSeconds = 300

// DefaultDuplicateThresholdBytes is the minimum file size for which
// content hashes are computed during duplicate detection.
const DefaultDuplicateThresholdBytes = 1024

// DefaultIgnorePatterns are glob patterns excluded from every scan.
var DefaultIgnorePatterns = []string{".git"}

// DefaultBinaryExtensions are extensions never loaded for text analysis.
var DefaultBinaryExtensions = []string{
	".exe", ".dll", ".so", ".dylib",
	".jpg", ".png", ".gif", ".pdf",
	".zip", ".tar", ".gz", ".pyc",
}

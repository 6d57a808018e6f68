package store

import "time"

// Scan is one stored scan snapshot.
type Scan struct {
	ID             int64     `json:"id"`
	TakenAt        time.Time `json:"taken_at"`
	Project        string    `json:"project"`
	Path           string    `json:"path"`
	TotalFiles     int       `json:"total_files"`
	TotalSizeBytes int64     `json:"total_size_bytes"`
	TotalLines     int       `json:"total_lines"`
	CommentLines   int       `json:"comment_lines"`
	BlankLines     int       `json:"blank_lines"`
	DuplicateFiles int       `json:"duplicate_files"`
}

// LanguageRow is a per-language breakdown row for one scan.
type LanguageRow struct {
	Language     string `json:"language"`
	Lines        int    `json:"lines"`
	CommentLines int    `json:"comment_lines"`
	BlankLines   int    `json:"blank_lines"`
}

// Trend describes whether a metric grew, shrank or held steady between
// two scans.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// DiffRow is one metric delta between two stored scans.
type DiffRow struct {
	Metric string `json:"metric"`
	Before int64  `json:"before"`
	After  int64  `json:"after"`
	Delta  int64  `json:"delta"`
	Trend  Trend  `json:"trend"`
}

// Diff is the full delta between two stored scans, older to newer.
type Diff struct {
	Before *Scan     `json:"before"`
	After  *Scan     `json:"after"`
	Rows   []DiffRow `json:"rows"`
}

package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/HermanKarlsson/statsvy-sub001/internal/analyzer"
)

// SaveMetrics stores an analyzed scan with its per-language breakdown and
// returns the new scan ID.
func (db *DB) SaveMetrics(m *analyzer.Metrics, duplicateFiles int) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO scans
		(taken_at, project, path, total_files, total_size_bytes, total_lines,
		 comment_lines, blank_lines, duplicate_files)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Timestamp.UTC().Format(time.RFC3339), m.Name, m.Path,
		m.TotalFiles, m.TotalSizeBytes, m.TotalLines,
		m.CommentLines, m.BlankLines, duplicateFiles,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting scan: %w", err)
	}
	scanID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	langs := make([]string, 0, len(m.LinesByLang))
	for l := range m.LinesByLang {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if _, err := tx.Exec(
			`INSERT INTO scan_languages (scan_id, language, lines, comment_lines, blank_lines)
			VALUES (?, ?, ?, ?, ?)`,
			scanID, lang, m.LinesByLang[lang], m.CommentLinesByLang[lang], m.BlankLinesByLang[lang],
		); err != nil {
			return 0, fmt.Errorf("inserting language row for %s: %w", lang, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return scanID, nil
}

// ListScans returns the most recent scans for a project, newest first.
// An empty project matches all projects; limit <= 0 means no limit.
func (db *DB) ListScans(project string, limit int) ([]*Scan, error) {
	query := "SELECT id, taken_at, project, path, total_files, total_size_bytes, total_lines, comment_lines, blank_lines, duplicate_files FROM scans"
	var args []any
	if project != "" {
		query += " WHERE project = ?"
		args = append(args, project)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

// LatestScan returns the most recent scan for a project, or nil when the
// history is empty.
func (db *DB) LatestScan(project string) (*Scan, error) {
	return db.ScanN(project, 1)
}

// ScanN returns the Nth most recent scan (1 = latest, 2 = previous, etc.),
// or nil when fewer scans exist.
func (db *DB) ScanN(project string, n int) (*Scan, error) {
	scans, err := db.ListScans(project, n)
	if err != nil {
		return nil, err
	}
	if len(scans) < n {
		return nil, nil
	}
	return scans[n-1], nil
}

// ScanLanguages returns the per-language rows for a scan, ordered by line
// count descending.
func (db *DB) ScanLanguages(scanID int64) ([]LanguageRow, error) {
	rows, err := db.conn.Query(
		"SELECT language, lines, comment_lines, blank_lines FROM scan_languages WHERE scan_id = ? ORDER BY lines DESC, language ASC",
		scanID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LanguageRow
	for rows.Next() {
		var r LanguageRow
		if err := rows.Scan(&r.Language, &r.Lines, &r.CommentLines, &r.BlankLines); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DiffScans computes the metric deltas from before to after.
func DiffScans(before, after *Scan) *Diff {
	d := &Diff{Before: before, After: after}
	add := func(metric string, b, a int64) {
		d.Rows = append(d.Rows, DiffRow{
			Metric: metric,
			Before: b,
			After:  a,
			Delta:  a - b,
			Trend:  trendOf(a - b),
		})
	}
	add("total_files", int64(before.TotalFiles), int64(after.TotalFiles))
	add("total_size_bytes", before.TotalSizeBytes, after.TotalSizeBytes)
	add("total_lines", int64(before.TotalLines), int64(after.TotalLines))
	add("comment_lines", int64(before.CommentLines), int64(after.CommentLines))
	add("blank_lines", int64(before.BlankLines), int64(after.BlankLines))
	add("duplicate_files", int64(before.DuplicateFiles), int64(after.DuplicateFiles))
	return d
}

// DiffLatest diffs the two most recent scans for a project. Returns nil
// when fewer than two scans are stored.
func (db *DB) DiffLatest(project string) (*Diff, error) {
	scans, err := db.ListScans(project, 2)
	if err != nil {
		return nil, err
	}
	if len(scans) < 2 {
		return nil, nil
	}
	// ListScans is newest first.
	return DiffScans(scans[1], scans[0]), nil
}

func trendOf(delta int64) Trend {
	switch {
	case delta > 0:
		return TrendUp
	case delta < 0:
		return TrendDown
	}
	return TrendSteady
}

func scanRow(rows *sql.Rows) (*Scan, error) {
	var s Scan
	var takenAt string
	err := rows.Scan(&s.ID, &takenAt, &s.Project, &s.Path, &s.TotalFiles,
		&s.TotalSizeBytes, &s.TotalLines, &s.CommentLines, &s.BlankLines,
		&s.DuplicateFiles)
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

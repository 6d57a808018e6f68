package store

import (
	"testing"
	"time"

	"github.com/HermanKarlsson/statsvy-sub001/internal/analyzer"
)

func testMetrics(name string, files, lines int) *analyzer.Metrics {
	return &analyzer.Metrics{
		Name:           name,
		Path:           "/src/" + name,
		Timestamp:      time.Now(),
		TotalFiles:     files,
		TotalSizeBytes: int64(files) * 1000,
		TotalLines:     lines,
		CommentLines:   lines / 10,
		BlankLines:     lines / 5,
		LinesByLang: map[string]int{
			"Go":     lines - 10,
			"Python": 10,
		},
		CommentLinesByLang: map[string]int{"Go": lines / 10},
		BlankLinesByLang:   map[string]int{"Go": lines / 5},
	}
}

func TestSaveMetrics_RoundTrip(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id, err := db.SaveMetrics(testMetrics("proj", 42, 1000), 3)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero scan id")
	}

	scan, err := db.LatestScan("proj")
	if err != nil {
		t.Fatal(err)
	}
	if scan == nil {
		t.Fatal("expected the saved scan back")
	}
	if scan.TotalFiles != 42 || scan.TotalLines != 1000 || scan.DuplicateFiles != 3 {
		t.Errorf("unexpected scan row: %+v", scan)
	}

	langs, err := db.ScanLanguages(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(langs) != 2 {
		t.Fatalf("expected 2 language rows, got %d", len(langs))
	}
	// Ordered by line count descending.
	if langs[0].Language != "Go" {
		t.Errorf("expected Go first, got %s", langs[0].Language)
	}
}

func TestListScans_NewestFirstAndFiltered(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := 1; i <= 3; i++ {
		if _, err := db.SaveMetrics(testMetrics("alpha", i, i*100), 0); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.SaveMetrics(testMetrics("beta", 9, 900), 0); err != nil {
		t.Fatal(err)
	}

	scans, err := db.ListScans("alpha", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 3 {
		t.Fatalf("expected 3 alpha scans, got %d", len(scans))
	}
	if scans[0].TotalFiles != 3 {
		t.Errorf("expected the newest scan first, got %d files", scans[0].TotalFiles)
	}

	limited, err := db.ListScans("", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("expected limit applied, got %d", len(limited))
	}
}

func TestLatestScan_EmptyHistory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	scan, err := db.LatestScan("")
	if err != nil {
		t.Fatal(err)
	}
	if scan != nil {
		t.Errorf("expected nil for empty history, got %+v", scan)
	}
}

func TestDiffLatest_Trends(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.SaveMetrics(testMetrics("proj", 10, 1000), 2); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveMetrics(testMetrics("proj", 12, 900), 2); err != nil {
		t.Fatal(err)
	}

	diff, err := db.DiffLatest("proj")
	if err != nil {
		t.Fatal(err)
	}
	if diff == nil {
		t.Fatal("expected a diff with two scans stored")
	}

	byMetric := map[string]DiffRow{}
	for _, row := range diff.Rows {
		byMetric[row.Metric] = row
	}
	if r := byMetric["total_files"]; r.Delta != 2 || r.Trend != TrendUp {
		t.Errorf("expected files +2/up, got %+v", r)
	}
	if r := byMetric["total_lines"]; r.Delta != -100 || r.Trend != TrendDown {
		t.Errorf("expected lines -100/down, got %+v", r)
	}
	if r := byMetric["duplicate_files"]; r.Trend != TrendSteady {
		t.Errorf("expected duplicates steady, got %+v", r)
	}
}

func TestDiffLatest_NeedsTwoScans(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.SaveMetrics(testMetrics("proj", 1, 10), 0); err != nil {
		t.Fatal(err)
	}

	diff, err := db.DiffLatest("proj")
	if err != nil {
		t.Fatal(err)
	}
	if diff != nil {
		t.Error("expected nil diff with a single scan")
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/deeper/history.db"

	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.SaveMetrics(testMetrics("proj", 1, 10), 0); err != nil {
		t.Fatal(err)
	}
}

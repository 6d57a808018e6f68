package analyzer

import (
	"sort"
	"time"
)

// ComparisonResult holds two metrics snapshots and their computed deltas.
type ComparisonResult struct {
	First     *Metrics  `json:"first"`
	Second    *Metrics  `json:"second"`
	Timestamp time.Time `json:"timestamp"`

	// Overall maps metric names to second-minus-first absolute deltas.
	Overall map[string]int64 `json:"overall"`

	// ByLanguage covers the union of both snapshots' languages. Delta
	// fields are nil when the language exists in only one snapshot.
	ByLanguage map[string]LanguageDelta `json:"by_language"`

	// ByCategory covers the union of both snapshots' categories, nil when
	// a category exists in only one snapshot.
	ByCategory map[string]*int64 `json:"by_category"`
}

// LanguageDelta is the per-language change between two snapshots.
type LanguageDelta struct {
	Lines    *int64 `json:"lines"`
	Comments *int64 `json:"comments"`
	Blanks   *int64 `json:"blanks"`
}

// Compare computes all deltas between two snapshots, second relative to
// first. Neither input is modified.
func Compare(first, second *Metrics) *ComparisonResult {
	return &ComparisonResult{
		First:      first,
		Second:     second,
		Timestamp:  time.Now(),
		Overall:    deltaOverall(first, second),
		ByLanguage: deltaByLanguage(first, second),
		ByCategory: deltaByCategory(first, second),
	}
}

func deltaOverall(a, b *Metrics) map[string]int64 {
	return map[string]int64{
		"total_files":      int64(b.TotalFiles - a.TotalFiles),
		"total_lines":      int64(b.TotalLines - a.TotalLines),
		"total_size_bytes": b.TotalSizeBytes - a.TotalSizeBytes,
		"total_size_kb":    b.TotalSizeKB - a.TotalSizeKB,
		"total_size_mb":    b.TotalSizeMB - a.TotalSizeMB,
		"comment_lines":    int64(b.CommentLines - a.CommentLines),
		"blank_lines":      int64(b.BlankLines - a.BlankLines),
	}
}

func deltaByLanguage(a, b *Metrics) map[string]LanguageDelta {
	deltas := make(map[string]LanguageDelta)
	for _, language := range unionKeys(a.LinesByLang, b.LinesByLang) {
		deltas[language] = LanguageDelta{
			Lines:    deltaFor(a.LinesByLang, b.LinesByLang, language),
			Comments: deltaFor(a.CommentLinesByLang, b.CommentLinesByLang, language),
			Blanks:   deltaFor(a.BlankLinesByLang, b.BlankLinesByLang, language),
		}
	}
	return deltas
}

func deltaByCategory(a, b *Metrics) map[string]*int64 {
	deltas := make(map[string]*int64)
	for _, cat := range unionKeys(a.LinesByCategory, b.LinesByCategory) {
		deltas[cat] = deltaFor(a.LinesByCategory, b.LinesByCategory, cat)
	}
	return deltas
}

// deltaFor returns b-a for a key present in both maps, nil otherwise.
func deltaFor(a, b map[string]int, key string) *int64 {
	av, aok := a[key]
	bv, bok := b[key]
	if !aok || !bok {
		return nil
	}
	d := int64(bv - av)
	return &d
}

func unionKeys(a, b map[string]int) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

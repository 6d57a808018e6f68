// Package scanner walks a directory tree and produces the raw inputs for
// analysis: file counts, sizes, pre-read text contents and duplicate
// detection by content hash.
package scanner

// Result is the immutable snapshot of one traversal. Duplicate paths are a
// subset of ScannedFiles; FileContents only holds entries for scanned
// non-duplicate text files.
type Result struct {
	// TotalFiles counts every file that passed the filters, duplicates
	// included.
	TotalFiles int `json:"total_files"`

	// TotalSizeBytes sums the sizes of all counted files.
	TotalSizeBytes int64 `json:"total_size_bytes"`

	// ScannedFiles lists every counted file in traversal order.
	ScannedFiles []string `json:"scanned_files"`

	// DuplicateFiles lists files whose size and content hash matched an
	// earlier-seen file. The first occurrence is never listed.
	DuplicateFiles []string `json:"duplicate_files,omitempty"`

	// FileContents maps path to pre-read text for files eligible for text
	// analysis. Binary, duplicate and unreadable files have no entry.
	FileContents map[string]string `json:"-"`

	// BytesRead counts bytes physically read from disk during the scan.
	BytesRead int64 `json:"bytes_read"`

	duplicateSet map[string]bool
}

// IsDuplicate reports whether a scanned path was flagged as a duplicate.
func (r *Result) IsDuplicate(path string) bool {
	return r.duplicateSet[path]
}

// UniqueFiles returns the scanned files with duplicates filtered out, in
// traversal order.
func (r *Result) UniqueFiles() []string {
	if len(r.DuplicateFiles) == 0 {
		return r.ScannedFiles
	}
	unique := make([]string, 0, len(r.ScannedFiles)-len(r.DuplicateFiles))
	for _, f := range r.ScannedFiles {
		if !r.duplicateSet[f] {
			unique = append(unique, f)
		}
	}
	return unique
}

package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"github.com/HermanKarlsson/statsvy-sub001/internal/config"
	"github.com/HermanKarlsson/statsvy-sub001/internal/perf"
)

// phaseDiscovery labels the traversal phase in timeout errors.
const phaseDiscovery = "file discovery"

// Scanner traverses a directory tree under the configured filter rules.
// Each Scan call owns its accumulators, so independent Scanner instances
// never share state.
type Scanner struct {
	root    string
	cfg     *config.Config
	tracker *perf.Tracker
	log     zerolog.Logger

	ignore    []string
	binaryExt map[string]bool
	minBytes  int64
	maxBytes  int64
}

// hashKey identifies a duplicate candidate group. Files only collide when
// both size and content hash match.
type hashKey struct {
	size int64
	hash uint64
}

// scanState holds the accumulators for one traversal.
type scanState struct {
	res       *Result
	hashIndex map[hashKey]string
	visited   map[string]bool
}

// New validates the root path and prepares a Scanner. A nonexistent or
// non-directory root fails here, before any traversal starts. The tracker
// may be nil when I/O instrumentation is off.
func New(root string, cfg *config.Config, tracker *perf.Tracker, logger zerolog.Logger) (*Scanner, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("path %q does not exist", root)
		}
		return nil, fmt.Errorf("stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", root)
	}

	s := &Scanner{
		root:      root,
		cfg:       cfg,
		tracker:   tracker,
		log:       logger,
		binaryExt: make(map[string]bool, len(cfg.Scan.BinaryExtensions)),
		minBytes:  int64(cfg.Scan.MinFileSizeMB * 1024 * 1024),
		maxBytes:  int64(cfg.Scan.MaxFileSizeMB * 1024 * 1024),
	}
	for _, ext := range cfg.Scan.BinaryExtensions {
		s.binaryExt[strings.ToLower(ext)] = true
	}

	s.ignore = append(s.ignore, cfg.Scan.IgnorePatterns...)
	if cfg.Scan.RespectGitignore {
		patterns := parseGitignore(root)
		if len(patterns) > 0 {
			s.log.Debug().Int("patterns", len(patterns)).Msg("loaded ignore patterns from .gitignore")
		}
		s.ignore = append(s.ignore, patterns...)
	}

	return s, nil
}

// Scan walks the tree and returns the traversal snapshot. The checker may
// be nil, disabling timeout enforcement. Per-file read errors are skipped;
// only timeout errors abort the scan.
func (s *Scanner) Scan(checker *perf.TimeoutChecker) (*Result, error) {
	st := &scanState{
		res: &Result{
			FileContents: make(map[string]string),
			duplicateSet: make(map[string]bool),
		},
		hashIndex: make(map[hashKey]string),
		visited:   make(map[string]bool),
	}

	if err := s.walkDir(s.root, 1, st, checker); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("files", st.res.TotalFiles).
		Int64("bytes", st.res.TotalSizeBytes).
		Int("duplicates", len(st.res.DuplicateFiles)).
		Msg("scan complete")

	return st.res, nil
}

// walkDir processes one directory level. Entries come from os.ReadDir,
// which sorts by name, so traversal order is deterministic on every
// platform and the first occurrence of a duplicate group is stable.
func (s *Scanner) walkDir(dir string, depth int, st *scanState, checker *perf.TimeoutChecker) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories are skipped, not fatal.
		s.log.Debug().Str("dir", dir).Err(err).Msg("skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		if checker != nil {
			if err := checker.Check(phaseDiscovery); err != nil {
				return err
			}
		}

		name := entry.Name()
		if !s.cfg.Scan.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		full := filepath.Join(dir, name)
		rel, err := filepath.Rel(s.root, full)
		if err != nil {
			rel = name
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(rel, s.ignore) {
			continue
		}

		isDir := entry.IsDir()
		var info fs.FileInfo

		if entry.Type()&fs.ModeSymlink != 0 {
			if !s.cfg.Scan.FollowSymlinks {
				continue
			}
			// Resolve the target; a dangling link is skipped.
			resolved, err := os.Stat(full)
			if err != nil {
				continue
			}
			isDir = resolved.IsDir()
			info = resolved
		}

		if isDir {
			if s.cfg.Scan.MaxDepth > 0 && depth+1 > s.cfg.Scan.MaxDepth {
				continue
			}
			if err := s.enterDir(full, depth+1, st, checker); err != nil {
				return err
			}
			continue
		}

		if info == nil {
			info, err = entry.Info()
			if err != nil {
				continue
			}
		}
		if !info.Mode().IsRegular() {
			continue
		}

		s.processFile(full, info.Size(), st)
	}

	return nil
}

// enterDir recurses into a directory, guarding against symlink cycles by
// remembering resolved paths.
func (s *Scanner) enterDir(dir string, depth int, st *scanState, checker *perf.TimeoutChecker) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if st.visited[resolved] {
		return nil
	}
	st.visited[resolved] = true
	return s.walkDir(dir, depth, st, checker)
}

// processFile applies size bounds, updates totals, pre-reads text content
// and performs duplicate detection for one file.
func (s *Scanner) processFile(path string, size int64, st *scanState) {
	if size < s.minBytes || size > s.maxBytes {
		return
	}

	st.res.TotalFiles++
	st.res.TotalSizeBytes += size

	s.preloadText(path, st)
	s.recordDuplicate(path, size, st)

	st.res.ScannedFiles = append(st.res.ScannedFiles, path)
}

// preloadText reads non-binary files into memory so the analyzer can avoid
// a second disk read. Read failures leave no content entry; the file stays
// counted.
func (s *Scanner) preloadText(path string, st *scanState) {
	ext := strings.ToLower(filepath.Ext(path))
	if s.binaryExt[ext] {
		return
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Debug().Str("file", path).Err(err).Msg("preload failed")
		return
	}
	st.res.BytesRead += int64(len(data))
	if s.tracker.TrackingIO() {
		s.tracker.RecordIO(int64(len(data)), time.Since(start))
	}

	st.res.FileContents[path] = string(data)
}

// recordDuplicate hashes files at or above the duplicate threshold and
// flags second and later occurrences of the same (size, hash) group. The
// pre-read content is hashed in memory when available to avoid re-reading.
func (s *Scanner) recordDuplicate(path string, size int64, st *scanState) {
	if size < s.cfg.Files.DuplicateThresholdBytes {
		return
	}

	var sum uint64
	if text, ok := st.res.FileContents[path]; ok {
		sum = xxh3.HashString(text)
	} else {
		var err error
		sum, err = s.hashFile(path, st)
		if err != nil {
			s.log.Debug().Str("file", path).Err(err).Msg("hashing failed")
			return
		}
	}

	key := hashKey{size: size, hash: sum}
	if _, seen := st.hashIndex[key]; !seen {
		st.hashIndex[key] = path
		return
	}

	st.res.DuplicateFiles = append(st.res.DuplicateFiles, path)
	st.res.duplicateSet[path] = true
	// Duplicates are excluded from analysis, so their pre-read text is
	// dropped.
	delete(st.res.FileContents, path)
}

// hashFile streams a file through xxh3 without loading it fully.
func (s *Scanner) hashFile(path string, st *scanState) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	h := xxh3.New()
	start := time.Now()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, err
	}
	st.res.BytesRead += n
	if s.tracker.TrackingIO() {
		s.tracker.RecordIO(n, time.Since(start))
	}
	return h.Sum64(), nil
}

// Package gitstats collects repository metadata by shelling out to git.
// Every lookup degrades gracefully: a missing git binary or a directory
// that is not a repository yields a nil Stats, never an error surfaced to
// the scan itself.
package gitstats

import (
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Stats is a snapshot of repository state at scan time.
type Stats struct {
	Branch        string    `json:"branch"`
	Remote        string    `json:"remote,omitempty"`
	CommitCount   int       `json:"commit_count"`
	Contributors  int       `json:"contributors"`
	LastCommit    time.Time `json:"last_commit"`
	RecentCommits int       `json:"recent_commits"`
}

// Collect gathers git statistics for dir. Returns nil when dir is not
// inside a git work tree or git is unavailable.
func Collect(dir string, log zerolog.Logger) *Stats {
	if _, err := exec.LookPath("git"); err != nil {
		log.Debug().Msg("git not found in PATH, skipping repository stats")
		return nil
	}
	if !isWorkTree(dir) {
		return nil
	}

	s := &Stats{
		Branch:        runGit(dir, "rev-parse", "--abbrev-ref", "HEAD"),
		Remote:        runGit(dir, "remote", "get-url", "origin"),
		CommitCount:   runGitCount(dir, "rev-list", "--count", "HEAD"),
		Contributors:  countLines(runGit(dir, "shortlog", "-s", "HEAD")),
		RecentCommits: countLines(runGit(dir, "log", "--oneline", "--since=30 days ago")),
	}
	if ts := runGit(dir, "log", "-1", "--format=%cI"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			s.LastCommit = t
		}
	}
	return s
}

func isWorkTree(dir string) bool {
	return runGit(dir, "rev-parse", "--is-inside-work-tree") == "true"
}

// runGit executes a git subcommand in dir and returns trimmed stdout,
// empty on any failure.
func runGit(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func runGitCount(dir string, args ...string) int {
	n, err := strconv.Atoi(runGit(dir, args...))
	if err != nil {
		return 0
	}
	return n
}

func countLines(out string) int {
	if out == "" {
		return 0
	}
	return len(strings.Split(out, "\n"))
}

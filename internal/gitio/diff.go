// Package gitio is the git collaborator: changed-file discovery with diff
// statistics, rename detection scores, and raw content access. All diff
// computation is delegated to the git binary; this package only parses.
package gitio

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DiffStat carries the per-file line statistics of one changed file.
type DiffStat struct {
	Path             string
	OldPath          string
	LinesAdded       int
	LinesDeleted     int
	IsRename         bool
	RenameSimilarity int // git similarity percentage, 0-100
}

// Repo exposes the narrow file/diff surface the scan pipeline consumes.
type Repo struct {
	Root string
}

// DiscoverFiles lists all tracked files.
func (r *Repo) DiscoverFiles() ([]string, error) {
	out, err := r.git("ls-files")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ln := range strings.Split(out, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			files = append(files, ln)
		}
	}
	return files, nil
}

// Content reads one file from the worktree.
func (r *Repo) Content(path string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(r.Root, path))
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return b, nil
}

// ChangedFiles returns diff statistics against base, with rename detection.
func (r *Repo) ChangedFiles(base string) ([]DiffStat, error) {
	numstat, err := r.git("diff", "--numstat", "-M", base)
	if err != nil {
		return nil, err
	}
	nameStatus, err := r.git("diff", "--name-status", "-M", base)
	if err != nil {
		return nil, err
	}

	stats := ParseNumstat(numstat)
	renames := ParseNameStatus(nameStatus)
	for i := range stats {
		if sim, ok := renames[stats[i].Path]; ok {
			stats[i].IsRename = true
			stats[i].RenameSimilarity = sim
		}
	}
	return stats, nil
}

// DiffText returns the full textual diff against base, used for term-index
// relevance queries.
func (r *Repo) DiffText(base string) (string, error) {
	return r.git("diff", "-M", base)
}

func (r *Repo) git(args ...string) (string, error) {
	full := append([]string{"-C", r.Root}, args...)
	out, err := exec.Command("git", full...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s failed:\n%s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// ParseNumstat parses `git diff --numstat -M` output. Binary files report
// "-" for both counts and are treated as zero lines changed; malformed lines
// are dropped rather than raised.
func ParseNumstat(out string) []DiffStat {
	var stats []DiffStat
	for _, ln := range strings.Split(out, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		fields := strings.SplitN(ln, "\t", 3)
		if len(fields) != 3 {
			continue
		}

		added := parseCount(fields[0])
		deleted := parseCount(fields[1])
		path, oldPath, isRename := parseNumstatPath(fields[2])
		if path == "" {
			continue
		}

		stats = append(stats, DiffStat{
			Path:         path,
			OldPath:      oldPath,
			LinesAdded:   added,
			LinesDeleted: deleted,
			IsRename:     isRename,
		})
	}
	return stats
}

// parseCount treats binary markers ("-") and garbage as zero.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseNumstatPath handles the rename notations git emits in numstat:
// "old => new" and the brace form "dir/{old => new}/file".
func parseNumstatPath(field string) (path, oldPath string, isRename bool) {
	if !strings.Contains(field, " => ") {
		return field, "", false
	}

	if open := strings.Index(field, "{"); open >= 0 {
		end := strings.Index(field, "}")
		if end > open {
			inner := field[open+1 : end]
			parts := strings.SplitN(inner, " => ", 2)
			if len(parts) == 2 {
				prefix, suffix := field[:open], field[end+1:]
				path = collapseSlashes(prefix + parts[1] + suffix)
				oldPath = collapseSlashes(prefix + parts[0] + suffix)
				return path, oldPath, true
			}
		}
	}

	parts := strings.SplitN(field, " => ", 2)
	return parts[1], parts[0], true
}

// collapseSlashes fixes the "dir//file" and "/file" forms produced when a
// brace rename component is empty on one side.
func collapseSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return strings.TrimPrefix(p, "/")
}

// ParseNameStatus parses `git diff --name-status -M` output and returns the
// rename similarity score per new path (R095 → 95).
func ParseNameStatus(out string) map[string]int {
	renames := make(map[string]int)
	for _, ln := range strings.Split(out, "\n") {
		ln = strings.TrimSpace(ln)
		if !strings.HasPrefix(ln, "R") {
			continue
		}
		fields := strings.Split(ln, "\t")
		if len(fields) != 3 {
			continue
		}
		sim, err := strconv.Atoi(strings.TrimPrefix(fields[0], "R"))
		if err != nil || sim < 0 || sim > 100 {
			continue
		}
		renames[fields[2]] = sim
	}
	return renames
}

// Package junk scans a project tree for disposable files and removes them.
package junk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Match is one junk file or directory found during a scan.
type Match struct {
	Path  string
	Size  int64
	IsDir bool
}

// Scan walks root looking for file names matching the given glob patterns and
// directory names in dirNames. Matched directories are reported whole and not
// descended into. The .git directory is never entered or reported.
func Scan(root string, patterns, dirNames []string) ([]Match, error) {
	dirSet := make(map[string]bool, len(dirNames))
	for _, d := range dirNames {
		dirSet[d] = true
	}

	var matches []Match
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: skip it rather than abort the scan
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if name == ".git" {
				return filepath.SkipDir
			}
			if dirSet[name] {
				size, _ := dirSize(path)
				matches = append(matches, Match{Path: path, Size: size, IsDir: true})
				return filepath.SkipDir
			}
			return nil
		}

		for _, pattern := range patterns {
			ok, matchErr := filepath.Match(pattern, name)
			if matchErr != nil {
				return fmt.Errorf("bad pattern %q: %w", pattern, matchErr)
			}
			if ok {
				var size int64
				if info, ierr := d.Info(); ierr == nil {
					size = info.Size()
				}
				matches = append(matches, Match{Path: path, Size: size})
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Remove deletes the given matches, returning the bytes freed and the first
// few paths that could not be removed.
func Remove(matches []Match) (freed int64, failed []string) {
	for _, m := range matches {
		var err error
		if m.IsDir {
			err = os.RemoveAll(m.Path)
		} else {
			err = os.Remove(m.Path)
		}
		if err != nil {
			failed = append(failed, m.Path)
			continue
		}
		freed += m.Size
	}
	return freed, failed
}

// TotalSize sums the sizes of all matches.
func TotalSize(matches []Match) int64 {
	var total int64
	for _, m := range matches {
		total += m.Size
	}
	return total
}

// HumanSize formats a byte count for display.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			if info, ierr := d.Info(); ierr == nil {
				size += info.Size()
			}
		}
		return nil
	})
	return size, err
}

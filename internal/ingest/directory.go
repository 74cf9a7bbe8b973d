// Package ingest discovers page images on disk for batch processing.
package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sarthak-Sidhant/s1r/constants"
)

// DirStats counts what a directory scan saw.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// ScanPages walks root, skipping hidden entries, and returns the sorted
// paths of every supported page image. Unreadable entries are counted
// but do not abort the walk.
func ScanPages(root string) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var pages []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			if d == nil {
				// The root itself is unreadable.
				return walkErr
			}
			stats.Failed++
			return nil // continue walking
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !constants.IsImageExt(path) {
			return nil
		}
		stats.Matched++
		pages = append(pages, path)
		return nil
	})
	if err != nil {
		return pages, stats, err
	}

	sort.Strings(pages)
	return pages, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}

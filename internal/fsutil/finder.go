// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoExtensions is returned when FindFiles is called without extensions.
var ErrNoExtensions = errors.New("at least one extension is required")

// FindFiles walks rootPath and returns every regular file whose extension
// matches one of exts, compared case-insensitively. Hidden directories are
// skipped. The result is sorted.
func FindFiles(rootPath string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		return nil, ErrNoExtensions
	}
	want := make([]string, len(exts))
	for i, ext := range exts {
		want[i] = strings.ToLower(ext)
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != rootPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(want, strings.ToLower(filepath.Ext(d.Name()))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

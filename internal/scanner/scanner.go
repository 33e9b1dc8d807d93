// Package scanner walks the plugin monorepo and enumerates input files
// for documentation generation. Traversal uses filepath.WalkDir, whose
// lexical ordering keeps results stable across repeated runs.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Scanner finds documentation inputs below a root directory while skipping
// dependency-cache subtrees (node_modules by default).
type Scanner struct {
	exclude map[string]struct{}
}

// New creates a scanner that skips any directory whose name is in excludeDirs.
func New(excludeDirs []string) *Scanner {
	exclude := make(map[string]struct{}, len(excludeDirs))
	for _, d := range excludeDirs {
		exclude[d] = struct{}{}
	}
	return &Scanner{exclude: exclude}
}

// NameIs returns a predicate matching a file's base name case-insensitively.
func NameIs(want string) func(string) bool {
	return func(name string) bool { return strings.EqualFold(name, want) }
}

// FindFiles returns all file paths under root whose base name satisfies match.
// No matches yields an empty slice, not an error.
func (s *Scanner) FindFiles(root string, match func(name string) bool) ([]string, error) {
	found := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s.excluded(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if match(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}

// FindDirsEndingWith returns all directories under root whose path ends with
// suffix (e.g. "examples", "docs"). Excluded subtrees are never descended.
func (s *Scanner) FindDirsEndingWith(root, suffix string) ([]string, error) {
	found := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if s.excluded(d.Name()) {
			return fs.SkipDir
		}
		if strings.HasSuffix(filepath.ToSlash(path), suffix) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}

func (s *Scanner) excluded(name string) bool {
	_, ok := s.exclude[name]
	return ok
}

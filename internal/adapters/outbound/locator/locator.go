// Package locator implements domain.FileLocator using doublestar globs.
package locator

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobLocator resolves layer file patterns against a project root.
type GlobLocator struct{}

func New() *GlobLocator {
	return &GlobLocator{}
}

// Resolve expands each pattern independently and returns the deduplicated
// union of matches that are existing regular files, as root-relative slash
// paths sorted for stable detector input order. Patterns matching nothing,
// including patterns whose base directory does not exist, contribute an
// empty set rather than an error.
func (l *GlobLocator) Resolve(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	rootFS := os.DirFS(root)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(rootFS, pattern)
		if err != nil {
			// Only malformed patterns reach here; missing paths do not.
			return nil, err
		}

		for _, match := range matches {
			info, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(match)))
			if statErr != nil || !info.Mode().IsRegular() {
				continue
			}
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

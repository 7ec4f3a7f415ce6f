// Package manifest implements domain.ManifestLoader for Cargo-style TOML
// manifests.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/layerguard/layerguard/internal/domain"
)

// TOMLLoader reads the dependency manifest from disk.
type TOMLLoader struct{}

func New() *TOMLLoader { return &TOMLLoader{} }

type rawManifest struct {
	Dependencies map[string]any `toml:"dependencies"`
}

// Load parses the manifest at path. A missing manifest is not an error: it
// returns an empty manifest, and the caller emits nothing for it. A manifest
// that fails to parse returns the parser's error so the caller can convert
// it into a MANIFEST_PARSE_ERROR violation instead of aborting the run; the
// manifest comes back too, raw text populated, so callers that scan the text
// without parsing still have their input.
//
// Dependency entries come back sorted by name: TOML table order does not
// survive decoding, and report determinism requires a fixed order.
func (l *TOMLLoader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &domain.Manifest{Path: path}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m := &domain.Manifest{Path: path, Raw: string(data)}

	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return m, fmt.Errorf("parsing %s: %w", path, err)
	}

	names := make([]string, 0, len(raw.Dependencies))
	for name := range raw.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m.Dependencies = append(m.Dependencies, decodeEntry(name, raw.Dependencies[name]))
	}

	return m, nil
}

// decodeEntry interprets one dependency value: either a bare version string
// or a table with optional features and default-features keys.
func decodeEntry(name string, value any) domain.DependencyEntry {
	entry := domain.DependencyEntry{
		Name:            name,
		DefaultFeatures: true,
		Raw:             fmt.Sprintf("%s = %v", name, value),
	}

	table, ok := value.(map[string]any)
	if !ok {
		return entry
	}

	if features, ok := table["features"]; ok {
		entry.HasFeatureList = true
		if list, ok := features.([]any); ok {
			for _, f := range list {
				if s, ok := f.(string); ok {
					entry.Features = append(entry.Features, s)
				}
			}
		}
	}

	if def, ok := table["default-features"].(bool); ok {
		entry.DefaultFeatures = def
	}

	return entry
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/layerguard/layerguard/internal/domain"
)

const fileName = ".layerguard.yaml"

// YAMLLoader reads the optional .layerguard.yaml overlay.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .layerguard.yaml from projectPath.
// Returns the defaults if the file does not exist; the compiled-in rules are
// always the base case.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultProjectConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging so typos in the raw input surface directly.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeDefaults(cfg), nil
}

// mergeDefaults fills unset fields with the defaults. Explicit values win.
func mergeDefaults(cfg domain.ProjectConfig) domain.ProjectConfig {
	defaults := domain.DefaultProjectConfig()
	if cfg.Profile == "" {
		cfg.Profile = defaults.Profile
	}
	if cfg.IOPolicy == "" {
		cfg.IOPolicy = defaults.IOPolicy
	}
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = defaults.ManifestPath
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = defaults.ReportPath
	}
	return cfg
}

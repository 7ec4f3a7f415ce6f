package domain

import "fmt"

// DefaultManifestPath is the conventional root-level manifest location.
const DefaultManifestPath = "Cargo.toml"

// DefaultReportPath is where the machine report artifact is written.
const DefaultReportPath = "architecture_report.json"

// ProjectConfig holds the optional per-project overlay loaded from
// .layerguard.yaml. The zero value plus defaults reproduces the compiled-in
// behavior exactly; the built-in registry remains the base case.
type ProjectConfig struct {
	Profile               Profile       `yaml:"profile"                 json:"profile,omitempty"`
	IOPolicy              IOPolicy      `yaml:"io_policy"               json:"io_policy,omitempty"`
	ManifestPath          string        `yaml:"manifest_path"           json:"manifest_path,omitempty"`
	ReportPath            string        `yaml:"report_path"             json:"report_path,omitempty"`
	ExtraForbiddenImports []string      `yaml:"extra_forbidden_imports" json:"extra_forbidden_imports,omitempty"`
	Layers                []LayerConfig `yaml:"layers"                  json:"layers,omitempty"`
}

// LayerConfig overrides or adds one layer rule. Unset fields fall back to
// the built-in rule of the same name, when one exists.
type LayerConfig struct {
	Name             string              `yaml:"name"              json:"name"`
	FilePatterns     []string            `yaml:"file_patterns"     json:"file_patterns,omitempty"`
	ForbiddenImports []string            `yaml:"forbidden_imports" json:"forbidden_imports,omitempty"`
	ForbiddenDeps    map[string]DepValue `yaml:"forbidden_deps"    json:"forbidden_deps,omitempty"`
}

// DepValue is the YAML form of a forbidden dependency: either the "*"
// wildcard string or a list of forbidden feature names.
type DepValue struct {
	Wildcard bool
	Features []string
}

// UnmarshalYAML accepts `dep: "*"` and `dep: [feat, ...]`.
func (d *DepValue) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		if s != Wildcard {
			return fmt.Errorf("forbidden dependency value must be %q or a feature list, got %q", Wildcard, s)
		}
		d.Wildcard = true
		return nil
	}

	var features []string
	if err := unmarshal(&features); err != nil {
		return fmt.Errorf("forbidden dependency value must be %q or a feature list: %w", Wildcard, err)
	}
	d.Features = features
	return nil
}

// DefaultProjectConfig returns the overlay that changes nothing.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Profile:      ProfileFull,
		IOPolicy:     IOPolicySkip,
		ManifestPath: DefaultManifestPath,
		ReportPath:   DefaultReportPath,
	}
}

// Validate checks the overlay for invalid values before it is applied.
func (c ProjectConfig) Validate() error {
	if c.Profile != "" {
		if err := ValidateProfile(c.Profile); err != nil {
			return err
		}
	}
	if c.IOPolicy != "" {
		if err := ValidateIOPolicy(c.IOPolicy); err != nil {
			return err
		}
	}
	for _, layer := range c.Layers {
		if layer.Name == "" {
			return fmt.Errorf("layer override missing name")
		}
	}
	return nil
}

// BuildRegistry constructs the effective registry from the overlay: the
// built-in "core" rule, extra forbidden imports appended to every layer, and
// layer overrides applied field by field on top of any built-in rule of the
// same name.
func BuildRegistry(cfg ProjectConfig) *Registry {
	base := map[string]LayerRule{"core": CoreLayerRule()}
	order := []string{"core"}

	for _, override := range cfg.Layers {
		rule, ok := base[override.Name]
		if !ok {
			rule = LayerRule{Name: override.Name}
			order = append(order, override.Name)
		}
		if len(override.FilePatterns) > 0 {
			rule.FilePatterns = override.FilePatterns
		}
		if len(override.ForbiddenImports) > 0 {
			rule.ForbiddenImports = override.ForbiddenImports
		}
		if len(override.ForbiddenDeps) > 0 {
			deps := make(map[string]ForbiddenDep, len(override.ForbiddenDeps))
			for name, v := range override.ForbiddenDeps {
				deps[name] = ForbiddenDep{Wildcard: v.Wildcard, Features: v.Features}
			}
			rule.ForbiddenDeps = deps
		}
		base[override.Name] = rule
	}

	profile := cfg.Profile
	if profile == "" {
		profile = ProfileFull
	}
	ioPolicy := cfg.IOPolicy
	if ioPolicy == "" {
		ioPolicy = IOPolicySkip
	}

	rules := make([]LayerRule, 0, len(order))
	for _, name := range order {
		rule := base[name]
		rule.ForbiddenImports = append(rule.ForbiddenImports, cfg.ExtraForbiddenImports...)
		rules = append(rules, rule)
	}

	return NewRegistry(profile, ioPolicy, rules...)
}

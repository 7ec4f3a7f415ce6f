package domain

import "fmt"

// Profile selects which detection strategy variant the engine runs.
type Profile string

const (
	// ProfileFull runs the import-keyword-gated scans plus manifest
	// feature-level evaluation.
	ProfileFull Profile = "full"
	// ProfileSimple runs the every-line regex deny list and the substring
	// manifest scan. Looser gating, broader matches.
	ProfileSimple Profile = "simple"
)

// ValidProfiles enumerates all recognized strictness profiles.
var ValidProfiles = []Profile{ProfileFull, ProfileSimple}

// IOPolicy controls how unreadable layer files are handled.
type IOPolicy string

const (
	// IOPolicySkip treats an unreadable matched file as "no violations".
	IOPolicySkip IOPolicy = "skip"
	// IOPolicyFail aborts the run when a matched file cannot be read.
	IOPolicyFail IOPolicy = "fail"
)

// Wildcard marks an external package as wholly forbidden, regardless of how
// it is configured in the manifest.
const Wildcard = "*"

// ForbiddenDep describes what a layer forbids about one external package:
// either the package entirely, or a set of its named features.
type ForbiddenDep struct {
	// Wildcard forbids the mere presence of the package.
	Wildcard bool `json:"wildcard,omitempty"`
	// Features lists forbidden feature names when the package itself is
	// allowed. Ignored when Wildcard is set.
	Features []string `json:"features,omitempty"`
}

// WholePackage returns a ForbiddenDep forbidding the package outright.
func WholePackage() ForbiddenDep { return ForbiddenDep{Wildcard: true} }

// OnlyFeatures returns a ForbiddenDep forbidding the named features.
func OnlyFeatures(features ...string) ForbiddenDep {
	return ForbiddenDep{Features: features}
}

// LayerRule identifies one protected layer: which files belong to it and what
// those files must not reference. Immutable after construction; every
// detector reads it, only the registry owns it.
type LayerRule struct {
	Name             string                  `json:"name"`
	FilePatterns     []string                `json:"file_patterns"`
	ForbiddenImports []string                `json:"forbidden_imports"`
	ForbiddenDeps    map[string]ForbiddenDep `json:"forbidden_deps"`
}

// Snapshot is a serializable view of a registry's effective configuration.
type Snapshot struct {
	Profile          Profile     `json:"profile"`
	IOPolicy         IOPolicy    `json:"io_policy"`
	Layers           []LayerRule `json:"layers"`
	ForbiddenStdImps []string    `json:"forbidden_std_imports"`
}

// Snapshot returns the registry's rules in registration order.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Profile:          r.profile,
		IOPolicy:         r.ioPolicy,
		ForbiddenStdImps: ForbiddenStdImports,
	}
	for _, name := range r.order {
		s.Layers = append(s.Layers, r.rules[name])
	}
	return s
}

// Registry holds the layer rules for one invocation. It is an explicitly
// constructed value, never process-wide state; multi-project use constructs a
// fresh registry per run.
type Registry struct {
	profile  Profile
	ioPolicy IOPolicy
	rules    map[string]LayerRule
	order    []string
}

// NewRegistry builds a registry from the given rules.
func NewRegistry(profile Profile, ioPolicy IOPolicy, rules ...LayerRule) *Registry {
	r := &Registry{
		profile:  profile,
		ioPolicy: ioPolicy,
		rules:    make(map[string]LayerRule, len(rules)),
	}
	for _, rule := range rules {
		if _, ok := r.rules[rule.Name]; !ok {
			r.order = append(r.order, rule.Name)
		}
		r.rules[rule.Name] = rule
	}
	return r
}

// LayerRuleFor returns the rule for the named layer.
func (r *Registry) LayerRuleFor(name string) (LayerRule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// LayerNames returns the layer names in registration order.
func (r *Registry) LayerNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Profile() Profile   { return r.profile }
func (r *Registry) IOPolicy() IOPolicy { return r.ioPolicy }

// ValidateProfile checks that p names a known strictness profile.
func ValidateProfile(p Profile) error {
	for _, v := range ValidProfiles {
		if p == v {
			return nil
		}
	}
	return fmt.Errorf("unknown profile %q (valid: %v)", p, ValidProfiles)
}

// ValidateIOPolicy checks that p names a known unreadable-file policy.
func ValidateIOPolicy(p IOPolicy) error {
	if p == IOPolicySkip || p == IOPolicyFail {
		return nil
	}
	return fmt.Errorf("unknown io_policy %q (valid: skip, fail)", p)
}

// ForbiddenStdImports is the deny list of standard-library path prefixes
// considered too low-level for a protected layer. A hit only counts on lines
// that also carry an import-or-extern keyword, so the token appearing inside
// ordinary code is not flagged by the import detector.
var ForbiddenStdImports = []string{
	"std::net",
	"std::fs",
	// PathBuf stays allowed for abstractions; direct Path usage is not.
	"std::path::Path",
}

// CoreLayerRule returns the built-in rule set for the "core" layer.
func CoreLayerRule() LayerRule {
	return LayerRule{
		Name: "core",
		FilePatterns: []string{
			"src/core/**/*.rs",
			"src/lib.rs",
			"src/error.rs",
			"src/language_detector*.rs",
			"src/translator*.rs",
			"src/translation*.rs",
		},
		ForbiddenImports: []string{
			"ui", "network", "filesystem", "web", "http", "tcp", "gui",
		},
		ForbiddenDeps: map[string]ForbiddenDep{
			// Networking: tokio stays usable, its networking features do not.
			"tokio":     OnlyFeatures("net", "tcp", "udp"),
			"reqwest":   WholePackage(),
			"hyper":     WholePackage(),
			"actix-web": WholePackage(),
			"warp":      WholePackage(),
			"axum":      WholePackage(),
			"surf":      WholePackage(),
			"ureq":      WholePackage(),

			// UI / GUI toolkits.
			"gtk":       WholePackage(),
			"egui":      WholePackage(),
			"tauri":     WholePackage(),
			"druid":     WholePackage(),
			"iced":      WholePackage(),
			"conrod":    WholePackage(),
			"cursive":   WholePackage(),
			"tui":       WholePackage(),
			"crossterm": WholePackage(),

			// Direct filesystem access; the core layer uses abstracted I/O.
			"notify":      WholePackage(),
			"walkdir":     WholePackage(),
			"glob":        WholePackage(),
			"directories": WholePackage(),
		},
	}
}

// DefaultRegistry returns the compiled-in registry: the single "core" layer
// under the full profile with skip-on-unreadable tolerance.
func DefaultRegistry() *Registry {
	return NewRegistry(ProfileFull, IOPolicySkip, CoreLayerRule())
}

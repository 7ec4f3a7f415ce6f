package detect

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/layerguard/layerguard/internal/domain"
)

// ScanManifest evaluates the parsed manifest against the layer's forbidden
// dependencies. All findings are file-level (line 0).
//
// Per declared dependency found in the forbidden set:
//   - wildcard entry: the package's presence alone is a violation, whatever
//     its configuration;
//   - feature set with an explicit feature list: each forbidden feature
//     present is a violation;
//   - feature set without an explicit list and with default features on:
//     the manifest cannot prove which features are active, so a
//     lower-confidence POTENTIAL_VIOLATION surfaces the uncertainty. False
//     positives are preferred over false negatives here.
func ScanManifest(manifest *domain.Manifest, rule domain.LayerRule) []domain.Violation {
	var violations []domain.Violation

	for _, dep := range manifest.Dependencies {
		forbidden, ok := rule.ForbiddenDeps[dep.Name]
		if !ok {
			continue
		}

		if forbidden.Wildcard {
			violations = append(violations, domain.Violation{
				File: manifest.Path,
				Line: 0,
				Kind: domain.KindForbiddenDependency,
				Detail: fmt.Sprintf("Layer '%s' cannot use forbidden dependency '%s'",
					rule.Name, dep.Name),
			})
			continue
		}

		if dep.HasFeatureList {
			for _, forbiddenFeature := range forbidden.Features {
				for _, enabled := range dep.Features {
					if enabled == forbiddenFeature {
						violations = append(violations, domain.Violation{
							File: manifest.Path,
							Line: 0,
							Kind: domain.KindForbiddenFeature,
							Detail: fmt.Sprintf("Layer '%s' cannot use forbidden feature '%s' of '%s'",
								rule.Name, forbiddenFeature, dep.Name),
						})
					}
				}
			}
		} else if dep.DefaultFeatures {
			// Which features are default-on lives in external crate
			// metadata, out of this tool's reach.
			violations = append(violations, domain.Violation{
				File: manifest.Path,
				Line: 0,
				Kind: domain.KindPotentialViolation,
				Detail: fmt.Sprintf("Layer '%s' uses '%s' with default features - verify no forbidden features: %v",
					rule.Name, dep.Name, forbidden.Features),
			})
		}
	}

	return violations
}

// ScanManifestSimple runs the simplified profile's manifest pass: a
// multi-line substring match of `name =` at line start for every wildcard
// dependency, over the raw manifest text. Feature-level evaluation is not
// attempted.
func ScanManifestSimple(manifest *domain.Manifest, rule domain.LayerRule) []domain.Violation {
	var violations []domain.Violation

	for _, dep := range wildcardNames(rule) {
		pattern := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(dep) + `\s*=`)
		if pattern.MatchString(manifest.Raw) {
			violations = append(violations, domain.Violation{
				File: manifest.Path,
				Line: 0,
				Kind: domain.KindForbiddenDependency,
				Detail: fmt.Sprintf("Layer '%s' cannot use forbidden dependency '%s'",
					rule.Name, dep),
			})
		}
	}

	return violations
}

// wildcardNames returns the wholly-forbidden dependency names in a fixed
// order, so simple-profile output is deterministic.
func wildcardNames(rule domain.LayerRule) []string {
	var names []string
	for name, dep := range rule.ForbiddenDeps {
		if dep.Wildcard {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

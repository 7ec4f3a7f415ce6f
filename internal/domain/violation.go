package domain

import "fmt"

// ViolationKind classifies one category of boundary breach. The set is
// closed: downstream CI consumers match on these exact strings.
type ViolationKind string

const (
	// KindForbiddenImport marks an import statement referencing a forbidden
	// layer module.
	KindForbiddenImport ViolationKind = "FORBIDDEN_IMPORT"
	// KindForbiddenStdImport marks use of a denied standard-library path.
	KindForbiddenStdImport ViolationKind = "FORBIDDEN_STD_IMPORT"
	// KindForbiddenDependency marks a manifest dependency that is wholly
	// forbidden for the layer.
	KindForbiddenDependency ViolationKind = "FORBIDDEN_DEPENDENCY"
	// KindForbiddenFeature marks an explicitly enabled forbidden feature of
	// an otherwise-allowed dependency.
	KindForbiddenFeature ViolationKind = "FORBIDDEN_FEATURE"
	// KindPotentialViolation marks a dependency whose default features may
	// include a forbidden one; the manifest alone cannot prove it either
	// way, so the run flags it for review rather than passing silently.
	KindPotentialViolation ViolationKind = "POTENTIAL_VIOLATION"
	// KindManifestParseError marks a manifest that could not be parsed. The
	// run degrades to "cannot verify" instead of crashing.
	KindManifestParseError ViolationKind = "MANIFEST_PARSE_ERROR"
	// KindForbiddenAPIUsage marks in-place use of a forbidden API symbol,
	// caught whether or not an import statement is present. The wire name is
	// kept from the historical report schema.
	KindForbiddenAPIUsage ViolationKind = "TOKIO_NETWORK_USAGE"
)

// Violation is one detected boundary breach. Value object: created once by a
// detector, never mutated, consumed only by the report.
//
// The json field names are the machine-report contract; they must not change.
type Violation struct {
	// File is the path of the offending artifact.
	File string `json:"file"`
	// Line is the 1-based physical line number, or 0 for file-level
	// violations such as manifest findings.
	Line int `json:"line"`
	// Kind is the violation category.
	Kind ViolationKind `json:"type"`
	// Detail explains the breach and echoes the offending text verbatim for
	// line-derived kinds.
	Detail string `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d [%s] %s", v.File, v.Line, v.Kind, v.Detail)
}

// Report is the outcome of one run: the ordered violation sequence across
// all detectors. Created empty, appended to in detector order, finalized
// exactly once.
type Report struct {
	Violations []Violation `json:"violations"`
}

// Append adds one detector's output, preserving emission order.
func (r *Report) Append(violations ...Violation) {
	r.Violations = append(r.Violations, violations...)
}

// IsClean reports whether the run found no violations.
func (r *Report) IsClean() bool { return len(r.Violations) == 0 }

// ExitCode derives the process exit status. Exactly two outcomes exist.
func (r *Report) ExitCode() int {
	if r.IsClean() {
		return 0
	}
	return 1
}

// KindGroup is one human-report group: a kind and its violations in emission
// order.
type KindGroup struct {
	Kind       ViolationKind
	Violations []Violation
}

// GroupByKind groups violations by kind, kinds in first-seen order and
// violations within a kind in emission order.
func (r *Report) GroupByKind() []KindGroup {
	index := make(map[ViolationKind]int)
	var groups []KindGroup
	for _, v := range r.Violations {
		i, ok := index[v.Kind]
		if !ok {
			i = len(groups)
			index[v.Kind] = i
			groups = append(groups, KindGroup{Kind: v.Kind})
		}
		groups[i].Violations = append(groups[i].Violations, v)
	}
	return groups
}

// CountByKind returns the number of violations per kind.
func (r *Report) CountByKind() map[ViolationKind]int {
	counts := make(map[ViolationKind]int)
	for _, v := range r.Violations {
		counts[v.Kind]++
	}
	return counts
}

package detect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerguard/layerguard/internal/domain"
	"github.com/layerguard/layerguard/internal/domain/detect"
)

func manifestWith(entries ...domain.DependencyEntry) *domain.Manifest {
	return &domain.Manifest{Path: "Cargo.toml", Dependencies: entries}
}

func TestScanManifest_WildcardAlwaysOneViolation(t *testing.T) {
	cases := []domain.DependencyEntry{
		{Name: "reqwest", DefaultFeatures: true},
		{Name: "reqwest", HasFeatureList: true, Features: []string{"json"}},
		{Name: "reqwest", DefaultFeatures: false},
	}

	for _, entry := range cases {
		violations := detect.ScanManifest(manifestWith(entry), coreRule())

		require.Len(t, violations, 1)
		assert.Equal(t, domain.KindForbiddenDependency, violations[0].Kind)
		assert.Equal(t, "Cargo.toml", violations[0].File)
		assert.Equal(t, 0, violations[0].Line)
		assert.Contains(t, violations[0].Detail, "'reqwest'")
	}
}

func TestScanManifest_FeatureIntersection(t *testing.T) {
	entry := domain.DependencyEntry{
		Name:           "tokio",
		HasFeatureList: true,
		Features:       []string{"net", "time"},
	}

	violations := detect.ScanManifest(manifestWith(entry), coreRule())

	require.Len(t, violations, 1)
	assert.Equal(t, domain.KindForbiddenFeature, violations[0].Kind)
	assert.Contains(t, violations[0].Detail, "'net'")
	assert.Contains(t, violations[0].Detail, "'tokio'")
}

func TestScanManifest_AllowedFeaturesOnly(t *testing.T) {
	entry := domain.DependencyEntry{
		Name:           "tokio",
		HasFeatureList: true,
		Features:       []string{"time"},
	}

	violations := detect.ScanManifest(manifestWith(entry), coreRule())
	assert.Empty(t, violations)
}

func TestScanManifest_MultipleForbiddenFeatures(t *testing.T) {
	entry := domain.DependencyEntry{
		Name:           "tokio",
		HasFeatureList: true,
		Features:       []string{"net", "udp", "macros"},
	}

	violations := detect.ScanManifest(manifestWith(entry), coreRule())

	require.Len(t, violations, 2)
	assert.Equal(t, domain.KindForbiddenFeature, violations[0].Kind)
	assert.Equal(t, domain.KindForbiddenFeature, violations[1].Kind)
}

func TestScanManifest_DefaultFeaturesUnverifiable(t *testing.T) {
	entry := domain.DependencyEntry{Name: "tokio", DefaultFeatures: true}

	violations := detect.ScanManifest(manifestWith(entry), coreRule())

	require.Len(t, violations, 1)
	assert.Equal(t, domain.KindPotentialViolation, violations[0].Kind)
	assert.Equal(t, 0, violations[0].Line)
	assert.Contains(t, violations[0].Detail, "default features")
}

func TestScanManifest_DefaultFeaturesDisabledIsClean(t *testing.T) {
	entry := domain.DependencyEntry{Name: "tokio", DefaultFeatures: false}

	violations := detect.ScanManifest(manifestWith(entry), coreRule())
	assert.Empty(t, violations)
}

func TestScanManifest_UnlistedDependencyIgnored(t *testing.T) {
	entry := domain.DependencyEntry{Name: "serde", DefaultFeatures: true}

	violations := detect.ScanManifest(manifestWith(entry), coreRule())
	assert.Empty(t, violations)
}

func TestScanManifestSimple_SubstringMatch(t *testing.T) {
	m := &domain.Manifest{
		Path: "Cargo.toml",
		Raw:  "[dependencies]\nserde = \"1\"\nreqwest = { version = \"0.12\" }\nwalkdir = \"2\"\n",
	}

	violations := detect.ScanManifestSimple(m, coreRule())

	require.Len(t, violations, 2)
	// Wildcard names are checked in sorted order for determinism.
	assert.Contains(t, violations[0].Detail, "'reqwest'")
	assert.Contains(t, violations[1].Detail, "'walkdir'")
	for _, v := range violations {
		assert.Equal(t, domain.KindForbiddenDependency, v.Kind)
		assert.Equal(t, 0, v.Line)
	}
}

func TestScanManifestSimple_FeatureLimitedDepNotMatched(t *testing.T) {
	// tokio is feature-limited, not a wildcard; the simple pass skips it.
	m := &domain.Manifest{
		Path: "Cargo.toml",
		Raw:  "[dependencies]\ntokio = { version = \"1\", features = [\"net\"] }\n",
	}

	violations := detect.ScanManifestSimple(m, coreRule())
	assert.Empty(t, violations)
}

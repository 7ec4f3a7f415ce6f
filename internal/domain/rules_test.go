package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerguard/layerguard/internal/domain"
)

func TestDefaultRegistry_CoreLayer(t *testing.T) {
	registry := domain.DefaultRegistry()

	rule, ok := registry.LayerRuleFor("core")
	require.True(t, ok)
	assert.Equal(t, "core", rule.Name)
	assert.Contains(t, rule.ForbiddenImports, "network")
	assert.Contains(t, rule.ForbiddenImports, "gui")
	assert.NotEmpty(t, rule.FilePatterns)

	assert.Equal(t, domain.ProfileFull, registry.Profile())
	assert.Equal(t, domain.IOPolicySkip, registry.IOPolicy())
}

func TestDefaultRegistry_ForbiddenDeps(t *testing.T) {
	rule := domain.CoreLayerRule()

	tokio, ok := rule.ForbiddenDeps["tokio"]
	require.True(t, ok)
	assert.False(t, tokio.Wildcard)
	assert.Equal(t, []string{"net", "tcp", "udp"}, tokio.Features)

	reqwest, ok := rule.ForbiddenDeps["reqwest"]
	require.True(t, ok)
	assert.True(t, reqwest.Wildcard)
}

func TestRegistry_UnknownLayer(t *testing.T) {
	registry := domain.DefaultRegistry()
	_, ok := registry.LayerRuleFor("adapters")
	assert.False(t, ok)
}

func TestRegistry_LayerNamesOrdered(t *testing.T) {
	registry := domain.NewRegistry(domain.ProfileFull, domain.IOPolicySkip,
		domain.LayerRule{Name: "core"},
		domain.LayerRule{Name: "domain"},
	)
	assert.Equal(t, []string{"core", "domain"}, registry.LayerNames())
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, domain.ValidateProfile(domain.ProfileFull))
	assert.NoError(t, domain.ValidateProfile(domain.ProfileSimple))
	assert.Error(t, domain.ValidateProfile("strict"))
}

func TestValidateIOPolicy(t *testing.T) {
	assert.NoError(t, domain.ValidateIOPolicy(domain.IOPolicySkip))
	assert.NoError(t, domain.ValidateIOPolicy(domain.IOPolicyFail))
	assert.Error(t, domain.ValidateIOPolicy("ignore"))
}

func TestRegistry_Snapshot(t *testing.T) {
	snapshot := domain.DefaultRegistry().Snapshot()

	assert.Equal(t, domain.ProfileFull, snapshot.Profile)
	require.Len(t, snapshot.Layers, 1)
	assert.Equal(t, "core", snapshot.Layers[0].Name)
	assert.Contains(t, snapshot.ForbiddenStdImps, "std::net")
}

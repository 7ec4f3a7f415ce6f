package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerguard/layerguard/internal/domain"
)

func TestReport_ExitCodeContract(t *testing.T) {
	clean := &domain.Report{}
	assert.True(t, clean.IsClean())
	assert.Equal(t, 0, clean.ExitCode())

	dirty := &domain.Report{}
	dirty.Append(domain.Violation{Kind: domain.KindPotentialViolation})
	assert.False(t, dirty.IsClean())
	assert.Equal(t, 1, dirty.ExitCode())
}

func TestReport_GroupByKindFirstSeenOrder(t *testing.T) {
	r := &domain.Report{}
	r.Append(
		domain.Violation{Kind: domain.KindForbiddenImport, Detail: "a"},
		domain.Violation{Kind: domain.KindForbiddenDependency, Detail: "b"},
		domain.Violation{Kind: domain.KindForbiddenImport, Detail: "c"},
		domain.Violation{Kind: domain.KindForbiddenAPIUsage, Detail: "d"},
	)

	groups := r.GroupByKind()

	require.Len(t, groups, 3)
	assert.Equal(t, domain.KindForbiddenImport, groups[0].Kind)
	assert.Equal(t, domain.KindForbiddenDependency, groups[1].Kind)
	assert.Equal(t, domain.KindForbiddenAPIUsage, groups[2].Kind)

	// Within a kind, emission order is preserved.
	require.Len(t, groups[0].Violations, 2)
	assert.Equal(t, "a", groups[0].Violations[0].Detail)
	assert.Equal(t, "c", groups[0].Violations[1].Detail)
}

func TestReport_CountByKind(t *testing.T) {
	r := &domain.Report{}
	r.Append(
		domain.Violation{Kind: domain.KindForbiddenImport},
		domain.Violation{Kind: domain.KindForbiddenImport},
		domain.Violation{Kind: domain.KindForbiddenFeature},
	)

	counts := r.CountByKind()
	assert.Equal(t, 2, counts[domain.KindForbiddenImport])
	assert.Equal(t, 1, counts[domain.KindForbiddenFeature])
}

func TestViolation_MachineRecordFieldNames(t *testing.T) {
	// The json field names are the CI contract; a rename breaks consumers.
	v := domain.Violation{
		File:   "src/lib.rs",
		Line:   3,
		Kind:   domain.KindForbiddenImport,
		Detail: "use crate::network::client;",
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "src/lib.rs", record["file"])
	assert.Equal(t, float64(3), record["line"])
	assert.Equal(t, "FORBIDDEN_IMPORT", record["type"])
	assert.Equal(t, "use crate::network::client;", record["detail"])
	assert.Len(t, record, 4)
}

func TestViolation_String(t *testing.T) {
	v := domain.Violation{File: "Cargo.toml", Line: 0, Kind: domain.KindForbiddenDependency, Detail: "no reqwest"}
	assert.Equal(t, "Cargo.toml:0 [FORBIDDEN_DEPENDENCY] no reqwest", v.String())
}

package reportfile_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerguard/layerguard/internal/adapters/outbound/reportfile"
	"github.com/layerguard/layerguard/internal/domain"
)

func TestWrite_FlatRecordSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "architecture_report.json")

	report := &domain.Report{}
	report.Append(
		domain.Violation{File: "src/lib.rs", Line: 3, Kind: domain.KindForbiddenImport, Detail: "use crate::network::client;"},
		domain.Violation{File: "Cargo.toml", Line: 0, Kind: domain.KindForbiddenDependency, Detail: "reqwest"},
	)

	require.NoError(t, reportfile.New().Write(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "src/lib.rs", records[0]["file"])
	assert.Equal(t, float64(3), records[0]["line"])
	assert.Equal(t, "FORBIDDEN_IMPORT", records[0]["type"])
	assert.Equal(t, float64(0), records[1]["line"])
}

func TestWrite_CleanRunWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "architecture_report.json")

	require.NoError(t, reportfile.New().Write(path, &domain.Report{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestWrite_CreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "report.json")

	require.NoError(t, reportfile.New().Write(path, &domain.Report{}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerguard/layerguard/internal/adapters/inbound/cli"
)

func TestRulesCommand(t *testing.T) {
	dir := cleanFixture(t)
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rules", dir})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "layer core")
	assert.Contains(t, output, "reqwest")
	assert.Contains(t, output, "std::net")
}

func TestRulesCommand_JSON(t *testing.T) {
	dir := cleanFixture(t)
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rules", dir, "--json"})
	require.NoError(t, cmd.Execute())

	var snapshot map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snapshot), "output should be valid JSON")
	assert.Equal(t, "full", snapshot["profile"])
	assert.Contains(t, snapshot, "layers")
	assert.Contains(t, snapshot, "forbidden_std_imports")
}

func TestRulesCommand_OverlayLayer(t *testing.T) {
	dir := cleanFixture(t)
	writeFixture(t, dir, ".layerguard.yaml",
		"layers:\n  - name: domain\n    file_patterns:\n      - \"src/domain/**/*.rs\"\n    forbidden_imports:\n      - cli\n")

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rules", dir, "--json"})
	require.NoError(t, cmd.Execute())

	var snapshot struct {
		Layers []struct {
			Name string `json:"name"`
		} `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snapshot))
	require.Len(t, snapshot.Layers, 2)
	assert.Equal(t, "core", snapshot.Layers[0].Name)
	assert.Equal(t, "domain", snapshot.Layers[1].Name)
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "layerguard")
}

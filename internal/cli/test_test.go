package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioA = `name: scenario_a
description: "Five values with a buffer of two"
input: [5, 3, 1, 4, 2]
buffer_size: 2
expect:
  output: [1, 2, 3, 4, 5]
assertions:
  - type: run_count
    count: 3
`

const goldenA = `{"scenario":"scenario_a","buffer_size":2,"values":5,"runs":3}
{"seq":1,"type":"run","values":[5,3]}
{"seq":2,"type":"run","values":[4,1]}
{"seq":3,"type":"run","values":[2]}
{"seq":4,"type":"emit","value":1}
{"seq":5,"type":"emit","value":2}
{"seq":6,"type":"emit","value":3}
{"seq":7,"type":"emit","value":4}
{"seq":8,"type":"emit","value":5}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func executeTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := executeTest(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := executeTest(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := executeTest(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := executeTest(t, "json", t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandPassesWithGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenario_a.yaml"), scenarioA)
	writeFile(t, filepath.Join(dir, "golden", "scenario_a.golden"), goldenA)

	out, err := executeTest(t, "text", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ scenario_a")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenario_a.yaml"), scenarioA)
	writeFile(t, filepath.Join(dir, "golden", "scenario_a.golden"), strings.Replace(goldenA, "[5,3]", "[3,5]", 1))

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ scenario_a")
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandUpdateWritesGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenario_a.yaml"), scenarioA)

	out, err := executeTest(t, "text", dir, "--update")
	require.NoError(t, err, out)
	assert.Contains(t, out, "golden updated")

	data, err := os.ReadFile(filepath.Join(dir, "golden", "scenario_a.golden"))
	require.NoError(t, err)
	assert.Equal(t, goldenA, string(data))
}

func TestTestCommandFailingScenarioJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), strings.Replace(scenarioA, "count: 3", "count: 4", 1))
	writeFile(t, filepath.Join(dir, "broken.yaml"), "name: broken\n")

	out, err := executeTest(t, "json", dir)
	require.Error(t, err)
	assert.True(t, Reported(err))

	var response struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, "E_TEST_FAILED", response.Error.Code)
	assert.Equal(t, 2, response.Data.Failed)
	assert.Equal(t, 0, response.Data.Passed)
}

func TestTestHelpText(t *testing.T) {
	out, err := executeTest(t, "text", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "scenarios")
	assert.Contains(t, out, "--update")
	assert.Contains(t, out, "--filter")
	assert.Contains(t, out, "scenarios-dir")
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "test1.yaml"), "")
	writeFile(t, filepath.Join(tmpDir, "test2.yml"), "")
	writeFile(t, filepath.Join(tmpDir, "ignore.txt"), "")
	writeFile(t, filepath.Join(tmpDir, "golden", "stale.yaml"), "")

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "scenario_a.yaml"), "")
	writeFile(t, filepath.Join(tmpDir, "scenario_b.yaml"), "")
	writeFile(t, filepath.Join(tmpDir, "zero_buffer.yaml"), "")

	files, err := findScenarioFiles(tmpDir, "scenario_*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	for _, f := range files {
		assert.True(t, strings.HasPrefix(filepath.Base(f), "scenario_"), f)
	}
}

func TestFindScenarioFilesSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "root.yaml"), "")
	writeFile(t, filepath.Join(tmpDir, "subdir", "sub.yaml"), "")

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestGoldenFilePath(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"/path/to/scenario.yaml", "/path/to/golden/scenario.golden"},
		{"/path/to/scenario.yml", "/path/to/golden/scenario.golden"},
		{"scenarios/test.yaml", "scenarios/golden/test.golden"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, goldenFilePath(tc.input))
	}
}

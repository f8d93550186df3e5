package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// snapshotHeader is the first line of a snapshot.
type snapshotHeader struct {
	Scenario   string `json:"scenario"`
	BufferSize int    `json:"buffer_size"`
	Values     int    `json:"values"`
	Runs       int    `json:"runs"`
	Error      string `json:"error,omitempty"`
}

// Snapshot renders a result as golden file content: a header line, then
// one line per trace event, each a JSON object.
func Snapshot(name string, result *Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	header := snapshotHeader{
		Scenario:   name,
		BufferSize: result.Stats.MaxBufferSize,
		Values:     result.Stats.Values,
		Runs:       result.Stats.Runs,
		Error:      result.ErrorCode,
	}
	if err := enc.Encode(header); err != nil {
		return nil, err
	}
	for _, event := range result.Trace {
		if err := enc.Encode(event); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}

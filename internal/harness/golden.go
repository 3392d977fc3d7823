package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot is the serialized form of a scenario run compared against
// golden files. Struct field order keeps the encoding deterministic.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Passed       bool         `json:"passed"`
	Failures     []string     `json:"failures,omitempty"`
	Trace        []TraceEvent `json:"trace"`
}

// marshalSnapshot encodes a snapshot without HTML escaping so effect names
// and durations survive verbatim.
func marshalSnapshot(s *TraceSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares the trace against the
// golden file testdata/golden/{scenario.Name}.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := TraceSnapshot{
		ScenarioName: result.ScenarioName,
		Passed:       result.Passed,
		Failures:     result.Failures,
		Trace:        result.Trace,
	}
	traceJSON, err := marshalSnapshot(&snapshot)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return result, nil
}

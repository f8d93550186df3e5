package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tapesort/internal/tape"
)

// Run backends for temporary runs.
const (
	RunsMemory = "memory"
	RunsFile   = "file"
	RunsSQLite = "sqlite"
)

// Scenario describes one sort and what it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the content of the input tape. Empty means an empty tape.
	Input []int32 `yaml:"input"`

	// BufferSize is the sorter's chunk size. Required; zero is allowed
	// so scenarios can exercise the configuration error.
	BufferSize *int `yaml:"buffer_size"`

	// Runs selects the run backend. Defaults to RunsMemory.
	Runs string `yaml:"runs,omitempty"`

	// RunBudget makes run creation fail once this many runs exist.
	RunBudget int `yaml:"run_budget,omitempty"`

	Expect ExpectClause `yaml:"expect"`

	// Assertions are checked after the sort, whether or not it failed.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause is the expected outcome: either an output or an error code.
type ExpectClause struct {
	Output []int32 `yaml:"output,omitempty"`
	Error  string  `yaml:"error,omitempty"`
}

// Assertion checks a property of the result.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Count is the expected number of runs (run_count).
	Count int `yaml:"count,omitempty"`

	// Lengths are the expected run lengths in creation order (run_lengths).
	Lengths []int `yaml:"lengths,omitempty"`
}

// Assertion type constants.
const (
	AssertSorted       = "sorted"
	AssertPermutation  = "permutation"
	AssertRunCount     = "run_count"
	AssertRunLengths   = "run_lengths"
	AssertRunsReleased = "runs_released"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Reject unknown fields so "assertion:" vs "assertions:" is caught
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if scenario.Runs == "" {
		scenario.Runs = RunsMemory
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.BufferSize == nil {
		return fmt.Errorf("buffer_size is required")
	}
	if *s.BufferSize < 0 {
		return fmt.Errorf("buffer_size must be non-negative, got %d", *s.BufferSize)
	}

	switch s.Runs {
	case "", RunsMemory, RunsFile, RunsSQLite:
	default:
		return fmt.Errorf("unknown runs backend %q", s.Runs)
	}
	if s.RunBudget < 0 {
		return fmt.Errorf("run_budget must be non-negative, got %d", s.RunBudget)
	}

	if s.Expect.Error != "" {
		if s.Expect.Output != nil {
			return fmt.Errorf("expect: output and error are mutually exclusive")
		}
		switch tape.ErrorCode(s.Expect.Error) {
		case tape.ErrCodeOutOfRange, tape.ErrCodeResourceUnavailable, tape.ErrCodeConfiguration:
		default:
			return fmt.Errorf("expect: unknown error code %q", s.Expect.Error)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSorted, AssertPermutation, AssertRunsReleased:
	case AssertRunCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for run_count", index)
		}
	case AssertRunLengths:
		for _, n := range a.Lengths {
			if n < 1 {
				return fmt.Errorf("assertions[%d]: run lengths must be positive", index)
			}
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

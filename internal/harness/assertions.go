package harness

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion of the scenario and returns
// the failure messages, in assertion order.
func EvaluateAssertions(result *Result, scenario *Scenario) []string {
	var failures []string
	for _, a := range scenario.Assertions {
		if err := evaluate(result, scenario, a); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func evaluate(result *Result, scenario *Scenario, a Assertion) error {
	switch a.Type {
	case AssertSorted:
		return assertSorted(result.Output)
	case AssertPermutation:
		return assertPermutation(scenario.Input, result.Output)
	case AssertRunCount:
		return assertRunCount(result, a.Count)
	case AssertRunLengths:
		return assertRunLengths(result, a.Lengths)
	case AssertRunsReleased:
		return assertRunsReleased(result)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertSorted(output []int32) error {
	for i := 1; i < len(output); i++ {
		if output[i-1] > output[i] {
			return &AssertionError{
				Type:     AssertSorted,
				Expected: "non-decreasing output",
				Actual:   fmt.Sprintf("%d at position %d follows %d", output[i], i, output[i-1]),
			}
		}
	}
	return nil
}

func assertPermutation(input, output []int32) error {
	want := slices.Clone(input)
	got := slices.Clone(output)
	slices.Sort(want)
	slices.Sort(got)
	if slices.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     AssertPermutation,
		Expected: fmt.Sprintf("output is a permutation of %d input values", len(input)),
		Actual:   fmt.Sprintf("multisets differ (%d output values)", len(output)),
	}
}

func assertRunCount(result *Result, count int) error {
	if got := len(result.Runs()); got != count {
		return &AssertionError{
			Type:     AssertRunCount,
			Expected: fmt.Sprintf("%d runs", count),
			Actual:   fmt.Sprintf("%d runs", got),
		}
	}
	return nil
}

func assertRunLengths(result *Result, lengths []int) error {
	runs := result.Runs()
	got := make([]int, len(runs))
	for i, r := range runs {
		got[i] = len(r.Values)
	}
	if slices.Equal(got, lengths) {
		return nil
	}
	return &AssertionError{
		Type:     AssertRunLengths,
		Expected: fmt.Sprintf("run lengths %v", lengths),
		Actual:   fmt.Sprintf("run lengths %v", got),
	}
}

func assertRunsReleased(result *Result) error {
	if result.LiveRuns == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertRunsReleased,
		Expected: "every run released",
		Actual:   fmt.Sprintf("%d runs still live", result.LiveRuns),
	}
}

// descending reports whether every run was written in non-increasing
// order. Runs must be descending so the merge can read them backwards.
func descending(values []int32) bool {
	return slices.IsSortedFunc(values, func(a, b int32) int { return cmp.Compare(b, a) })
}

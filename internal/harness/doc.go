// Package harness runs sort scenarios: small, fully specified sorts whose
// output, run structure, and progress trace are checked against
// expectations and golden snapshots.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: scenario_a
//	description: "Five values, buffer of two"
//	input: [5, 1, 4, 2, 3]
//	buffer_size: 2
//	runs: memory          # memory (default), file, or sqlite
//	run_budget: 0         # fail run creation after N runs; 0 = unlimited
//	expect:
//	  output: [1, 2, 3, 4, 5]
//	assertions:
//	  - type: sorted
//	  - type: permutation
//	  - type: run_count
//	    count: 3
//	  - type: run_lengths
//	    lengths: [2, 2, 1]
//	  - type: runs_released
//
// A scenario that expects failure names the error code instead of an
// output:
//
//	expect:
//	  error: CONFIGURATION_ERROR
//
// # Trace
//
// Every run materialized by the split phase and every value emitted by the
// merge phase is recorded with a sequence number. Snapshot renders the
// trace one JSON object per line, which is what golden files hold.
package harness

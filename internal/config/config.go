// Package config loads the per-operation tape delay configuration.
//
// Three file formats are accepted, chosen by extension:
//
//	*.yaml, *.yml   YAML mapping (strict: unknown keys are rejected)
//	*.cue           CUE value checked against a schema
//	anything else   key=value lines
//
// All formats carry the same four keys, each an integer number of
// milliseconds that must not be negative:
//
//	move_delay   = 1
//	read_delay   = 2
//	write_delay  = 3
//	rewind_delay = 4
//
// Every problem with the file, including a missing file, is reported as a
// tape CONFIGURATION_ERROR so callers can reject it before any sort starts.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/roach88/tapesort/internal/tape"
)

// Delay keys shared by every format.
const (
	KeyMoveDelay   = "move_delay"
	KeyReadDelay   = "read_delay"
	KeyWriteDelay  = "write_delay"
	KeyRewindDelay = "rewind_delay"
)

// maxMillis is the largest delay a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// requiredKeys lists the delay keys in reporting order.
var requiredKeys = []string{KeyMoveDelay, KeyReadDelay, KeyWriteDelay, KeyRewindDelay}

// LoadDelays reads the delay configuration at path.
func LoadDelays(path string) (tape.Delays, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tape.Delays{}, tape.NewConfigurationError(fmt.Sprintf("cannot read delay config %s", path), err)
	}

	var values map[string]int64
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		values, err = parseYAML(data)
	case ".cue":
		values, err = parseCUE(path, data)
	default:
		values, err = ParseKeyValue(string(data))
	}
	if err != nil {
		return tape.Delays{}, err
	}
	return delaysFromMap(values)
}

// delaysFromMap checks that every key is present and non-negative.
func delaysFromMap(values map[string]int64) (tape.Delays, error) {
	for _, key := range requiredKeys {
		v, ok := values[key]
		if !ok {
			return tape.Delays{}, tape.NewConfigurationError(fmt.Sprintf("missing key %q", key), nil)
		}
		if v < 0 {
			return tape.Delays{}, tape.NewConfigurationError(fmt.Sprintf("negative value for %q: %d", key, v), nil)
		}
		if v > maxMillis {
			return tape.Delays{}, tape.NewConfigurationError(fmt.Sprintf("value for %q too large: %d ms", key, v), nil)
		}
	}
	return tape.Delays{
		Move:   millis(values[KeyMoveDelay]),
		Read:   millis(values[KeyReadDelay]),
		Write:  millis(values[KeyWriteDelay]),
		Rewind: millis(values[KeyRewindDelay]),
	}, nil
}

func millis(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}

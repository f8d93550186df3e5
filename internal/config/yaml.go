package config

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tapesort/internal/tape"
)

// yamlDelays mirrors the YAML document. Pointers distinguish a missing key
// from an explicit zero.
type yamlDelays struct {
	Move   *int64 `yaml:"move_delay"`
	Read   *int64 `yaml:"read_delay"`
	Write  *int64 `yaml:"write_delay"`
	Rewind *int64 `yaml:"rewind_delay"`
}

func parseYAML(data []byte) (map[string]int64, error) {
	var doc yamlDelays
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown keys (typos)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, tape.NewConfigurationError("failed to parse YAML delay config", err)
	}

	values := make(map[string]int64)
	set := func(key string, v *int64) {
		if v != nil {
			values[key] = *v
		}
	}
	set(KeyMoveDelay, doc.Move)
	set(KeyReadDelay, doc.Read)
	set(KeyWriteDelay, doc.Write)
	set(KeyRewindDelay, doc.Rewind)
	return values, nil
}

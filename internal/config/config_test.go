package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/tape"
)

// writeConfig writes content to name inside a temp dir and returns the path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var wantDelays = tape.Delays{
	Move:   1 * time.Millisecond,
	Read:   2 * time.Millisecond,
	Write:  3 * time.Millisecond,
	Rewind: 4 * time.Millisecond,
}

func TestLoadDelays_KeyValue(t *testing.T) {
	path := writeConfig(t, "delays.conf", "move_delay = 1\nread_delay = 2\nwrite_delay = 3\nrewind_delay = 4\n")

	d, err := LoadDelays(path)
	require.NoError(t, err)
	assert.Equal(t, wantDelays, d)
}

func TestLoadDelays_KeyValueErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"empty value", "move_delay =", "empty value"},
		{"empty key", " = 1", "empty key"},
		{"not an integer", "f = a", "not an integer"},
		{"missing separator", "move_delay 1", "invalid key-value pair"},
		{"not enough parameters", "f = 1", "missing key"},
		{"negative", "move_delay = -1\nread_delay = 2\nwrite_delay = 3\nrewind_delay = 4", "negative value"},
		{"overflows duration", "move_delay = 9300000000000\nread_delay = 2\nwrite_delay = 3\nrewind_delay = 4", "too large"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "delays.conf", tc.content)
			_, err := LoadDelays(path)
			require.Error(t, err)
			assert.True(t, tape.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadDelays_MissingFile(t *testing.T) {
	_, err := LoadDelays(filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err)
	assert.True(t, tape.IsConfigurationError(err))
}

func TestParseKeyValue_CommentsAndBlankLines(t *testing.T) {
	values, err := ParseKeyValue("# delays in ms\n\nmove_delay=5\n  read_delay =  6  \nmove_delay=7\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"move_delay": 7, "read_delay": 6}, values)
}

func TestParseKeyValue_ReportsLine(t *testing.T) {
	_, err := ParseKeyValue("move_delay=1\nread_delay=x\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadDelays_YAML(t *testing.T) {
	path := writeConfig(t, "delays.yaml", "move_delay: 1\nread_delay: 2\nwrite_delay: 3\nrewind_delay: 4\n")

	d, err := LoadDelays(path)
	require.NoError(t, err)
	assert.Equal(t, wantDelays, d)
}

func TestLoadDelays_YAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "move_delay: 1\nread_delay: 2\nwrite_delay: 3\nrewind_delay: 4\nspeed: 9\n"},
		{"missing key", "move_delay: 1\nread_delay: 2\nwrite_delay: 3\n"},
		{"not an integer", "move_delay: fast\nread_delay: 2\nwrite_delay: 3\nrewind_delay: 4\n"},
		{"empty document", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "delays.yml", tc.content)
			_, err := LoadDelays(path)
			require.Error(t, err)
			assert.True(t, tape.IsConfigurationError(err))
		})
	}
}

func TestLoadDelays_CUE(t *testing.T) {
	path := writeConfig(t, "delays.cue", "move_delay: 1\nread_delay: 2\nwrite_delay: 3\nrewind_delay: 4\n")

	d, err := LoadDelays(path)
	require.NoError(t, err)
	assert.Equal(t, wantDelays, d)
}

func TestLoadDelays_CUEErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative", "move_delay: -1\nread_delay: 2\nwrite_delay: 3\nrewind_delay: 4\n"},
		{"missing key", "move_delay: 1\nread_delay: 2\nwrite_delay: 3\n"},
		{"unknown key", "move_delay: 1\nread_delay: 2\nwrite_delay: 3\nrewind_delay: 4\nspeed: 9\n"},
		{"string value", "move_delay: \"1\"\nread_delay: 2\nwrite_delay: 3\nrewind_delay: 4\n"},
		{"syntax error", "move_delay: {\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "delays.cue", tc.content)
			_, err := LoadDelays(path)
			require.Error(t, err)
			assert.True(t, tape.IsConfigurationError(err))
		})
	}
}

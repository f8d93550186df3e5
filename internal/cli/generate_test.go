package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tape")
	b := filepath.Join(dir, "b.tape")

	stdout, _, err := execute(t, "generate", a, "--count", "200", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, "Generated 200 values (seed 42)\n", stdout)

	_, _, err = execute(t, "generate", b, "-n", "200", "--seed", "42")
	require.NoError(t, err)

	assert.Len(t, readTape(t, a), 200)
	assert.Equal(t, readTape(t, a), readTape(t, b))
}

func TestGenerateCommand_Range(t *testing.T) {
	path := tempPath(t, "r.tape")

	_, _, err := execute(t, "generate", path, "--count", "500", "--seed", "9", "--min", "-3", "--max", "3")
	require.NoError(t, err)

	seen := map[int32]bool{}
	for _, v := range readTape(t, path) {
		assert.GreaterOrEqual(t, v, int32(-3))
		assert.LessOrEqual(t, v, int32(3))
		seen[v] = true
	}
	assert.Len(t, seen, 7, "500 draws from 7 values should hit all of them")
}

func TestGenerateCommand_TruncatesExisting(t *testing.T) {
	path := tempPath(t, "t.tape")
	writeTape(t, path, 1, 2, 3, 4, 5)

	_, _, err := execute(t, "generate", path, "--count", "2", "--seed", "1")
	require.NoError(t, err)
	assert.Len(t, readTape(t, path), 2)
}

func TestGenerateCommand_Errors(t *testing.T) {
	path := tempPath(t, "e.tape")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing count", []string{"generate", path}, "--count is required"},
		{"negative count", []string{"generate", path, "--count", "-1"}, "--count must be non-negative"},
		{"min above max", []string{"generate", path, "--count", "1", "--min", "5", "--max", "4"}, "invalid range"},
		{"max beyond int32", []string{"generate", path, "--count", "1", "--max", "2147483648"}, "invalid range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

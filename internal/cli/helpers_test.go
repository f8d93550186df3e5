package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/tape"
)

// execute runs the root command with args and returns stdout, stderr and
// the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTape creates a file tape at path holding values.
func writeTape(t *testing.T, path string, values ...int32) {
	t.Helper()
	f, err := tape.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, f.Truncate())
	for _, v := range values {
		require.NoError(t, f.Write(v))
		_, err := f.MoveForward()
		require.NoError(t, err)
	}
}

// readTape returns the content of the file tape at path.
func readTape(t *testing.T, path string) []int32 {
	t.Helper()
	f, err := tape.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	values := []int32{}
	for {
		v, ok, err := f.Read()
		require.NoError(t, err)
		if !ok {
			return values
		}
		values = append(values, v)
		_, err = f.MoveForward()
		require.NoError(t, err)
	}
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

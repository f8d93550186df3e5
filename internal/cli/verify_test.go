package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCommand_Sorted(t *testing.T) {
	path := tempPath(t, "v.tape")
	writeTape(t, path, -2, 0, 0, 5)

	stdout, _, err := execute(t, "verify", path)
	require.NoError(t, err)
	assert.Equal(t, "OK: 4 values in non-decreasing order\n", stdout)
}

func TestVerifyCommand_Unsorted(t *testing.T) {
	path := tempPath(t, "v.tape")
	writeTape(t, path, 1, 3, 2, 4)

	stdout, _, err := execute(t, "verify", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, Reported(err))
	assert.Equal(t, "NOT SORTED: 2 at position 2 follows 3\n", stdout)
}

func TestVerifyCommand_JSON(t *testing.T) {
	path := tempPath(t, "v.tape")
	writeTape(t, path, 5, 4)

	stdout, _, err := execute(t, "--format", "json", "verify", path)
	require.Error(t, err)
	assert.JSONEq(t,
		`{"status":"ok","data":{"values":1,"sorted":false,"position":1,"previous":5,"value":4}}`,
		stdout)
}

func TestVerifyCommand_EmptyTapeIsSorted(t *testing.T) {
	path := tempPath(t, "v.tape")
	writeTape(t, path)

	stdout, _, err := execute(t, "--format", "json", "verify", path)
	require.NoError(t, err)

	var resp struct {
		Data VerifyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Data.Sorted)
	assert.Equal(t, 0, resp.Data.Values)
}

func TestVerifyCommand_MissingTape(t *testing.T) {
	_, _, err := execute(t, "verify", tempPath(t, "absent.tape"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

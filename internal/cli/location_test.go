package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input   string
		want    tapeLocation
		wantErr bool
	}{
		{input: "data.tape", want: tapeLocation{Path: "data.tape"}},
		{input: "/tmp/x#y", want: tapeLocation{Path: "/tmp/x#y"}},
		{input: "sqlite:tapes.db#in", want: tapeLocation{Path: "tapes.db", Name: "in"}},
		{input: "sqlite:/var/t.db#run#2", want: tapeLocation{Path: "/var/t.db", Name: "run#2"}},
		{input: "", wantErr: true},
		{input: "sqlite:tapes.db", wantErr: true},
		{input: "sqlite:#in", wantErr: true},
		{input: "sqlite:tapes.db#", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLocation(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameLocation(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tape")
	b := filepath.Join(dir, "b.tape")
	writeTape(t, a, 1)
	writeTape(t, b, 1)
	hard := filepath.Join(dir, "hard.tape")
	require.NoError(t, os.Link(a, hard))

	tests := []struct {
		name string
		x, y string
		want bool
	}{
		{"same path", a, a, true},
		{"uncleaned path", a, dir + "//a.tape", true},
		{"hard link", a, hard, true},
		{"different files", a, b, false},
		{"missing output", a, filepath.Join(dir, "new.tape"), false},
		{"same sqlite tape", "sqlite:t.db#in", "sqlite:./t.db#in", true},
		{"different sqlite tapes", "sqlite:t.db#in", "sqlite:t.db#out", false},
		{"file vs sqlite", "t.db", "sqlite:t.db#in", false},
		{"unparseable", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameLocation(tt.x, tt.y))
		})
	}
}

func TestOpenTape_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	loc := "sqlite:" + tempPath(t, "t.db") + "#data"

	w, err := openTape(ctx, loc, false)
	require.NoError(t, err)
	require.NoError(t, w.Write(11))
	_, err = w.MoveForward()
	require.NoError(t, err)
	require.NoError(t, w.Write(12))
	require.NoError(t, w.Close())

	r, err := openTape(ctx, loc, true)
	require.NoError(t, err)
	defer r.Close()

	var got []int32
	require.NoError(t, scanTape(r, func(v int32) bool {
		got = append(got, v)
		return true
	}))
	assert.Equal(t, []int32{11, 12}, got)
}

func TestOpenTape_InvalidLocation(t *testing.T) {
	_, err := openTape(context.Background(), "sqlite:nowhere", false)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

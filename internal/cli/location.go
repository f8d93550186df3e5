package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/tapesort/internal/store"
	"github.com/roach88/tapesort/internal/tape"
)

// sqlitePrefix marks a location stored in a SQLite database:
// sqlite:<db-path>#<tape-name>.
const sqlitePrefix = "sqlite:"

// tapeLocation is a parsed tape location.
type tapeLocation struct {
	Path string // file path, or database path for SQLite tapes
	Name string // tape name inside the database; empty for file tapes
}

func (l tapeLocation) sqlite() bool {
	return l.Name != ""
}

// parseLocation parses a command-line tape location.
func parseLocation(s string) (tapeLocation, error) {
	if s == "" {
		return tapeLocation{}, errors.New("empty tape location")
	}
	rest, ok := strings.CutPrefix(s, sqlitePrefix)
	if !ok {
		return tapeLocation{Path: s}, nil
	}
	db, name, found := strings.Cut(rest, "#")
	if !found || db == "" || name == "" {
		return tapeLocation{}, fmt.Errorf("invalid SQLite location %q: want sqlite:<db-path>#<tape-name>", s)
	}
	return tapeLocation{Path: db, Name: name}, nil
}

// sameLocation reports whether a and b name the same tape: the same file
// (after cleaning, or by inode), or the same tape name in the same database.
func sameLocation(a, b string) bool {
	la, errA := parseLocation(a)
	lb, errB := parseLocation(b)
	if errA != nil || errB != nil || la.Name != lb.Name {
		return false
	}
	if filepath.Clean(la.Path) == filepath.Clean(lb.Path) {
		return true
	}
	ia, errA := os.Stat(la.Path)
	ib, errB := os.Stat(lb.Path)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

// openedTape is a tape opened from a location, with whatever must be closed
// when the command is done with it.
type openedTape struct {
	tape.Tape
	truncate func() error
	close    func() error
}

// Truncate discards the tape content.
func (o *openedTape) Truncate() error {
	return o.truncate()
}

// Close flushes and closes the tape and its backing store.
func (o *openedTape) Close() error {
	return o.close()
}

// openTape opens the tape at loc. With mustExist, a missing file or
// database is an error instead of being created.
func openTape(ctx context.Context, loc string, mustExist bool) (*openedTape, error) {
	tl, err := parseLocation(loc)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid tape location", err)
	}

	if mustExist {
		if _, err := os.Stat(tl.Path); err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("tape not found: %s", loc), err)
		}
	}

	if !tl.sqlite() {
		f, err := tape.OpenFile(tl.Path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open tape", err)
		}
		return &openedTape{
			Tape:     f,
			truncate: f.Truncate,
			close: func() error {
				return errors.Join(f.Sync(), f.Close())
			},
		}, nil
	}

	st, err := store.Open(tl.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	if mustExist {
		names, err := st.TapeNames(ctx)
		if err != nil {
			st.Close()
			return nil, WrapExitError(ExitCommandError, "failed to list tapes", err)
		}
		if !slices.Contains(names, tl.Name) {
			st.Close()
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("tape not found: %s", loc))
		}
	}
	t, err := st.OpenTape(ctx, tl.Name)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to open tape", err)
	}
	return &openedTape{
		Tape:     t,
		truncate: t.Truncate,
		close: func() error {
			return errors.Join(t.Close(), st.Close())
		},
	}, nil
}

// closeTape closes t, logging instead of failing: by the time a command
// closes its tapes the result has been decided.
func closeTape(t *openedTape, role string) {
	if err := t.Close(); err != nil {
		slog.Error("error closing tape", "role", role, "error", err)
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tapesort/internal/tape"
)

// Tape is a tape persisted as rows of the cells table.
//
// Cell operations run against context.Background(): tape operations are
// synchronous and have no cancellation.
type Tape struct {
	store     *Store
	name      string
	temporary bool
	pos       int
	length    int

	readStmt  *sql.Stmt
	writeStmt *sql.Stmt
}

// OpenTape opens the persistent tape called name, creating it empty when it
// does not exist. The head starts on the first cell.
func (s *Store) OpenTape(ctx context.Context, name string) (*Tape, error) {
	if name == "" {
		return nil, tape.NewResourceError("open", "tape name is required", nil)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO tapes (name, temporary) VALUES (?, 0)
		ON CONFLICT(name) DO NOTHING
	`, name); err != nil {
		return nil, tape.NewResourceError("open", fmt.Sprintf("cannot create tape %q", name), err)
	}
	return s.loadTape(ctx, name, false)
}

// createTemporary inserts a new temporary tape. Fails if name exists.
func (s *Store) createTemporary(ctx context.Context, name string) (*Tape, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO tapes (name, temporary) VALUES (?, 1)
	`, name); err != nil {
		return nil, tape.NewResourceError("create", fmt.Sprintf("cannot create run %q", name), err)
	}
	return s.loadTape(ctx, name, true)
}

func (s *Store) loadTape(ctx context.Context, name string, temporary bool) (*Tape, error) {
	var length int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cells WHERE tape_name = ?", name,
	).Scan(&length); err != nil {
		return nil, tape.NewResourceError("open", fmt.Sprintf("cannot measure tape %q", name), err)
	}

	readStmt, err := s.db.PrepareContext(ctx,
		"SELECT value FROM cells WHERE tape_name = ? AND pos = ?")
	if err != nil {
		return nil, tape.NewResourceError("open", "prepare read", err)
	}
	writeStmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO cells (tape_name, pos, value) VALUES (?, ?, ?)
		ON CONFLICT(tape_name, pos) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		readStmt.Close()
		return nil, tape.NewResourceError("open", "prepare write", err)
	}

	return &Tape{
		store:     s,
		name:      name,
		temporary: temporary,
		length:    length,
		readStmt:  readStmt,
		writeStmt: writeStmt,
	}, nil
}

// Name returns the tape name.
func (t *Tape) Name() string {
	return t.name
}

// Len returns the number of cells on the tape.
func (t *Tape) Len() int {
	return t.length
}

// Read implements tape.Tape.
func (t *Tape) Read() (int32, bool, error) {
	if t.pos < 0 || t.pos >= t.length {
		return 0, false, nil
	}
	var v int64
	err := t.readStmt.QueryRow(t.name, t.pos).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, tape.NewResourceError("read",
			fmt.Sprintf("%s: cell %d missing, tape holds %d cells", t.name, t.pos, t.length), err)
	}
	if err != nil {
		return 0, false, tape.NewResourceError("read", t.name, err)
	}
	return int32(v), true, nil
}

// Write implements tape.Tape.
func (t *Tape) Write(v int32) error {
	if t.pos < 0 {
		return tape.NewOutOfRangeError("write", "writing to the before-begin position is prohibited")
	}
	if _, err := t.writeStmt.Exec(t.name, t.pos, int64(v)); err != nil {
		return tape.NewResourceError("write", t.name, err)
	}
	if t.pos == t.length {
		t.length++
	}
	return nil
}

// MoveForward implements tape.Tape.
func (t *Tape) MoveForward() (bool, error) {
	if t.pos < 0 || t.pos >= t.length {
		return false, nil
	}
	t.pos++
	return true, nil
}

// MoveBackward implements tape.Tape.
func (t *Tape) MoveBackward() (bool, error) {
	if t.pos < 0 {
		return false, nil
	}
	t.pos--
	return true, nil
}

// Rewind implements tape.Tape.
func (t *Tape) Rewind() error {
	t.pos = 0
	return nil
}

// Truncate deletes every cell and rewinds.
func (t *Tape) Truncate() error {
	if _, err := t.store.db.Exec("DELETE FROM cells WHERE tape_name = ?", t.name); err != nil {
		return tape.NewResourceError("truncate", t.name, err)
	}
	t.length = 0
	t.pos = 0
	return nil
}

// Close releases the prepared statements. The content stays in the
// database.
func (t *Tape) Close() error {
	return errors.Join(t.readStmt.Close(), t.writeStmt.Close())
}

// Release implements tape.Temp: it closes the tape and deletes it with its
// cells from the database.
func (t *Tape) Release() error {
	closeErr := t.Close()

	tx, err := t.store.db.Begin()
	if err != nil {
		return tape.NewResourceError("release", t.name, err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.Exec("DELETE FROM cells WHERE tape_name = ?", t.name); err != nil {
		return tape.NewResourceError("release", t.name, err)
	}
	if _, err := tx.Exec("DELETE FROM tapes WHERE name = ?", t.name); err != nil {
		return tape.NewResourceError("release", t.name, err)
	}
	if err := tx.Commit(); err != nil {
		return tape.NewResourceError("release", t.name, err)
	}
	return closeErr
}

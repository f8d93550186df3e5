package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/roach88/tapesort/internal/tape"
)

// RunAllocator creates sorter runs as temporary tapes in a Store.
type RunAllocator struct {
	Store *Store
}

// Create implements tape.Allocator.
func (a RunAllocator) Create() (tape.Temp, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, tape.NewResourceError("create", "cannot generate run id", err)
	}
	return a.Store.createTemporary(context.Background(), "run-"+id.String())
}

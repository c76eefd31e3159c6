package repository

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Snapshot is one saved revision of the whole task store, held as the
// encoded record document.
type Snapshot struct {
	ID          string
	Revision    int
	CreatedAt   time.Time
	RecordCount int
	Body        []byte
}

type SnapshotRepo interface {
	// Create stores s as the newest revision, filling in ID, Revision and CreatedAt.
	Create(ctx context.Context, s *Snapshot) error
	Latest(ctx context.Context) (*Snapshot, error)
	// List returns snapshot metadata, newest first, without bodies.
	List(ctx context.Context) ([]*Snapshot, error)
	// Prune deletes all but the newest keep revisions and reports how many went.
	Prune(ctx context.Context, keep int) (int, error)
}

package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/alexanderramin/tasktracker/internal/db"
	"github.com/alexanderramin/tasktracker/internal/repository"
)

// Blob is the storage a store is saved to and loaded from as one document.
// Read returns nil data and no error when nothing has been saved yet.
type Blob interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	String() string
}

// FileBlob keeps the document in a single file.
type FileBlob struct {
	Path string
}

func NewFileBlob(path string) *FileBlob {
	return &FileBlob{Path: path}
}

func (b *FileBlob) String() string { return b.Path }

func (b *FileBlob) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.Path, err)
	}
	return data, nil
}

// Write replaces the file through a temporary sibling so a failed write
// never leaves a truncated document behind.
func (b *FileBlob) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(b.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), b.Path); err != nil {
		return fmt.Errorf("replacing %s: %w", b.Path, err)
	}
	return nil
}

// SQLiteBlob keeps every saved document as a snapshot revision and reads
// back the newest one. Keep > 0 prunes older revisions on each write.
type SQLiteBlob struct {
	uow   db.UnitOfWork
	label string
	Keep  int
}

func NewSQLiteBlob(uow db.UnitOfWork, label string, keep int) *SQLiteBlob {
	return &SQLiteBlob{uow: uow, label: label, Keep: keep}
}

func (b *SQLiteBlob) String() string { return b.label }

func (b *SQLiteBlob) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := repository.NewSQLiteSnapshotRepo(tx).Latest(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		data = snap.Body
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading latest snapshot: %w", err)
	}
	return data, nil
}

func (b *SQLiteBlob) Write(ctx context.Context, data []byte) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSnapshotRepo(tx)
		snap := &repository.Snapshot{RecordCount: countRecords(data), Body: data}
		if err := repo.Create(ctx, snap); err != nil {
			return err
		}
		if b.Keep > 0 {
			if _, err := repo.Prune(ctx, b.Keep); err != nil {
				return err
			}
		}
		return nil
	})
}

// Revisions lists the stored snapshots, newest first, without bodies.
func (b *SQLiteBlob) Revisions(ctx context.Context) ([]*repository.Snapshot, error) {
	var snaps []*repository.Snapshot
	err := b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snaps, err = repository.NewSQLiteSnapshotRepo(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing snapshots of %s: %w", b.label, err)
	}
	return snaps, nil
}

// countRecords counts the data lines of a document, excluding the header.
func countRecords(data []byte) int {
	lines := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		lines++
	}
	return max(lines-1, 0)
}

// MemoryBlob holds the document in memory.
type MemoryBlob struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

func NewMemoryBlob(initial []byte) *MemoryBlob {
	return &MemoryBlob{data: bytes.Clone(initial)}
}

func (b *MemoryBlob) String() string { return "memory" }

func (b *MemoryBlob) Read(context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.data), nil
}

func (b *MemoryBlob) Write(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = bytes.Clone(data)
	b.writes++
	return nil
}

// Writes reports how many times the blob has been written.
func (b *MemoryBlob) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Package persistence saves a task store to a Blob and restores it.
package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/codec"
	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/alexanderramin/tasktracker/internal/tracker"
)

// Load builds a new store from the document in blob. An empty or missing
// document yields an empty store.
func Load(ctx context.Context, blob Blob, opts ...tracker.Option) (*tracker.Store, error) {
	store := tracker.NewStore(opts...)
	if _, err := LoadInto(ctx, blob, store); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadInto replays the document in blob into mgr, which should be empty.
// Epics are created first so every subtask finds its parent. Records the
// store rejects are skipped; the store has already logged them. The id
// counter resumes after the largest id seen. It returns how many records
// were restored.
func LoadInto(ctx context.Context, blob Blob, mgr tracker.Manager) (int, error) {
	data, err := blob.Read(ctx)
	if err != nil {
		return 0, &Error{Op: "load", Target: blob.String(), Err: err}
	}
	tasks, err := codec.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", blob, err)
	}

	maxID, restored := 0, 0
	create := func(t *domain.Task) error {
		maxID = max(maxID, t.ID)
		var err error
		switch t.Kind {
		case domain.KindEpic:
			_, err = mgr.CreateEpic(t)
		case domain.KindSubtask:
			_, err = mgr.CreateSubtask(t, t.EpicID)
		default:
			_, err = mgr.CreateTask(t)
		}
		if err != nil {
			if domain.IsValidation(err) {
				return nil
			}
			return fmt.Errorf("restoring %s %d: %w", t.Kind, t.ID, err)
		}
		restored++
		return nil
	}

	for _, t := range tasks {
		if t.IsEpic() {
			if err := create(t); err != nil {
				return restored, err
			}
		}
	}
	for _, t := range tasks {
		if !t.IsEpic() {
			if err := create(t); err != nil {
				return restored, err
			}
		}
	}
	mgr.ResetNextID(maxID + 1)
	return restored, nil
}

// Encode renders the full state of mgr: header, tasks, epics, then subtasks.
func Encode(mgr tracker.Manager) ([]byte, int, error) {
	all := mgr.Snapshot()
	var buf bytes.Buffer
	if err := codec.EncodeAll(&buf, all); err != nil {
		return nil, 0, fmt.Errorf("encoding tasks: %w", err)
	}
	return buf.Bytes(), len(all), nil
}

// Save writes the full state of mgr to blob.
func Save(ctx context.Context, mgr tracker.Manager, blob Blob) error {
	data, _, err := Encode(mgr)
	if err != nil {
		return err
	}
	if err := blob.Write(ctx, data); err != nil {
		return &Error{Op: "save", Target: blob.String(), Err: err}
	}
	return nil
}

// IsPersistence reports whether err came from unreachable or unwritable storage.
func IsPersistence(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

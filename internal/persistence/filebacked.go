package persistence

import (
	"context"
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/alexanderramin/tasktracker/internal/tracker"
)

// FileBacked is a Manager that writes the whole store to its blob after
// every successful change. Reads and rejected changes never write.
type FileBacked struct {
	tracker.Manager
	blob     Blob
	observer SaveObserver
}

type FileBackedOption func(*FileBacked)

func WithSaveObserver(o SaveObserver) FileBackedOption {
	return func(f *FileBacked) {
		if o != nil {
			f.observer = o
		}
	}
}

// NewFileBacked wraps mgr without loading anything.
func NewFileBacked(mgr tracker.Manager, blob Blob, opts ...FileBackedOption) *FileBacked {
	f := &FileBacked{Manager: mgr, blob: blob, observer: NoopSaveObserver{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open restores a store from blob and wraps it so later changes are saved back.
func Open(ctx context.Context, blob Blob, storeOpts []tracker.Option, opts ...FileBackedOption) (*FileBacked, error) {
	store, err := Load(ctx, blob, storeOpts...)
	if err != nil {
		return nil, err
	}
	return NewFileBacked(store, blob, opts...), nil
}

// Save writes the current state to the blob.
func (f *FileBacked) Save(ctx context.Context) error {
	return f.save(ctx, "save")
}

func (f *FileBacked) save(ctx context.Context, op string) error {
	started := time.Now()
	data, records, err := Encode(f.Manager)
	if err == nil {
		if werr := f.blob.Write(ctx, data); werr != nil {
			err = &Error{Op: op, Target: f.blob.String(), Err: werr}
		}
	}
	f.observer.ObserveSave(ctx, SaveEvent{
		Op:       op,
		Target:   f.blob.String(),
		Records:  records,
		Duration: time.Since(started),
		Err:      err,
	})
	return err
}

// after saves once a change succeeded and passes any error on.
func (f *FileBacked) after(op string, err error) error {
	if err != nil {
		return err
	}
	return f.save(context.Background(), op)
}

func (f *FileBacked) CreateTask(t *domain.Task) (int, error) {
	id, err := f.Manager.CreateTask(t)
	return id, f.after("create_task", err)
}

func (f *FileBacked) CreateEpic(e *domain.Task) (int, error) {
	id, err := f.Manager.CreateEpic(e)
	return id, f.after("create_epic", err)
}

func (f *FileBacked) CreateSubtask(s *domain.Task, epicID int) (int, error) {
	id, err := f.Manager.CreateSubtask(s, epicID)
	return id, f.after("create_subtask", err)
}

func (f *FileBacked) UpdateTask(t *domain.Task) error {
	return f.after("update_task", f.Manager.UpdateTask(t))
}

func (f *FileBacked) UpdateEpic(e *domain.Task) error {
	return f.after("update_epic", f.Manager.UpdateEpic(e))
}

func (f *FileBacked) UpdateSubtask(s *domain.Task) error {
	return f.after("update_subtask", f.Manager.UpdateSubtask(s))
}

func (f *FileBacked) UpdateTaskStatus(id int, status domain.Status) error {
	return f.after("update_task_status", f.Manager.UpdateTaskStatus(id, status))
}

func (f *FileBacked) UpdateSubtaskStatus(id int, status domain.Status) error {
	return f.after("update_subtask_status", f.Manager.UpdateSubtaskStatus(id, status))
}

func (f *FileBacked) DeleteTask(id int) error {
	return f.after("delete_task", f.Manager.DeleteTask(id))
}

func (f *FileBacked) DeleteEpic(id int) error {
	return f.after("delete_epic", f.Manager.DeleteEpic(id))
}

func (f *FileBacked) DeleteSubtask(id int) error {
	return f.after("delete_subtask", f.Manager.DeleteSubtask(id))
}

func (f *FileBacked) DeleteAllTasks() error {
	return f.after("delete_all_tasks", f.Manager.DeleteAllTasks())
}

func (f *FileBacked) DeleteAllEpics() error {
	return f.after("delete_all_epics", f.Manager.DeleteAllEpics())
}

func (f *FileBacked) DeleteAllSubtasks() error {
	return f.after("delete_all_subtasks", f.Manager.DeleteAllSubtasks())
}

var _ tracker.Manager = (*FileBacked)(nil)

package domain

import (
	"fmt"
	"slices"
	"time"
)

// Task is the single record type behind tasks, epics and subtasks. Kind
// selects which of the variant fields are meaningful.
//
// Two tasks are the same task when their IDs match; field values play no part
// in identity. Use SameTask rather than comparing structs.
type Task struct {
	ID          int
	Kind        Kind
	Title       string
	Description string
	Status      Status

	// Time window
	StartTime *time.Time
	Duration  *time.Duration

	// Epic only: owned subtask ids in attach order, and the aggregated end.
	SubtaskIDs []int
	EpicEnd    *time.Time

	// Subtask only: the owning epic.
	EpicID int
}

func NewTask(title, description string) *Task {
	return &Task{Kind: KindTask, Title: title, Description: description, Status: StatusNew}
}

func NewEpic(title, description string) *Task {
	e := &Task{Kind: KindEpic, Title: title, Description: description, Status: StatusNew}
	e.ClearWindow()
	return e
}

func NewSubtask(title, description string, epicID int) *Task {
	return &Task{Kind: KindSubtask, Title: title, Description: description, Status: StatusNew, EpicID: epicID}
}

func (t *Task) IsEpic() bool    { return t.Kind == KindEpic }
func (t *Task) IsSubtask() bool { return t.Kind == KindSubtask }

// EndTime returns start plus duration, or nil when either is unset. Epics
// report their aggregated end instead, which skips gaps between subtasks.
func (t *Task) EndTime() *time.Time {
	if t.Kind == KindEpic {
		if t.EpicEnd == nil {
			return nil
		}
		end := *t.EpicEnd
		return &end
	}
	if t.StartTime == nil || t.Duration == nil {
		return nil
	}
	end := t.StartTime.Add(*t.Duration)
	return &end
}

// Anchored reports whether the task has both a start time and a duration.
func (t *Task) Anchored() bool {
	return t.StartTime != nil && t.Duration != nil
}

// SetWindow sets start and duration together.
func (t *Task) SetWindow(start time.Time, d time.Duration) {
	t.StartTime = &start
	t.Duration = &d
}

// ClearWindow resets the window to no start, zero duration and no end.
func (t *Task) ClearWindow() {
	var zero time.Duration
	t.StartTime = nil
	t.Duration = &zero
	t.EpicEnd = nil
}

// AddSubtaskID appends id to the epic's subtask list. An id equal to the
// epic's own is refused; an id already present is left where it is.
func (t *Task) AddSubtaskID(id int) error {
	if id == t.ID {
		return fmt.Errorf("adding subtask %d to epic %d: %w", id, t.ID, ErrSelfReference)
	}
	if slices.Contains(t.SubtaskIDs, id) {
		return nil
	}
	t.SubtaskIDs = append(t.SubtaskIDs, id)
	return nil
}

// RemoveSubtaskID drops id from the epic's subtask list, reporting whether it was present.
func (t *Task) RemoveSubtaskID(id int) bool {
	i := slices.Index(t.SubtaskIDs, id)
	if i < 0 {
		return false
	}
	t.SubtaskIDs = slices.Delete(t.SubtaskIDs, i, i+1)
	return true
}

// SetEpicID assigns the owning epic of a subtask.
func (t *Task) SetEpicID(epicID int) error {
	if t.ID != 0 && epicID == t.ID {
		return fmt.Errorf("assigning epic %d to subtask %d: %w", epicID, t.ID, ErrSelfReference)
	}
	t.EpicID = epicID
	return nil
}

// Clone returns a deep copy that shares no memory with t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.StartTime != nil {
		s := *t.StartTime
		c.StartTime = &s
	}
	if t.Duration != nil {
		d := *t.Duration
		c.Duration = &d
	}
	if t.EpicEnd != nil {
		e := *t.EpicEnd
		c.EpicEnd = &e
	}
	if t.SubtaskIDs != nil {
		c.SubtaskIDs = slices.Clone(t.SubtaskIDs)
	}
	return &c
}

func (t *Task) String() string {
	s := fmt.Sprintf("%s{id=%d, title=%q, status=%s", t.Kind, t.ID, t.Title, t.Status)
	switch t.Kind {
	case KindEpic:
		s += fmt.Sprintf(", subtasks=%v", t.SubtaskIDs)
	case KindSubtask:
		s += fmt.Sprintf(", epic=%d", t.EpicID)
	}
	if t.StartTime != nil {
		s += ", start=" + t.StartTime.Format(time.DateTime)
	}
	if t.Duration != nil {
		s += fmt.Sprintf(", duration=%s", *t.Duration)
	}
	return s + "}"
}

// SameTask compares by identity: two tasks are the same when their IDs match.
func SameTask(a, b *Task) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// CloneAll deep-copies every task in ts.
func CloneAll(ts []*Task) []*Task {
	out := make([]*Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Clone())
	}
	return out
}

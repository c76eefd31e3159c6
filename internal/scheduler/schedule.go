package scheduler

import (
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"rsc.io/omap"
)

// entryKey orders the schedule: start ascending with unset starts last, then id.
type entryKey struct {
	start    time.Time
	hasStart bool
	id       int
}

func keyOf(t *domain.Task) entryKey {
	if t.StartTime == nil {
		return entryKey{id: t.ID}
	}
	return entryKey{start: *t.StartTime, hasStart: true, id: t.ID}
}

func compareKeys(a, b entryKey) int {
	if a.hasStart != b.hasStart {
		if a.hasStart {
			return -1
		}
		return 1
	}
	if a.hasStart {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
	}
	switch {
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	}
	return 0
}

// Schedule is the prioritized set of tasks and subtasks that have a start
// time. Entries are unique by task id.
type Schedule struct {
	entries *omap.MapFunc[entryKey, *domain.Task]
	keys    map[int]entryKey
}

func NewSchedule() *Schedule {
	return &Schedule{
		entries: omap.NewMapFunc[entryKey, *domain.Task](compareKeys),
		keys:    make(map[int]entryKey),
	}
}

// Add inserts t, replacing any entry with the same id. Tasks without a start
// time are not scheduled; an existing entry for the id is dropped instead.
func (s *Schedule) Add(t *domain.Task) {
	s.Remove(t.ID)
	if t.StartTime == nil {
		return
	}
	k := keyOf(t)
	s.entries.Set(k, t)
	s.keys[t.ID] = k
}

// Remove drops the entry for id, reporting whether one existed.
func (s *Schedule) Remove(id int) bool {
	k, ok := s.keys[id]
	if !ok {
		return false
	}
	s.entries.Delete(k)
	delete(s.keys, id)
	return true
}

// RemoveFunc drops every entry for which drop returns true.
func (s *Schedule) RemoveFunc(drop func(*domain.Task) bool) {
	var ids []int
	for _, t := range s.entries.All() {
		if drop(t) {
			ids = append(ids, t.ID)
		}
	}
	for _, id := range ids {
		s.Remove(id)
	}
}

// Conflict returns the first scheduled entry whose window overlaps
// candidate's, ignoring any entry with candidate's own id. Candidates
// without both a start and a duration never conflict.
func (s *Schedule) Conflict(candidate *domain.Task) (*domain.Task, bool) {
	if !candidate.Anchored() {
		return nil, false
	}
	end := *candidate.EndTime()
	for k, t := range s.entries.All() {
		if !k.hasStart || !k.start.Before(end) {
			break
		}
		if t.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, t) {
			return t, true
		}
	}
	return nil, false
}

// Tasks returns the scheduled entries in priority order.
func (s *Schedule) Tasks() []*domain.Task {
	out := make([]*domain.Task, 0, s.Len())
	for _, t := range s.entries.All() {
		out = append(out, t)
	}
	return out
}

func (s *Schedule) Len() int { return len(s.keys) }

// Overlaps reports whether the half-open windows [start, end) of a and b
// intersect. Windows that only touch at an endpoint do not overlap, and a
// task missing its start or duration overlaps nothing.
func Overlaps(a, b *domain.Task) bool {
	if !a.Anchored() || !b.Anchored() {
		return false
	}
	aEnd, bEnd := *a.EndTime(), *b.EndTime()
	return a.StartTime.Before(bEnd) && b.StartTime.Before(aEnd)
}

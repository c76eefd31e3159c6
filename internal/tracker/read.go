package tracker

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

func (s *Store) ListTasks() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopies(s.tasks)
}

func (s *Store) ListEpics() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopies(s.epics)
}

func (s *Store) ListSubtasks() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopies(s.subtasks)
}

func (s *Store) Snapshot() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Concat(sortedCopies(s.tasks), sortedCopies(s.epics), sortedCopies(s.subtasks))
}

// ListEpicSubtasks returns the epic's subtasks in attach order. An unknown
// epic yields an empty list and ErrEpicNotFound.
func (s *Store) ListEpicSubtasks(epicID int) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	epic, ok := s.epics[epicID]
	if !ok {
		return []*domain.Task{}, fmt.Errorf("listing subtasks of epic %d: %w", epicID, domain.ErrEpicNotFound)
	}
	return domain.CloneAll(s.subtasksOf(epic)), nil
}

// GetTask returns a copy of the task and records the view in history.
func (s *Store) GetTask(id int) (*domain.Task, error) {
	return s.get(s.tasks, domain.KindTask, id)
}

func (s *Store) GetEpic(id int) (*domain.Task, error) {
	return s.get(s.epics, domain.KindEpic, id)
}

func (s *Store) GetSubtask(id int) (*domain.Task, error) {
	return s.get(s.subtasks, domain.KindSubtask, id)
}

func (s *Store) get(coll map[int]*domain.Task, kind domain.Kind, id int) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := coll[id]
	if !ok {
		return nil, fmt.Errorf("getting %s %d: %w", kind, id, domain.ErrNotFound)
	}
	s.history.Add(t)
	return t.Clone(), nil
}

// History returns the viewed tasks, oldest view first.
func (s *Store) History() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.History()
}

// PrioritizedTasks returns copies of every task and subtask with a start
// time, ordered by start then id.
func (s *Store) PrioritizedTasks() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneAll(s.schedule.Tasks())
}

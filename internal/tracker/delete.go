package tracker

import (
	"github.com/alexanderramin/tasktracker/internal/domain"
)

// DeleteTask removes a task from the store, the schedule and the history.
func (s *Store) DeleteTask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return s.notFound("delete_task", domain.KindTask, id)
	}
	delete(s.tasks, id)
	s.schedule.Remove(id)
	s.history.Remove(id)
	return nil
}

// DeleteEpic removes an epic together with every subtask it owns.
func (s *Store) DeleteEpic(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	epic, ok := s.epics[id]
	if !ok {
		return s.notFound("delete_epic", domain.KindEpic, id)
	}
	for _, subID := range epic.SubtaskIDs {
		s.dropSubtask(subID)
	}
	delete(s.epics, id)
	s.history.Remove(id)
	return nil
}

// DeleteSubtask detaches a subtask from its epic, removes it and
// re-aggregates the epic.
func (s *Store) DeleteSubtask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subtasks[id]
	if !ok {
		return s.notFound("delete_subtask", domain.KindSubtask, id)
	}
	s.dropSubtask(id)
	if epic, ok := s.epics[sub.EpicID]; ok {
		epic.RemoveSubtaskID(id)
		s.aggregate(epic)
	}
	return nil
}

func (s *Store) dropSubtask(id int) {
	delete(s.subtasks, id)
	s.schedule.Remove(id)
	s.history.Remove(id)
}

// dropAll empties coll, unschedules every entry of kind and purges the
// dropped ids from history.
func (s *Store) dropAll(coll map[int]*domain.Task, kind domain.Kind) {
	s.schedule.RemoveFunc(func(t *domain.Task) bool { return t.Kind == kind })
	for id := range coll {
		s.history.Remove(id)
	}
	clear(coll)
}

func (s *Store) DeleteAllTasks() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropAll(s.tasks, domain.KindTask)
	return nil
}

// DeleteAllEpics removes every epic and, with them, every subtask.
func (s *Store) DeleteAllEpics() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropAll(s.subtasks, domain.KindSubtask)
	s.dropAll(s.epics, domain.KindEpic)
	return nil
}

// DeleteAllSubtasks removes every subtask and resets each epic to an empty,
// NEW epic with a cleared window.
func (s *Store) DeleteAllSubtasks() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropAll(s.subtasks, domain.KindSubtask)
	for _, epic := range s.epics {
		epic.SubtaskIDs = nil
		s.aggregate(epic)
	}
	return nil
}

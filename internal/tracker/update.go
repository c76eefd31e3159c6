package tracker

import (
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

// UpdateTask replaces the stored task with the same id by a copy of t.
func (s *Store) UpdateTask(t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[t.ID]
	if !ok {
		return s.notFound("update_task", domain.KindTask, t.ID)
	}
	next := t.Clone()
	next.Kind = domain.KindTask
	next.SubtaskIDs, next.EpicEnd, next.EpicID = nil, nil, 0
	if next.Status == "" {
		next.Status = existing.Status
	}
	if err := checkFields(next); err != nil {
		return s.reject("update_task", err, "id", next.ID)
	}
	if err := s.checkOverlap(next); err != nil {
		return s.reject("update_task", err, "id", next.ID)
	}

	s.tasks[next.ID] = next
	s.schedule.Add(next)
	return nil
}

// UpdateEpic copies the title and description of e onto the stored epic.
// Subtask list, status and time window stay under aggregation's control.
func (s *Store) UpdateEpic(e *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	epic, ok := s.epics[e.ID]
	if !ok {
		return s.notFound("update_epic", domain.KindEpic, e.ID)
	}
	epic.Title = e.Title
	epic.Description = e.Description
	return nil
}

// UpdateSubtask replaces the stored subtask with the same id by a copy of
// sub. A zero EpicID keeps the current parent; a different one moves the
// subtask and both epics are re-aggregated.
func (s *Store) UpdateSubtask(sub *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.subtasks[sub.ID]
	if !ok {
		return s.notFound("update_subtask", domain.KindSubtask, sub.ID)
	}
	next := sub.Clone()
	next.Kind = domain.KindSubtask
	next.SubtaskIDs, next.EpicEnd = nil, nil
	if next.Status == "" {
		next.Status = existing.Status
	}
	if err := checkFields(next); err != nil {
		return s.reject("update_subtask", err, "id", next.ID)
	}
	epicID := next.EpicID
	if epicID == 0 {
		epicID = existing.EpicID
	}
	if err := next.SetEpicID(epicID); err != nil {
		return s.reject("update_subtask", err, "id", next.ID, "epic_id", epicID)
	}
	epic, ok := s.epics[epicID]
	if !ok {
		err := fmt.Errorf("moving subtask %d to epic %d: %w", next.ID, epicID, domain.ErrEpicNotFound)
		return s.reject("update_subtask", err, "id", next.ID, "epic_id", epicID)
	}
	if err := s.checkOverlap(next); err != nil {
		return s.reject("update_subtask", err, "id", next.ID, "epic_id", epicID)
	}

	s.subtasks[next.ID] = next
	s.schedule.Add(next)
	if existing.EpicID != epicID {
		if old, ok := s.epics[existing.EpicID]; ok {
			old.RemoveSubtaskID(next.ID)
			s.aggregate(old)
		}
		if err := epic.AddSubtaskID(next.ID); err != nil {
			return fmt.Errorf("attaching subtask %d: %w", next.ID, err)
		}
	}
	s.aggregate(epic)
	return nil
}

// UpdateTaskStatus sets the status of a stored task.
func (s *Store) UpdateTaskStatus(id int, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validStatus(status); err != nil {
		return s.reject("update_task_status", err, "id", id)
	}
	t, ok := s.tasks[id]
	if !ok {
		return s.notFound("update_task_status", domain.KindTask, id)
	}
	t.Status = status
	return nil
}

// UpdateSubtaskStatus sets the status of a stored subtask and re-aggregates its epic.
func (s *Store) UpdateSubtaskStatus(id int, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validStatus(status); err != nil {
		return s.reject("update_subtask_status", err, "id", id)
	}
	sub, ok := s.subtasks[id]
	if !ok {
		return s.notFound("update_subtask_status", domain.KindSubtask, id)
	}
	sub.Status = status
	s.aggregateByID(sub.EpicID)
	return nil
}

func validStatus(status domain.Status) error {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidStatus, err)
	}
	return nil
}

func (s *Store) notFound(op string, kind domain.Kind, id int) error {
	s.logger.Debug("not found", "op", op, "kind", kind, "id", id)
	return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
}

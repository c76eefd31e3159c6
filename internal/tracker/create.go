package tracker

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

// CreateTask registers a copy of t. A zero id is replaced by the next free
// one; a non-zero id must not be in use anywhere. On success t.ID holds the
// assigned id.
func (s *Store) CreateTask(t *domain.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := t.Clone()
	task.Kind = domain.KindTask
	task.SubtaskIDs, task.EpicEnd, task.EpicID = nil, nil, 0
	if task.Status == "" {
		task.Status = domain.StatusNew
	}

	if err := s.checkNewID(task.ID); err != nil {
		return 0, s.reject("create_task", err, "id", task.ID)
	}
	if err := checkFields(task); err != nil {
		return 0, s.reject("create_task", err, "id", task.ID)
	}
	if err := s.checkOverlap(task); err != nil {
		return 0, s.reject("create_task", err, "id", task.ID)
	}

	s.assignID(task)
	s.tasks[task.ID] = task
	s.schedule.Add(task)
	t.ID = task.ID
	return task.ID, nil
}

// CreateEpic registers a copy of e. Status, time window and subtask list are
// owned by aggregation, so a new epic always starts NEW and empty.
func (s *Store) CreateEpic(e *domain.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	epic := e.Clone()
	epic.Kind = domain.KindEpic
	epic.Status = domain.StatusNew
	epic.SubtaskIDs, epic.EpicID = nil, 0
	epic.ClearWindow()

	if err := s.checkNewID(epic.ID); err != nil {
		return 0, s.reject("create_epic", err, "id", epic.ID)
	}

	s.assignID(epic)
	s.epics[epic.ID] = epic
	e.ID = epic.ID
	return epic.ID, nil
}

// CreateSubtask registers a copy of sub under the epic epicID.
func (s *Store) CreateSubtask(sub *domain.Task, epicID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := sub.Clone()
	st.Kind = domain.KindSubtask
	st.SubtaskIDs, st.EpicEnd = nil, nil
	if st.Status == "" {
		st.Status = domain.StatusNew
	}

	if err := st.SetEpicID(epicID); err != nil {
		return 0, s.reject("create_subtask", err, "id", st.ID, "epic_id", epicID)
	}
	epic, ok := s.epics[epicID]
	if !ok {
		err := fmt.Errorf("creating subtask under epic %d: %w", epicID, domain.ErrEpicNotFound)
		return 0, s.reject("create_subtask", err, "id", st.ID, "epic_id", epicID)
	}
	if err := s.checkNewID(st.ID); err != nil {
		return 0, s.reject("create_subtask", err, "id", st.ID, "epic_id", epicID)
	}
	if err := checkFields(st); err != nil {
		return 0, s.reject("create_subtask", err, "id", st.ID, "epic_id", epicID)
	}
	if err := s.checkOverlap(st); err != nil {
		return 0, s.reject("create_subtask", err, "id", st.ID, "epic_id", epicID)
	}

	s.assignID(st)
	if err := epic.AddSubtaskID(st.ID); err != nil {
		return 0, s.reject("create_subtask", err, "id", st.ID, "epic_id", epicID)
	}
	s.subtasks[st.ID] = st
	s.schedule.Add(st)
	s.aggregate(epic)
	sub.ID, sub.EpicID = st.ID, epicID
	return st.ID, nil
}

func (s *Store) checkNewID(id int) error {
	if id < 0 {
		return fmt.Errorf("registering id %d: %w", id, domain.ErrInvalidID)
	}
	if id != 0 && s.idInUse(id) {
		return fmt.Errorf("registering id %d: %w", id, domain.ErrIDInUse)
	}
	return nil
}

// checkFields rejects a status or duration the record format cannot carry.
func checkFields(t *domain.Task) error {
	if err := validStatus(t.Status); err != nil {
		return err
	}
	if t.Duration != nil && *t.Duration < 0 {
		return fmt.Errorf("task %d duration %s: %w", t.ID, *t.Duration, domain.ErrNegativeDuration)
	}
	return nil
}

// checkOverlap rejects t when its window collides with any other scheduled entry.
func (s *Store) checkOverlap(t *domain.Task) error {
	conflict, found := s.schedule.Conflict(t)
	if !found {
		return nil
	}
	return &domain.OverlapError{ID: t.ID, Title: t.Title, ConflictID: conflict.ID}
}

func (s *Store) assignID(t *domain.Task) {
	if t.ID == 0 {
		t.ID = s.seq.Next()
		return
	}
	s.seq.Observe(t.ID)
}

// reject logs a validation failure and hands the error back.
func (s *Store) reject(op string, err error, attrs ...any) error {
	args := append([]any{"op", op}, attrs...)
	var overlap *domain.OverlapError
	if errors.As(err, &overlap) {
		args = append(args, "conflict_id", overlap.ConflictID)
	}
	args = append(args, "error", err.Error())
	s.logger.Warn("rejected", args...)
	return err
}

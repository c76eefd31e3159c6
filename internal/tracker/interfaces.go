package tracker

import "github.com/alexanderramin/tasktracker/internal/domain"

// Manager is the public surface of a task store. Validation rejections and
// lookups of unknown ids return errors but never change state.
type Manager interface {
	CreateTask(t *domain.Task) (int, error)
	CreateEpic(e *domain.Task) (int, error)
	CreateSubtask(s *domain.Task, epicID int) (int, error)

	ListTasks() []*domain.Task
	ListEpics() []*domain.Task
	ListSubtasks() []*domain.Task
	ListEpicSubtasks(epicID int) ([]*domain.Task, error)

	GetTask(id int) (*domain.Task, error)
	GetEpic(id int) (*domain.Task, error)
	GetSubtask(id int) (*domain.Task, error)

	UpdateTask(t *domain.Task) error
	UpdateEpic(e *domain.Task) error
	UpdateSubtask(s *domain.Task) error
	UpdateTaskStatus(id int, status domain.Status) error
	UpdateSubtaskStatus(id int, status domain.Status) error

	DeleteTask(id int) error
	DeleteEpic(id int) error
	DeleteSubtask(id int) error
	DeleteAllTasks() error
	DeleteAllEpics() error
	DeleteAllSubtasks() error

	History() []*domain.Task
	PrioritizedTasks() []*domain.Task
	// Snapshot copies every record in one step: tasks, then epics, then
	// subtasks, each group ordered by id.
	Snapshot() []*domain.Task

	// NextID reports the id the next create without an explicit id receives.
	NextID() int
	// ResetNextID moves the id counter, never below one past the largest id in use.
	ResetNextID(next int)
}

// HistoryLog receives snapshots of viewed tasks.
type HistoryLog interface {
	Add(t *domain.Task)
	Remove(id int) bool
	History() []*domain.Task
}

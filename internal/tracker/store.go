package tracker

import (
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/alexanderramin/tasktracker/internal/history"
	"github.com/alexanderramin/tasktracker/internal/scheduler"
)

// Store is the in-memory task store. It owns every task, epic and subtask,
// the id sequence and the schedule. Callers only ever see copies.
//
// A single mutex guards the whole surface: aggregation and schedule upkeep
// touch several collections in one call.
type Store struct {
	mu sync.Mutex

	tasks    map[int]*domain.Task
	epics    map[int]*domain.Task
	subtasks map[int]*domain.Task

	seq      *Sequence
	schedule *scheduler.Schedule
	history  HistoryLog
	logger   *slog.Logger
}

type Option func(*Store)

// WithLogger sets the logger that receives rejection diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistory replaces the default unbounded view history.
func WithHistory(h HistoryLog) Option {
	return func(s *Store) {
		if h != nil {
			s.history = h
		}
	}
}

// WithSequence injects the id allocator, letting several stores share one.
func WithSequence(q *Sequence) Option {
	return func(s *Store) {
		if q != nil {
			s.seq = q
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		tasks:    make(map[int]*domain.Task),
		epics:    make(map[int]*domain.Task),
		subtasks: make(map[int]*domain.Task),
		seq:      NewSequence(),
		schedule: scheduler.NewSchedule(),
		history:  history.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Manager = (*Store)(nil)

func (s *Store) idInUse(id int) bool {
	_, inTasks := s.tasks[id]
	_, inEpics := s.epics[id]
	_, inSubtasks := s.subtasks[id]
	return inTasks || inEpics || inSubtasks
}

func (s *Store) maxID() int {
	m := 0
	for _, coll := range []map[int]*domain.Task{s.tasks, s.epics, s.subtasks} {
		for id := range coll {
			m = max(m, id)
		}
	}
	return m
}

func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Peek()
}

func (s *Store) ResetNextID(next int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.Reset(max(next, s.maxID()+1))
}

// sortedCopies returns copies of the collection ordered by id.
func sortedCopies(coll map[int]*domain.Task) []*domain.Task {
	out := domain.CloneAll(slices.Collect(maps.Values(coll)))
	scheduler.SortByID(out)
	return out
}

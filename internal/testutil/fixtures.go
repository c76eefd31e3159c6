package testutil

import (
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

// Base is a fixed local instant tests build time windows from.
var Base = time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)

// At returns Base shifted by the given hours and minutes.
func At(hours, minutes int) time.Time {
	return Base.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}

type TaskOption func(*domain.Task)

func WithID(id int) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithStatus(s domain.Status) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithStart(start time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartTime = &start
	}
}

func WithDuration(d time.Duration) TaskOption {
	return func(t *domain.Task) {
		t.Duration = &d
	}
}

// WithWindow sets start and duration together.
func WithWindow(start time.Time, d time.Duration) TaskOption {
	return func(t *domain.Task) {
		t.SetWindow(start, d)
	}
}

func NewTask(title string, opts ...TaskOption) *domain.Task {
	t := domain.NewTask(title, title+" description")
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewEpic(title string, opts ...TaskOption) *domain.Task {
	e := domain.NewEpic(title, title+" description")
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewSubtask(title string, epicID int, opts ...TaskOption) *domain.Task {
	s := domain.NewSubtask(title, title+" description", epicID)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IDs lists the ids of ts in order.
func IDs(ts []*domain.Task) []int {
	out := make([]int, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

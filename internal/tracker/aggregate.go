package tracker

import (
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

// aggregate recomputes an epic's status and time window from its current
// subtasks. Nothing is carried over from the previous result.
func (s *Store) aggregate(epic *domain.Task) {
	subs := s.subtasksOf(epic)

	statuses := make([]domain.Status, 0, len(subs))
	for _, sub := range subs {
		statuses = append(statuses, sub.Status)
	}
	epic.Status = domain.DeriveEpicStatus(statuses)

	var (
		start, end *time.Time
		total      time.Duration
		anchored   bool
	)
	for _, sub := range subs {
		if !sub.Anchored() {
			continue
		}
		anchored = true
		if start == nil || sub.StartTime.Before(*start) {
			st := *sub.StartTime
			start = &st
		}
		if e := sub.EndTime(); end == nil || e.After(*end) {
			end = e
		}
		total += *sub.Duration
	}
	if !anchored {
		epic.ClearWindow()
		return
	}
	epic.StartTime = start
	epic.Duration = &total
	epic.EpicEnd = end
}

func (s *Store) aggregateByID(epicID int) {
	if epic, ok := s.epics[epicID]; ok {
		s.aggregate(epic)
	}
}

// subtasksOf returns the stored subtasks of epic in attach order.
func (s *Store) subtasksOf(epic *domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(epic.SubtaskIDs))
	for _, id := range epic.SubtaskIDs {
		if sub, ok := s.subtasks[id]; ok {
			out = append(out, sub)
		}
	}
	return out
}

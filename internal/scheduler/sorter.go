package scheduler

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

// CanonicalSort orders tasks the same way the schedule does:
// 1. Start time: earliest first (nil last)
// 2. ID: ascending
func CanonicalSort(tasks []*domain.Task) {
	slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
		return compareKeys(keyOf(a), keyOf(b))
	})
}

// SortByID orders tasks by ascending id, the order listings use.
func SortByID(tasks []*domain.Task) {
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// Package history keeps the ordered log of recently viewed tasks.
package history

import (
	"fmt"
	"math"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Tracker records value snapshots of viewed tasks, oldest first. Each id
// appears at most once; viewing an id again moves it to the tail with a
// fresh snapshot. The log is unbounded unless built with NewBounded.
type Tracker struct {
	views *simplelru.LRU[int, *domain.Task]
}

// New returns an unbounded tracker.
func New() *Tracker {
	t, err := NewBounded(math.MaxInt)
	if err != nil {
		panic(fmt.Sprintf("creating history: %v", err))
	}
	return t
}

// NewBounded returns a tracker that evicts its oldest entry once it holds
// more than size entries.
func NewBounded(size int) (*Tracker, error) {
	views, err := simplelru.NewLRU[int, *domain.Task](size, nil)
	if err != nil {
		return nil, fmt.Errorf("creating history of size %d: %w", size, err)
	}
	return &Tracker{views: views}, nil
}

// Add records a snapshot of t at the tail, dropping any earlier snapshot
// with the same id. Nil tasks are ignored.
func (h *Tracker) Add(t *domain.Task) {
	if t == nil {
		return
	}
	// A present key is moved to the newest end and its value replaced.
	h.views.Add(t.ID, t.Clone())
}

// Remove purges the snapshot for id wherever it sits in the log.
func (h *Tracker) Remove(id int) bool {
	return h.views.Remove(id)
}

// History returns copies of the snapshots, oldest view first.
func (h *Tracker) History() []*domain.Task {
	return domain.CloneAll(h.views.Values())
}

package tracker

import "sync"

// Sequence allocates ids shared by tasks, epics and subtasks. Zero is never
// handed out; it marks a task that has no id yet. A Sequence is safe for
// use by several stores at once.
type Sequence struct {
	mu   sync.Mutex
	next int
}

func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next returns the next free id and advances the counter.
func (q *Sequence) Next() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	id := q.next
	q.next++
	return id
}

// Observe advances the counter past an explicitly supplied id.
func (q *Sequence) Observe(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if id >= q.next {
		q.next = id + 1
	}
}

// Peek returns the id Next would return without consuming it.
func (q *Sequence) Peek() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.next
}

// Reset sets the counter, clamped to at least one.
func (q *Sequence) Reset(next int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next = max(next, 1)
}

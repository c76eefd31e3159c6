package history

import (
	"testing"
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(id int, title string) *domain.Task {
	t := domain.NewTask(title, "")
	t.ID = id
	return t
}

func ids(ts []*domain.Task) []int {
	out := make([]int, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestAdd_KeepsViewOrder(t *testing.T) {
	h := New()
	h.Add(task(1, "a"))
	h.Add(task(2, "b"))
	h.Add(task(3, "c"))

	assert.Equal(t, []int{1, 2, 3}, ids(h.History()))
}

func TestAdd_ReviewMovesToTailWithLatestSnapshot(t *testing.T) {
	h := New()
	live := task(1, "draft")
	h.Add(live)
	h.Add(task(2, "b"))

	live.Title = "final"
	h.Add(live)

	got := h.History()
	require.Len(t, got, 2)
	assert.Equal(t, []int{2, 1}, ids(got))
	assert.Equal(t, "final", got[1].Title)
}

func TestAdd_SnapshotIsNotAliased(t *testing.T) {
	h := New()
	live := task(1, "before")
	h.Add(live)

	live.Title = "after"
	live.Status = domain.StatusDone

	got := h.History()
	require.Len(t, got, 1)
	assert.Equal(t, "before", got[0].Title)
	assert.Equal(t, domain.StatusNew, got[0].Status)

	got[0].Title = "tampered"
	assert.Equal(t, "before", h.History()[0].Title)
}

func TestAdd_PreservesVariantFields(t *testing.T) {
	h := New()
	epic := domain.NewEpic("release", "")
	epic.ID = 1
	epic.SubtaskIDs = []int{2, 3}
	sub := domain.NewSubtask("step", "", 1)
	sub.ID = 2
	sub.SetWindow(time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local), time.Hour)

	h.Add(epic)
	h.Add(sub)
	epic.SubtaskIDs = append(epic.SubtaskIDs, 4)

	got := h.History()
	require.Len(t, got, 2)
	assert.Equal(t, domain.KindEpic, got[0].Kind)
	assert.Equal(t, []int{2, 3}, got[0].SubtaskIDs)
	assert.Equal(t, domain.KindSubtask, got[1].Kind)
	assert.Equal(t, 1, got[1].EpicID)
	assert.Equal(t, sub.EndTime(), got[1].EndTime())
}

func TestRemove_AnyPosition(t *testing.T) {
	h := New()
	for i := 1; i <= 5; i++ {
		h.Add(task(i, "t"))
	}

	assert.True(t, h.Remove(1))
	assert.True(t, h.Remove(3))
	assert.True(t, h.Remove(5))
	assert.False(t, h.Remove(3))

	assert.Equal(t, []int{2, 4}, ids(h.History()))
}

func TestNew_IsUnbounded(t *testing.T) {
	h := New()
	for i := 1; i <= 50; i++ {
		h.Add(task(i, "t"))
	}
	assert.Len(t, h.History(), 50)
	assert.Equal(t, 1, h.History()[0].ID)
}

func TestNewBounded_EvictsOldest(t *testing.T) {
	h, err := NewBounded(2)
	require.NoError(t, err)
	h.Add(task(1, "a"))
	h.Add(task(2, "b"))
	h.Add(task(3, "c"))

	assert.Equal(t, []int{2, 3}, ids(h.History()))

	_, err = NewBounded(0)
	require.Error(t, err)
}

func TestAdd_IgnoresNil(t *testing.T) {
	h := New()
	h.Add(task(1, "a"))
	h.Add(nil)
	assert.Equal(t, []int{1}, ids(h.History()))
}

package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalSort_NilStartLast(t *testing.T) {
	undated := domain.NewTask("undated", "")
	undated.ID = 1
	tasks := []*domain.Task{
		undated,
		windowed(3, at(12, 0), time.Hour),
		windowed(2, at(10, 0), time.Hour),
	}

	CanonicalSort(tasks)

	assert.Equal(t, []int{2, 3, 1}, ids(tasks))
}

func TestCanonicalSort_IDTiebreak(t *testing.T) {
	tasks := []*domain.Task{
		windowed(9, at(10, 0), time.Hour),
		windowed(4, at(10, 0), 2*time.Hour),
	}

	CanonicalSort(tasks)

	assert.Equal(t, []int{4, 9}, ids(tasks))
}

func TestSortByID(t *testing.T) {
	tasks := []*domain.Task{
		windowed(3, at(8, 0), time.Hour),
		windowed(1, at(12, 0), time.Hour),
		windowed(2, at(10, 0), time.Hour),
	}

	SortByID(tasks)

	assert.Equal(t, []int{1, 2, 3}, ids(tasks))
}

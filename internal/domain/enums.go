package domain

import "fmt"

// Status is the lifecycle state of a task, epic, or subtask.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus converts the persisted token into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Kind tags the variant carried by a Task record.
type Kind string

const (
	KindTask    Kind = "TASK"
	KindEpic    Kind = "EPIC"
	KindSubtask Kind = "SUBTASK"
)

// ParseKind converts the persisted type token into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTask, KindEpic, KindSubtask:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown task type %q", s)
}

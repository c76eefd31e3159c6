package domain

// DeriveEpicStatus computes an epic's status from its subtasks' statuses:
// NEW when there are none or all are NEW, DONE when all are DONE, otherwise
// IN_PROGRESS.
func DeriveEpicStatus(statuses []Status) Status {
	if len(statuses) == 0 {
		return StatusNew
	}
	allNew, allDone := true, true
	for _, s := range statuses {
		if s != StatusNew {
			allNew = false
		}
		if s != StatusDone {
			allDone = false
		}
	}
	switch {
	case allNew:
		return StatusNew
	case allDone:
		return StatusDone
	default:
		return StatusInProgress
	}
}

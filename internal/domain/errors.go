package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the umbrella for every rejection that leaves the store
// untouched: bad field values, duplicate ids, self references, unknown epics
// and overlaps.
var ErrValidation = errors.New("validation rejected")

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = fmt.Errorf("%w: negative id", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrNegativeDuration = fmt.Errorf("%w: negative duration", ErrValidation)
	ErrIDInUse          = fmt.Errorf("%w: id already in use", ErrValidation)
	ErrSelfReference    = fmt.Errorf("%w: self reference", ErrValidation)
	ErrEpicNotFound     = fmt.Errorf("%w: epic not found", ErrValidation)
	ErrOverlap          = fmt.Errorf("%w: time window overlaps", ErrValidation)
)

// OverlapError reports the scheduled entry a candidate collided with.
type OverlapError struct {
	ID         int
	Title      string
	ConflictID int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("task %d (%q) overlaps scheduled task %d", e.ID, e.Title, e.ConflictID)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// IsValidation reports whether err is a non-fatal ValidationRejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

package persistence

import "fmt"

// Error reports storage that could not be read or written. It is distinct
// from a *codec.DecodeError, which means the storage was read but its
// content is corrupt.
type Error struct {
	Op     string
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

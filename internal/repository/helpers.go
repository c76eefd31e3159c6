package repository

import (
	"time"
)

const timestampLayout = time.RFC3339Nano

// parseTimestamp parses a stored timestamp, yielding the zero time when it is unreadable.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowUTC returns the current time in UTC.
func nowUTC() time.Time {
	return time.Now().UTC()
}

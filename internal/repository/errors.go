package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a conditional event update loses
	// an optimistic-concurrency race.
	ErrVersionConflict = errors.New("event version conflict")

	// ErrShiftOverlap is returned when a shift insert would overlap an
	// existing non-cancelled shift for the same staff member.
	ErrShiftOverlap = errors.New("shift overlaps existing shift for staff")
)

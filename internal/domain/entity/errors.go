package entity

import "errors"

var (
	// ErrNotFound is returned when a booking, program or room management
	// record does not exist. The allocator treats it as "nothing to do".
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when saving a room management record
	// whose version no longer matches the stored one, meaning a concurrent
	// writer won the race. The caller retries the whole pass.
	ErrVersionConflict = errors.New("room management version conflict")
)

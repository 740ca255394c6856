package models

import "errors"

var (
	// ErrUnknownIcon is returned when a page references an icon name that
	// is not part of the shipped icon set.
	ErrUnknownIcon = errors.New("unknown icon name")

	// ErrSessionEndsBeforeStart is returned when a session's end time is
	// not after its start time.
	ErrSessionEndsBeforeStart = errors.New("session must end after it starts")
)

package entities

import "errors"

// Domain errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrEmptyFilename   = errors.New("meeting filename is required")
)

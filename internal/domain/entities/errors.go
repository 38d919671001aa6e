package entities

import "errors"

// Domain errors
var (
	// Meeting errors
	ErrMeetingNotFound = errors.New("meeting not found")

	// Speaker errors
	ErrSpeakerNotFound = errors.New("speaker not found")
	ErrInvalidSpeaker  = errors.New("invalid speaker name")
)

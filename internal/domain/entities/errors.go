package entities

import "errors"

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrRunNotFound     = errors.New("extraction run not found")
	ErrEmptySource     = errors.New("meeting has no transcript or recording")
)

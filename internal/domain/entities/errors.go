package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidEmail      = errors.New("invalid email")

	// Meeting errors
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrInvalidMeetingType = errors.New("invalid meeting type")
	ErrInvalidStatus      = errors.New("invalid meeting status")

	// ErrStaleTransition means a conditional status update matched no row:
	// either the meeting is gone or another run already advanced it.
	ErrStaleTransition = errors.New("stale status transition")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid token")
)

package meeting

import (
	"encoding/json"
	"time"
)

// MarkerRequest is one marker supplied at creation or while recording
type MarkerRequest struct {
	TimeSeconds int     `json:"timeSeconds" validate:"min=0"`
	Type        string  `json:"type" validate:"required,markertype"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// CreateMeetingRequest represents the request to create a meeting. Markers
// bind from the "timestamps" field, the name clients use on the wire.
type CreateMeetingRequest struct {
	Title           *string         `json:"title,omitempty" validate:"omitempty,max=200"`
	Type            *string         `json:"type,omitempty" validate:"omitempty,meetingtype"`
	Context         *string         `json:"context,omitempty" validate:"omitempty,max=2000"`
	DurationSeconds *int            `json:"durationSeconds,omitempty" validate:"omitempty,min=0"`
	MeetingDate     *time.Time      `json:"meetingDate,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	Markers         []MarkerRequest `json:"timestamps,omitempty" validate:"omitempty,dive"`
}

// UpdateMeetingRequest represents a partial meeting update
type UpdateMeetingRequest struct {
	Title           *string         `json:"title,omitempty" validate:"omitempty,max=200"`
	Type            *string         `json:"type,omitempty" validate:"omitempty,meetingtype"`
	Context         *string         `json:"context,omitempty" validate:"omitempty,max=2000"`
	DurationSeconds *int            `json:"durationSeconds,omitempty" validate:"omitempty,min=0"`
	MeetingDate     *time.Time      `json:"meetingDate,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	Status          *string         `json:"status,omitempty" validate:"omitempty,meetingstatus"`
}

// AddMarkersRequest represents the request to append markers
type AddMarkersRequest struct {
	Markers []MarkerRequest `json:"markers" validate:"required,min=1,dive"`
}

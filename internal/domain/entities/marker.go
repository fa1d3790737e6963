package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MarkerType tags a user-placed annotation during recording
type MarkerType string

const (
	MarkerTypeImportantPoint MarkerType = "IMPORTANT_POINT"
	MarkerTypeDecisionMade   MarkerType = "DECISION_MADE"
	MarkerTypeActionItem     MarkerType = "ACTION_ITEM"
	MarkerTypeIdea           MarkerType = "IDEA"
)

// IsValid checks if the marker type is known
func (t MarkerType) IsValid() bool {
	switch t {
	case MarkerTypeImportantPoint, MarkerTypeDecisionMade, MarkerTypeActionItem, MarkerTypeIdea:
		return true
	}
	return false
}

// Marker is an immutable timestamped annotation owned by a Meeting.
// Markers are created once (at meeting creation or while recording) and are
// only ever removed as a cascade of meeting deletion.
type Marker struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	TimeSeconds int        `json:"time_seconds" gorm:"not null;check:time_seconds >= 0"`
	Type        MarkerType `json:"type" gorm:"type:varchar(50);not null"`
	Note        *string    `json:"note,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Marker) TableName() string {
	return "markers"
}

// Offset formats the marker position as mm:ss
func (m *Marker) Offset() string {
	return fmt.Sprintf("%02d:%02d", m.TimeSeconds/60, m.TimeSeconds%60)
}

// Render formats the marker for embedding in a report prompt
func (m *Marker) Render() string {
	note := "No note"
	if m.Note != nil && *m.Note != "" {
		note = *m.Note
	}
	return fmt.Sprintf("[%s] %s: %s", m.Offset(), m.Type, note)
}

package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the processing state of a meeting
type MeetingStatus string

const (
	MeetingStatusRecording        MeetingStatus = "RECORDING"
	MeetingStatusUploading        MeetingStatus = "UPLOADING"
	MeetingStatusTranscribing     MeetingStatus = "TRANSCRIBING"
	MeetingStatusGeneratingReport MeetingStatus = "GENERATING_REPORT"
	MeetingStatusCompleted        MeetingStatus = "COMPLETED"
	MeetingStatusFailed           MeetingStatus = "FAILED"
)

// statusRank orders the forward pipeline states. FAILED is terminal and
// reachable from any non-terminal state, so it has no rank.
var statusRank = map[MeetingStatus]int{
	MeetingStatusRecording:        0,
	MeetingStatusUploading:        1,
	MeetingStatusTranscribing:     2,
	MeetingStatusGeneratingReport: 3,
	MeetingStatusCompleted:        4,
}

// IsValid checks if the status is a known state
func (s MeetingStatus) IsValid() bool {
	if s == MeetingStatusFailed {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminal checks if no further pipeline stage may run
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusFailed
}

// CanTransitionTo reports whether moving from s to next keeps status
// monotonically advancing. FAILED is allowed from any non-terminal state.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == MeetingStatusFailed {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// MeetingType categorizes a meeting for report generation
type MeetingType string

const (
	MeetingTypeDaily         MeetingType = "DAILY"
	MeetingTypeClientMeeting MeetingType = "CLIENT_MEETING"
	MeetingTypeBrainstorm    MeetingType = "BRAINSTORM"
	MeetingTypeStrategy      MeetingType = "STRATEGY"
	MeetingTypeCommittee     MeetingType = "COMMITTEE"
	MeetingTypeRetrospective MeetingType = "RETROSPECTIVE"
	MeetingTypeOther         MeetingType = "OTHER"
)

// IsValid checks if the meeting type is known
func (t MeetingType) IsValid() bool {
	switch t {
	case MeetingTypeDaily, MeetingTypeClientMeeting, MeetingTypeBrainstorm,
		MeetingTypeStrategy, MeetingTypeCommittee, MeetingTypeRetrospective,
		MeetingTypeOther:
		return true
	}
	return false
}

// Meeting represents one recorded session and its derived artifacts
type Meeting struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	Title           *string     `json:"title,omitempty" gorm:"type:varchar(200)"`
	Type            MeetingType `json:"type" gorm:"type:varchar(50);not null;default:'OTHER'"`
	Context         *string     `json:"context,omitempty" gorm:"type:text"`
	DurationSeconds int         `json:"duration_seconds" gorm:"default:0"`

	// Pipeline fields. AudioLocation is write-once after intake; Transcript
	// and Report are each written exactly once by their pipeline stage.
	Status        MeetingStatus `json:"status" gorm:"type:varchar(30);not null;default:'RECORDING';index"`
	AudioLocation *string       `json:"audio_location,omitempty" gorm:"type:text"`
	Transcript    *string       `json:"transcript,omitempty" gorm:"type:text"`
	Report        *string       `json:"report,omitempty" gorm:"type:text"`

	MeetingDate time.Time      `json:"meeting_date" gorm:"not null;default:now();index"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb;default:'{}'"`

	Markers []Marker `json:"markers,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new meeting in the initial recording state
func NewMeeting(userID uuid.UUID) *Meeting {
	now := time.Now()
	return &Meeting{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        MeetingTypeOther,
		Status:      MeetingStatusRecording,
		MeetingDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasTranscript checks transcript presence without exposing its content
func (m *Meeting) HasTranscript() bool {
	return m.Transcript != nil && *m.Transcript != ""
}

// HasReport checks report presence without exposing its content
func (m *Meeting) HasReport() bool {
	return m.Report != nil && *m.Report != ""
}

// CanAcceptUpload reports whether a new audio upload may start a pipeline
// run. A meeting mid-pipeline rejects re-uploads; a failed one may retry.
func (m *Meeting) CanAcceptUpload() bool {
	return m.Status == MeetingStatusRecording || m.Status == MeetingStatusFailed
}

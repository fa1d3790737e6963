package processing

import (
	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// StatusView is the polling projection of a meeting's pipeline state. It
// deliberately excludes transcript and report content so the poll payload
// stays small.
type StatusView struct {
	MeetingID     uuid.UUID              `json:"meetingId"`
	Status        entities.MeetingStatus `json:"status"`
	Progress      int                    `json:"progress"`
	HasTranscript bool                   `json:"hasTranscript"`
	HasReport     bool                   `json:"hasReport"`
}

// progressByStatus maps each pipeline state to its advertised completion
// percentage. States outside the map project the pre-upload default.
var progressByStatus = map[entities.MeetingStatus]int{
	entities.MeetingStatusUploading:        20,
	entities.MeetingStatusTranscribing:     50,
	entities.MeetingStatusGeneratingReport: 80,
	entities.MeetingStatusCompleted:        100,
	entities.MeetingStatusFailed:           0,
}

const defaultProgress = 10

// ProjectStatus derives the polling view from a meeting record
func ProjectStatus(m *entities.Meeting) StatusView {
	progress, ok := progressByStatus[m.Status]
	if !ok {
		progress = defaultProgress
	}
	return StatusView{
		MeetingID:     m.ID,
		Status:        m.Status,
		Progress:      progress,
		HasTranscript: m.HasTranscript(),
		HasReport:     m.HasReport(),
	}
}

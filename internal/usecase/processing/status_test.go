package processing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func TestProjectStatusProgress(t *testing.T) {
	cases := []struct {
		status   entities.MeetingStatus
		progress int
	}{
		{entities.MeetingStatusRecording, 10},
		{entities.MeetingStatusUploading, 20},
		{entities.MeetingStatusTranscribing, 50},
		{entities.MeetingStatusGeneratingReport, 80},
		{entities.MeetingStatusCompleted, 100},
		{entities.MeetingStatusFailed, 0},
	}

	for _, c := range cases {
		m := entities.NewMeeting(uuid.New())
		m.Status = c.status
		view := ProjectStatus(m)
		if view.Progress != c.progress {
			t.Errorf("ProjectStatus(%s).Progress = %d, want %d", c.status, view.Progress, c.progress)
		}
		if view.Status != c.status {
			t.Errorf("ProjectStatus(%s).Status = %s", c.status, view.Status)
		}
	}
}

func TestProjectStatusFlags(t *testing.T) {
	m := entities.NewMeeting(uuid.New())
	view := ProjectStatus(m)
	if view.HasTranscript || view.HasReport {
		t.Error("fresh meeting should project no artifacts")
	}
	if view.MeetingID != m.ID {
		t.Errorf("MeetingID = %s, want %s", view.MeetingID, m.ID)
	}

	transcript := "bonjour"
	m.Transcript = &transcript
	view = ProjectStatus(m)
	if !view.HasTranscript {
		t.Error("HasTranscript should be true")
	}
	if view.HasReport {
		t.Error("HasReport should be false")
	}

	report := "# Compte-rendu"
	m.Report = &report
	view = ProjectStatus(m)
	if !view.HasReport {
		t.Error("HasReport should be true")
	}
}

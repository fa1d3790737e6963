package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestMeetingStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to MeetingStatus
		want     bool
	}{
		{MeetingStatusRecording, MeetingStatusUploading, true},
		{MeetingStatusUploading, MeetingStatusTranscribing, true},
		{MeetingStatusTranscribing, MeetingStatusGeneratingReport, true},
		{MeetingStatusGeneratingReport, MeetingStatusCompleted, true},
		{MeetingStatusRecording, MeetingStatusCompleted, true},
		{MeetingStatusUploading, MeetingStatusFailed, true},
		{MeetingStatusTranscribing, MeetingStatusUploading, false},
		{MeetingStatusCompleted, MeetingStatusFailed, false},
		{MeetingStatusFailed, MeetingStatusUploading, false},
		{MeetingStatusCompleted, MeetingStatusUploading, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestMeetingStatusIsTerminal(t *testing.T) {
	if !MeetingStatusCompleted.IsTerminal() {
		t.Error("COMPLETED should be terminal")
	}
	if !MeetingStatusFailed.IsTerminal() {
		t.Error("FAILED should be terminal")
	}
	if MeetingStatusTranscribing.IsTerminal() {
		t.Error("TRANSCRIBING should not be terminal")
	}
}

func TestNewMeetingDefaults(t *testing.T) {
	userID := uuid.New()
	m := NewMeeting(userID)

	if m.UserID != userID {
		t.Errorf("UserID = %s, want %s", m.UserID, userID)
	}
	if m.Status != MeetingStatusRecording {
		t.Errorf("Status = %s, want RECORDING", m.Status)
	}
	if m.Type != MeetingTypeOther {
		t.Errorf("Type = %s, want OTHER", m.Type)
	}
	if m.HasTranscript() || m.HasReport() {
		t.Error("new meeting should have no transcript or report")
	}
	if !m.CanAcceptUpload() {
		t.Error("new meeting should accept uploads")
	}
}

func TestCanAcceptUpload(t *testing.T) {
	m := NewMeeting(uuid.New())

	for _, status := range []MeetingStatus{MeetingStatusUploading, MeetingStatusTranscribing, MeetingStatusGeneratingReport, MeetingStatusCompleted} {
		m.Status = status
		if m.CanAcceptUpload() {
			t.Errorf("status %s should reject uploads", status)
		}
	}

	m.Status = MeetingStatusFailed
	if !m.CanAcceptUpload() {
		t.Error("FAILED meeting should accept a retry upload")
	}
}

func TestMeetingTypeIsValid(t *testing.T) {
	if !MeetingTypeDaily.IsValid() {
		t.Error("DAILY should be valid")
	}
	if MeetingType("STANDUP").IsValid() {
		t.Error("STANDUP should not be valid")
	}
}

package meeting

// TranscribeAcceptedResponse acknowledges an accepted audio upload. The
// pipeline run continues after this response is sent.
type TranscribeAcceptedResponse struct {
	MeetingID string `json:"meetingId"`
	Status    string `json:"status"`
}

// ReportResponse carries a generated meeting report
type ReportResponse struct {
	MeetingID string `json:"meetingId"`
	Report    string `json:"report"`
}

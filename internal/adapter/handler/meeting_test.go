package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/http/middleware"
	meetinguc "github.com/johnquangdev/meeting-scribe/internal/usecase/meeting"
	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"
)

func newMeetingFixture(t *testing.T) (*Meeting, *stubMeetingRepo) {
	t.Helper()
	repo := newStubMeetingRepo()
	service := meetinguc.NewService(repo, stubAudioStore{}, zap.NewNop())
	return NewMeeting(service, zap.NewNop()), repo
}

func jsonContext(body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != uuid.Nil {
		c.Set(middleware.UserIDContextKey, userID)
	}
	return c, rec
}

func TestMeetingCreateBindsTimestampsField(t *testing.T) {
	h, _ := newMeetingFixture(t)

	body := `{
		"title": "Sprint planning",
		"type": "DAILY",
		"timestamps": [
			{"timeSeconds": 12, "type": "DECISION_MADE", "note": "ship it"},
			{"timeSeconds": 30, "type": "IDEA"}
		]
	}`
	c, rec := jsonContext(body, uuid.New())

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data entities.Meeting `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Markers) != 2 {
		t.Fatalf("marker count = %d, want 2", len(resp.Data.Markers))
	}
	if resp.Data.Markers[0].Type != entities.MarkerTypeDecisionMade {
		t.Errorf("marker type = %s", resp.Data.Markers[0].Type)
	}
	if resp.Data.Markers[1].TimeSeconds != 30 {
		t.Errorf("marker time = %d", resp.Data.Markers[1].TimeSeconds)
	}
}

func TestMeetingCreateRejectsInvalidTimestampEntry(t *testing.T) {
	h, _ := newMeetingFixture(t)

	body := `{"timestamps": [{"timeSeconds": 5, "type": "BOOKMARK"}]}`
	c, rec := jsonContext(body, uuid.New())

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
}

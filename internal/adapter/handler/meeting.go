package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	meetingdto "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	meetinguc "github.com/johnquangdev/meeting-scribe/internal/usecase/meeting"
)

// Meeting handles meeting CRUD HTTP requests
type Meeting struct {
	service *meetinguc.Service
	logger  *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(service *meetinguc.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// Create creates a meeting together with any markers captured so far
// POST /v1/meetings
func (h *Meeting) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingdto.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetinguc.CreateInput{
		Title:           req.Title,
		Type:            meetingTypePtr(req.Type),
		Context:         req.Context,
		DurationSeconds: req.DurationSeconds,
		MeetingDate:     req.MeetingDate,
		Markers:         toMarkerInputs(req.Markers),
	}
	if len(req.Metadata) > 0 {
		input.Metadata = datatypes.JSON(req.Metadata)
	}

	meeting, err := h.service.Create(c.Request().Context(), userID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccessStatus(h.logger, c, http.StatusCreated, meeting)
}

// List returns the user's meetings newest first
// GET /v1/meetings
func (h *Meeting) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetings)
}

// Get returns one owned meeting with its markers
// GET /v1/meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.service.Get(c.Request().Context(), id, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meeting)
}

// Update applies a partial update to an owned meeting
// PATCH /v1/meetings/:id
func (h *Meeting) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingdto.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetinguc.UpdateInput{
		Title:           req.Title,
		Type:            meetingTypePtr(req.Type),
		Context:         req.Context,
		DurationSeconds: req.DurationSeconds,
		MeetingDate:     req.MeetingDate,
	}
	if len(req.Metadata) > 0 {
		input.Metadata = datatypes.JSON(req.Metadata)
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		input.Status = &status
	}

	meeting, err := h.service.Update(c.Request().Context(), id, userID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meeting)
}

// Delete removes an owned meeting, its markers, and its stored audio
// DELETE /v1/meetings/:id
func (h *Meeting) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id, userID); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "meeting deleted"})
}

// AddMarkers appends markers to a meeting that is still recording
// POST /v1/meetings/:id/markers
func (h *Meeting) AddMarkers(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingdto.AddMarkersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.service.AddMarkers(c.Request().Context(), id, userID, toMarkerInputs(req.Markers))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meeting)
}

// GetReport returns the generated report of an owned meeting
// GET /v1/meetings/:id/report
func (h *Meeting) GetReport(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	report, err := h.service.GetReport(c.Request().Context(), id, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ReportResponse{
		MeetingID: id.String(),
		Report:    report,
	})
}

func meetingTypePtr(s *string) *entities.MeetingType {
	if s == nil {
		return nil
	}
	t := entities.MeetingType(*s)
	return &t
}

func toMarkerInputs(reqs []meetingdto.MarkerRequest) []meetinguc.MarkerInput {
	inputs := make([]meetinguc.MarkerInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, meetinguc.MarkerInput{
			TimeSeconds: r.TimeSeconds,
			Type:        entities.MarkerType(r.Type),
			Note:        r.Note,
		})
	}
	return inputs
}

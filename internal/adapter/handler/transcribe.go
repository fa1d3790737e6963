package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	meetingdto "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/processing"
)

// Transcribe handles audio intake and pipeline status polling
type Transcribe struct {
	service *processing.Service
	logger  *zap.Logger
}

// NewTranscribe creates a new transcribe handler
func NewTranscribe(service *processing.Service, logger *zap.Logger) *Transcribe {
	return &Transcribe{
		service: service,
		logger:  logger,
	}
}

// Upload accepts a multipart audio upload and starts a pipeline run.
// Responds 202 as soon as the run is spawned; progress is polled via Status.
// POST /v1/transcribe
func (h *Transcribe) Upload(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetingIDValue := c.FormValue("meetingId")
	if meetingIDValue == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meetingId is required"))
	}
	meetingID, err := uuid.Parse(meetingIDValue)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meetingId"))
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingAudioFile())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer file.Close()

	upload := processing.AudioUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}

	view, err := h.service.IntakeAudio(c.Request().Context(), meetingID, userID, upload)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccessStatus(h.logger, c, http.StatusAccepted, meetingdto.TranscribeAcceptedResponse{
		MeetingID: view.MeetingID.String(),
		Status:    string(view.Status),
	})
}

// Status returns the polling projection of a meeting's pipeline state
// GET /v1/transcribe/:id/status
func (h *Transcribe) Status(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	view, err := h.service.Status(c.Request().Context(), id, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, view)
}

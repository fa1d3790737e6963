package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
)

// AudioRemover deletes stored audio blobs when their meeting goes away
type AudioRemover interface {
	RemoveAudio(ctx context.Context, objectName string) error
}

// Service handles meeting CRUD and marker operations
type Service struct {
	meetingRepo repositories.MeetingRepository
	audioStore  AudioRemover
	logger      *zap.Logger
}

// NewService creates a new meeting service
func NewService(meetingRepo repositories.MeetingRepository, audioStore AudioRemover, logger *zap.Logger) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		audioStore:  audioStore,
		logger:      logger,
	}
}

// MarkerInput is a marker supplied at creation or appended while recording
type MarkerInput struct {
	TimeSeconds int
	Type        entities.MarkerType
	Note        *string
}

// CreateInput carries the fields accepted when creating a meeting
type CreateInput struct {
	Title           *string
	Type            *entities.MeetingType
	Context         *string
	DurationSeconds *int
	MeetingDate     *time.Time
	Metadata        datatypes.JSON
	Markers         []MarkerInput
}

// UpdateInput carries the patchable fields of a meeting. Pipeline-owned
// fields (status, transcript, report, audio location) are not reachable
// from here.
type UpdateInput struct {
	Title           *string
	Type            *entities.MeetingType
	Context         *string
	DurationSeconds *int
	MeetingDate     *time.Time
	Metadata        datatypes.JSON

	// Status lets the client advance its own record (e.g. out of
	// RECORDING). The write is conditional on the status the transition
	// starts from, so it cannot clobber a pipeline-run state.
	Status *entities.MeetingStatus
}

// Create creates a meeting in the RECORDING state, with any markers
// captured so far
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*entities.Meeting, error) {
	meeting := entities.NewMeeting(userID)

	if input.Title != nil {
		meeting.Title = input.Title
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, apperrors.ErrInvalidArgument("unknown meeting type")
		}
		meeting.Type = *input.Type
	}
	if input.Context != nil {
		meeting.Context = input.Context
	}
	if input.DurationSeconds != nil {
		if *input.DurationSeconds < 0 {
			return nil, apperrors.ErrInvalidArgument("durationSeconds must not be negative")
		}
		meeting.DurationSeconds = *input.DurationSeconds
	}
	if input.MeetingDate != nil {
		meeting.MeetingDate = *input.MeetingDate
	}
	if input.Metadata != nil {
		meeting.Metadata = input.Metadata
	}

	markers, err := buildMarkers(meeting.ID, input.Markers)
	if err != nil {
		return nil, err
	}
	meeting.Markers = markers

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	s.logger.Info("meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("markers", len(meeting.Markers)))

	return meeting, nil
}

// Get returns an owned meeting with its markers
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id, userID)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return nil, apperrors.ErrMeetingNotFound(id.String())
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return meeting, nil
}

// List returns the user's meetings newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return meetings, nil
}

// Update applies a partial update to an owned meeting's descriptive fields
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, input UpdateInput) (*entities.Meeting, error) {
	updates := repositories.MeetingUpdates{}

	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, apperrors.ErrInvalidArgument("unknown meeting type")
		}
		updates["type"] = *input.Type
	}
	if input.Context != nil {
		updates["context"] = *input.Context
	}
	if input.DurationSeconds != nil {
		if *input.DurationSeconds < 0 {
			return nil, apperrors.ErrInvalidArgument("durationSeconds must not be negative")
		}
		updates["duration_seconds"] = *input.DurationSeconds
	}
	if input.MeetingDate != nil {
		updates["meeting_date"] = *input.MeetingDate
	}
	if input.Metadata != nil {
		updates["metadata"] = input.Metadata
	}

	if input.Status != nil {
		meeting, err := s.Get(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		if *input.Status != meeting.Status {
			if !input.Status.IsValid() || !meeting.Status.CanTransitionTo(*input.Status) {
				return nil, apperrors.ErrMeetingInvalidState(id.String(), string(meeting.Status))
			}
			if err := s.meetingRepo.AdvanceStatus(ctx, id, meeting.Status, *input.Status, updates); err != nil {
				if err == entities.ErrStaleTransition {
					return nil, apperrors.ErrMeetingInvalidState(id.String(), string(meeting.Status))
				}
				return nil, apperrors.ErrDBQueryFailed(err)
			}
			return s.Get(ctx, id, userID)
		}
	}

	if len(updates) > 0 {
		if err := s.meetingRepo.UpdateFields(ctx, id, userID, updates); err != nil {
			if err == entities.ErrMeetingNotFound {
				return nil, apperrors.ErrMeetingNotFound(id.String())
			}
			return nil, apperrors.ErrDBQueryFailed(err)
		}
	}

	return s.Get(ctx, id, userID)
}

// AddMarkers appends markers to a meeting that is still recording
func (s *Service) AddMarkers(ctx context.Context, id, userID uuid.UUID, inputs []MarkerInput) (*entities.Meeting, error) {
	meeting, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if meeting.Status != entities.MeetingStatusRecording {
		return nil, apperrors.ErrMeetingInvalidState(id.String(), string(meeting.Status))
	}

	markers, err := buildMarkers(meeting.ID, inputs)
	if err != nil {
		return nil, err
	}

	if err := s.meetingRepo.AddMarkers(ctx, markers); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	return s.Get(ctx, id, userID)
}

// GetReport returns the generated report of an owned meeting
func (s *Service) GetReport(ctx context.Context, id, userID uuid.UUID) (string, error) {
	meeting, err := s.Get(ctx, id, userID)
	if err != nil {
		return "", err
	}

	if !meeting.HasReport() {
		return "", apperrors.ErrReportNotFound(id.String())
	}

	return *meeting.Report, nil
}

// Delete removes an owned meeting, its markers, and its stored audio
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	meeting, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.meetingRepo.Delete(ctx, id, userID); err != nil {
		if err == entities.ErrMeetingNotFound {
			return apperrors.ErrMeetingNotFound(id.String())
		}
		return apperrors.ErrDBQueryFailed(err)
	}

	// Audio removal is best effort. The record is gone; an orphaned blob
	// only costs storage.
	if meeting.AudioLocation != nil && *meeting.AudioLocation != "" {
		if err := s.audioStore.RemoveAudio(ctx, *meeting.AudioLocation); err != nil {
			s.logger.Warn("failed to remove audio for deleted meeting",
				zap.String("meeting_id", id.String()),
				zap.String("audio_location", *meeting.AudioLocation),
				zap.Error(err))
		}
	}

	s.logger.Info("meeting deleted",
		zap.String("meeting_id", id.String()),
		zap.String("user_id", userID.String()))

	return nil
}

func buildMarkers(meetingID uuid.UUID, inputs []MarkerInput) ([]entities.Marker, error) {
	markers := make([]entities.Marker, 0, len(inputs))
	for _, in := range inputs {
		if in.TimeSeconds < 0 {
			return nil, apperrors.ErrInvalidArgument("marker timeSeconds must not be negative")
		}
		if !in.Type.IsValid() {
			return nil, apperrors.ErrInvalidArgument("unknown marker type")
		}
		markers = append(markers, entities.Marker{
			ID:          uuid.New(),
			MeetingID:   meetingID,
			TimeSeconds: in.TimeSeconds,
			Type:        in.Type,
			Note:        in.Note,
		})
	}
	return markers, nil
}

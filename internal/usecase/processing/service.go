package processing

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/jobcontext"
)

// AudioStore is the blob storage contract the pipeline needs: persist the
// uploaded audio, stream it back for transcription, and clean up blobs
// that lost an intake race or were superseded by a retry.
type AudioStore interface {
	UploadAudio(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	OpenAudio(ctx context.Context, objectName string) (io.ReadCloser, error)
	RemoveAudio(ctx context.Context, objectName string) error
}

const (
	// defaultMaxConcurrentRuns caps simultaneous pipeline runs so a burst
	// of uploads cannot exhaust connections to the AI backends
	defaultMaxConcurrentRuns = 4

	// defaultRunTimeout bounds one full run: transcription of up to 100 MiB
	// of audio plus report generation
	defaultRunTimeout = 30 * time.Minute
)

// AudioUpload carries one incoming audio file through intake validation
type AudioUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Service owns the asynchronous processing pipeline: audio intake, the
// detached transcription and report generation run, and the status
// projection clients poll.
type Service struct {
	meetingRepo repositories.MeetingRepository
	audioStore  AudioStore
	transcriber Transcriber
	reporter    Reporter
	cfg         *config.Config
	logger      *zap.Logger

	sem        chan struct{}
	runs       sync.WaitGroup
	runTimeout time.Duration
}

// NewService creates the processing service
func NewService(
	meetingRepo repositories.MeetingRepository,
	audioStore AudioStore,
	transcriber Transcriber,
	reporter Reporter,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		audioStore:  audioStore,
		transcriber: transcriber,
		reporter:    reporter,
		cfg:         cfg,
		logger:      logger,
		sem:         make(chan struct{}, defaultMaxConcurrentRuns),
		runTimeout:  defaultRunTimeout,
	}
}

// IntakeAudio validates and stores an uploaded recording, transitions the
// meeting to UPLOADING, and starts a detached pipeline run. It returns as
// soon as the run is spawned; callers observe progress via Status.
func (s *Service) IntakeAudio(ctx context.Context, meetingID, userID uuid.UUID, upload AudioUpload) (*StatusView, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID, userID)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return nil, apperrors.ErrMeetingNotFound(meetingID.String())
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	if upload.Content == nil {
		return nil, apperrors.ErrMissingAudioFile()
	}
	if !s.cfg.IsAllowedMediaType(upload.ContentType) {
		return nil, apperrors.ErrUnsupportedMediaType(upload.ContentType)
	}
	if upload.Size > s.cfg.Upload.MaxBytes {
		return nil, apperrors.ErrUploadTooLarge(s.cfg.Upload.MaxBytes)
	}
	if !meeting.CanAcceptUpload() {
		return nil, apperrors.ErrUploadInProgress(meetingID.String(), string(meeting.Status))
	}

	// Each upload gets its own object. Two concurrent uploads can both
	// reach storage before one loses the status race below, so a shared
	// name would let the loser clobber the winner's bytes.
	objectName := audioObjectName(upload.Filename, upload.ContentType)
	if err := s.audioStore.UploadAudio(ctx, objectName, upload.Content, upload.Size, upload.ContentType); err != nil {
		return nil, apperrors.ErrStorageFailed("upload audio", err)
	}

	updates := repositories.MeetingUpdates{
		"audio_location": objectName,
	}
	// A retry after failure starts a fresh run; stale artifacts from the
	// failed attempt must not leak into the new one.
	if meeting.Status == entities.MeetingStatusFailed {
		updates["transcript"] = nil
		updates["report"] = nil
	}

	if err := s.meetingRepo.AdvanceStatus(ctx, meetingID, meeting.Status, entities.MeetingStatusUploading, updates); err != nil {
		if errors.Is(err, entities.ErrStaleTransition) {
			// Another upload won the race between our read and this write.
			// Our blob was never recorded anywhere; clean it up.
			s.removeAudioQuietly(ctx, meetingID, objectName)
			return nil, apperrors.ErrUploadInProgress(meetingID.String(), string(meeting.Status))
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	// A retry replaced audio_location; the failed attempt's blob is now
	// unreachable and would otherwise leak.
	if meeting.AudioLocation != nil && *meeting.AudioLocation != "" && *meeting.AudioLocation != objectName {
		s.removeAudioQuietly(ctx, meetingID, *meeting.AudioLocation)
	}

	s.logger.Info("audio accepted, starting pipeline run",
		zap.String("meeting_id", meetingID.String()),
		zap.String("object", objectName),
		zap.Int64("size_bytes", upload.Size),
		zap.String("content_type", upload.ContentType))

	s.runs.Add(1)
	go s.runPipeline(meetingID)

	return &StatusView{
		MeetingID:     meetingID,
		Status:        entities.MeetingStatusUploading,
		Progress:      progressByStatus[entities.MeetingStatusUploading],
		HasTranscript: false,
		HasReport:     false,
	}, nil
}

// Status returns the polling projection for an owned meeting
func (s *Service) Status(ctx context.Context, meetingID, userID uuid.UUID) (*StatusView, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID, userID)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return nil, apperrors.ErrMeetingNotFound(meetingID.String())
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	view := ProjectStatus(meeting)
	return &view, nil
}

// Drain blocks until in-flight pipeline runs finish or the context expires.
// Called during graceful shutdown.
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runPipeline executes one detached run for a meeting. It owns its own
// context: the triggering HTTP request is long gone by the time the stages
// finish.
func (s *Service) runPipeline(meetingID uuid.UUID) {
	defer s.runs.Done()

	ctx, cancel := jobcontext.RunBegin(context.Background(), meetingID, s.runTimeout)
	defer cancel()

	// Bounded concurrency across runs
	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	err := jobcontext.Run(ctx, s.process)
	if err == nil {
		s.logger.Info("pipeline run completed",
			zap.String("meeting_id", meetingID.String()),
			zap.Duration("elapsed", jobcontext.Elapsed(ctx)))
		return
	}

	if errors.Is(err, entities.ErrStaleTransition) {
		// The meeting advanced elsewhere or was deleted mid-run. Nothing
		// to mark failed; the run simply stops.
		s.logger.Info("pipeline run superseded",
			zap.String("meeting_id", meetingID.String()),
			zap.String("stage", jobcontext.GetStage(ctx)))
		return
	}

	s.logger.Error("pipeline run failed",
		zap.String("meeting_id", meetingID.String()),
		zap.String("stage", jobcontext.GetStage(ctx)),
		zap.Duration("elapsed", jobcontext.Elapsed(ctx)),
		zap.Error(err))

	// The run context may already be expired; failure marking gets its own
	failCtx, failCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer failCancel()
	if err := s.meetingRepo.MarkFailed(failCtx, meetingID); err != nil {
		s.logger.Error("failed to mark meeting as failed",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err))
	}
}

// process runs the pipeline stages in order. Every stage transition is
// persisted before the stage's external call, so a crash leaves the record
// on the stage that was in flight.
func (s *Service) process(ctx context.Context) error {
	meetingID := jobcontext.GetMeetingID(ctx)

	// Stage: transcription
	ctx = jobcontext.WithStage(ctx, "transcribing")
	if err := s.meetingRepo.AdvanceStatus(ctx, meetingID, entities.MeetingStatusUploading, entities.MeetingStatusTranscribing, nil); err != nil {
		return err
	}

	meeting, err := s.meetingRepo.Get(ctx, meetingID)
	if err != nil {
		return err
	}

	transcript, err := s.transcribe(ctx, meeting)
	if err != nil {
		return err
	}

	// Stage: report generation. The transcript lands in the same write as
	// the transition so the two can never diverge.
	ctx = jobcontext.WithStage(ctx, "generating_report")
	if err := s.meetingRepo.AdvanceStatus(ctx, meetingID, entities.MeetingStatusTranscribing, entities.MeetingStatusGeneratingReport, repositories.MeetingUpdates{
		"transcript": transcript,
	}); err != nil {
		return err
	}

	// Re-read so the prompt sees markers or metadata added after intake
	meeting, err = s.meetingRepo.Get(ctx, meetingID)
	if err != nil {
		return err
	}

	report, err := s.generateReport(ctx, meeting)
	if err != nil {
		return err
	}

	return s.meetingRepo.AdvanceStatus(ctx, meetingID, entities.MeetingStatusGeneratingReport, entities.MeetingStatusCompleted, repositories.MeetingUpdates{
		"report": report,
	})
}

// transcribe produces the transcript for a meeting's stored audio. Outside
// production a missing backend or a failed call degrades to placeholder
// content; in production the error propagates and fails the run.
func (s *Service) transcribe(ctx context.Context, meeting *entities.Meeting) (string, error) {
	if !s.transcriber.Configured() {
		if s.cfg.IsProduction() {
			return "", apperrors.ErrAIServiceUnavailable("transcription")
		}
		s.logger.Warn("transcription backend not configured, using placeholder transcript",
			zap.String("meeting_id", meeting.ID.String()))
		return placeholderTranscript, nil
	}

	if meeting.AudioLocation == nil || *meeting.AudioLocation == "" {
		return "", apperrors.ErrTranscriptionFailed(errors.New("meeting has no stored audio"))
	}

	audio, err := s.audioStore.OpenAudio(ctx, *meeting.AudioLocation)
	if err != nil {
		return "", apperrors.ErrStorageFailed("open audio", err)
	}
	defer audio.Close()

	transcript, err := s.transcriber.Transcribe(ctx, path.Base(*meeting.AudioLocation), audio)
	if err != nil {
		if s.cfg.IsProduction() {
			return "", apperrors.ErrTranscriptionFailed(err)
		}
		s.logger.Warn("transcription failed, using placeholder transcript",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err))
		return placeholderTranscript, nil
	}
	if strings.TrimSpace(transcript) == "" {
		return "", apperrors.ErrTranscriptionFailed(errors.New("backend returned empty transcript"))
	}
	return transcript, nil
}

// generateReport produces the report, with the same degradation policy as
// transcribe.
func (s *Service) generateReport(ctx context.Context, meeting *entities.Meeting) (string, error) {
	title := ""
	if meeting.Title != nil {
		title = *meeting.Title
	}

	if !s.reporter.Configured() {
		if s.cfg.IsProduction() {
			return "", apperrors.ErrAIServiceUnavailable("report generation")
		}
		s.logger.Warn("report backend not configured, using placeholder report",
			zap.String("meeting_id", meeting.ID.String()))
		return placeholderReport(title), nil
	}

	report, err := s.reporter.Generate(ctx, meeting)
	if err != nil {
		if s.cfg.IsProduction() {
			return "", apperrors.ErrReportGenerationFailed(err)
		}
		s.logger.Warn("report generation failed, using placeholder report",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err))
		return placeholderReport(title), nil
	}
	return report, nil
}

// extByContentType maps accepted media types to a storage extension when
// the uploaded filename carries none
var extByContentType = map[string]string{
	"audio/webm":  ".webm",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/mp4":   ".m4a",
	"audio/mpeg":  ".mp3",
	"audio/ogg":   ".ogg",
	"video/webm":  ".webm",
}

// audioObjectName builds a collision-free storage name for one upload. The
// extension comes from the validated content type; the client filename is
// only a fallback for types the map does not cover.
func audioObjectName(filename, contentType string) string {
	ext := extByContentType[contentType]
	if ext == "" {
		ext = path.Ext(filename)
	}
	return "audio/" + uuid.New().String() + ext
}

// removeAudioQuietly deletes a blob that is no longer referenced. Failures
// leave an orphan object behind, which is preferable to failing the intake.
func (s *Service) removeAudioQuietly(ctx context.Context, meetingID uuid.UUID, objectName string) {
	if err := s.audioStore.RemoveAudio(ctx, objectName); err != nil {
		s.logger.Warn("failed to remove unreferenced audio object",
			zap.String("meeting_id", meetingID.String()),
			zap.String("object", objectName),
			zap.Error(err))
	}
}

package meeting

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
)

type fakeRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{meetings: map[uuid.UUID]*entities.Meeting{}}
}

func (r *fakeRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.meetings[m.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id, userID uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok || m.UserID != userID {
		return nil, entities.ErrMeetingNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Meeting
	for _, m := range r.meetings {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateFields(_ context.Context, id, userID uuid.UUID, updates repositories.MeetingUpdates) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok || m.UserID != userID {
		return entities.ErrMeetingNotFound
	}
	if title, ok := updates["title"].(string); ok {
		m.Title = &title
	}
	if ctxVal, ok := updates["context"].(string); ok {
		m.Context = &ctxVal
	}
	if mt, ok := updates["type"].(entities.MeetingType); ok {
		m.Type = mt
	}
	if d, ok := updates["duration_seconds"].(int); ok {
		m.DurationSeconds = d
	}
	return nil
}

func (r *fakeRepo) AdvanceStatus(_ context.Context, id uuid.UUID, from, to entities.MeetingStatus, _ repositories.MeetingUpdates) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok || m.Status != from {
		return entities.ErrStaleTransition
	}
	m.Status = to
	return nil
}

func (r *fakeRepo) AddMarkers(_ context.Context, markers []entities.Marker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mk := range markers {
		if m, ok := r.meetings[mk.MeetingID]; ok {
			m.Markers = append(m.Markers, mk)
		}
	}
	return nil
}

func (r *fakeRepo) MarkFailed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meetings[id]; ok && !m.Status.IsTerminal() {
		m.Status = entities.MeetingStatusFailed
	}
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok || m.UserID != userID {
		return entities.ErrMeetingNotFound
	}
	delete(r.meetings, id)
	return nil
}

type fakeRemover struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (f *fakeRemover) RemoveAudio(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, objectName)
	return nil
}

func newTestService(repo *fakeRepo, remover *fakeRemover) *Service {
	return NewService(repo, remover, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestCreateWithMarkers(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &fakeRemover{})
	userID := uuid.New()

	mt := entities.MeetingTypeDaily
	m, err := s.Create(context.Background(), userID, CreateInput{
		Title: strPtr("Standup"),
		Type:  &mt,
		Markers: []MarkerInput{
			{TimeSeconds: 10, Type: entities.MarkerTypeActionItem, Note: strPtr("fix CI")},
			{TimeSeconds: 30, Type: entities.MarkerTypeIdea},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.Status != entities.MeetingStatusRecording {
		t.Fatalf("status = %s, want RECORDING", m.Status)
	}
	if len(m.Markers) != 2 {
		t.Fatalf("markers = %d, want 2", len(m.Markers))
	}
	for _, mk := range m.Markers {
		if mk.MeetingID != m.ID {
			t.Fatalf("marker bound to %s, want %s", mk.MeetingID, m.ID)
		}
	}
}

func TestCreateRejectsInvalidMarker(t *testing.T) {
	s := newTestService(newFakeRepo(), &fakeRemover{})

	_, err := s.Create(context.Background(), uuid.New(), CreateInput{
		Markers: []MarkerInput{{TimeSeconds: -1, Type: entities.MarkerTypeIdea}},
	})
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}

	_, err = s.Create(context.Background(), uuid.New(), CreateInput{
		Markers: []MarkerInput{{TimeSeconds: 5, Type: entities.MarkerType("BOOKMARK")}},
	})
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("expected INVALID_ARGUMENT for unknown type, got %v", err)
	}
}

func TestGetScopedToOwner(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &fakeRemover{})
	userID := uuid.New()

	m, err := s.Create(context.Background(), userID, CreateInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Get(context.Background(), m.ID, userID); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	_, err = s.Get(context.Background(), m.ID, uuid.New())
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MEETING_NOT_FOUND {
		t.Fatalf("expected MEETING_NOT_FOUND for foreign user, got %v", err)
	}
}

func TestAddMarkersOnlyWhileRecording(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &fakeRemover{})
	userID := uuid.New()

	m, _ := s.Create(context.Background(), userID, CreateInput{})

	if _, err := s.AddMarkers(context.Background(), m.ID, userID, []MarkerInput{
		{TimeSeconds: 12, Type: entities.MarkerTypeDecisionMade},
	}); err != nil {
		t.Fatalf("add markers while recording: %v", err)
	}

	repo.meetings[m.ID].Status = entities.MeetingStatusTranscribing

	_, err := s.AddMarkers(context.Background(), m.ID, userID, []MarkerInput{
		{TimeSeconds: 44, Type: entities.MarkerTypeIdea},
	})
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MEETING_INVALID_STATE {
		t.Fatalf("expected MEETING_INVALID_STATE, got %v", err)
	}
}

func TestGetReportBeforeGeneration(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &fakeRemover{})
	userID := uuid.New()

	m, _ := s.Create(context.Background(), userID, CreateInput{})

	_, err := s.GetReport(context.Background(), m.ID, userID)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_REPORT_NOT_FOUND {
		t.Fatalf("expected REPORT_NOT_FOUND, got %v", err)
	}

	repo.meetings[m.ID].Report = strPtr("# Compte-rendu")
	report, err := s.GetReport(context.Background(), m.ID, userID)
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if report != "# Compte-rendu" {
		t.Fatalf("report = %q", report)
	}
}

func TestDeleteRemovesStoredAudio(t *testing.T) {
	repo := newFakeRepo()
	remover := &fakeRemover{}
	s := newTestService(repo, remover)
	userID := uuid.New()

	m, _ := s.Create(context.Background(), userID, CreateInput{})
	repo.meetings[m.ID].AudioLocation = strPtr("audio/" + m.ID.String() + ".webm")

	if err := s.Delete(context.Background(), m.ID, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(remover.removed) != 1 || remover.removed[0] != "audio/"+m.ID.String()+".webm" {
		t.Fatalf("removed = %v", remover.removed)
	}
	if _, err := repo.Get(context.Background(), m.ID); err != entities.ErrMeetingNotFound {
		t.Fatal("meeting should be gone")
	}
}

func TestDeleteWithoutAudioSkipsStorage(t *testing.T) {
	repo := newFakeRepo()
	remover := &fakeRemover{}
	s := newTestService(repo, remover)
	userID := uuid.New()

	m, _ := s.Create(context.Background(), userID, CreateInput{})

	if err := s.Delete(context.Background(), m.ID, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(remover.removed) != 0 {
		t.Fatalf("no audio removal expected, got %v", remover.removed)
	}
}

func TestDeleteSucceedsWhenAudioRemovalFails(t *testing.T) {
	repo := newFakeRepo()
	remover := &fakeRemover{err: errors.New("storage down")}
	s := newTestService(repo, remover)
	userID := uuid.New()

	m, _ := s.Create(context.Background(), userID, CreateInput{})
	repo.meetings[m.ID].AudioLocation = strPtr("audio/x.webm")

	if err := s.Delete(context.Background(), m.ID, userID); err != nil {
		t.Fatalf("delete should succeed despite storage error, got %v", err)
	}
}

func TestUpdateStatusTransition(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &fakeRemover{})
	userID := uuid.New()

	m, _ := s.Create(context.Background(), userID, CreateInput{})

	// A completed meeting cannot be pushed anywhere
	repo.meetings[m.ID].Status = entities.MeetingStatusCompleted
	bad := entities.MeetingStatusUploading
	_, err := s.Update(context.Background(), m.ID, userID, UpdateInput{Status: &bad})
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MEETING_INVALID_STATE {
		t.Fatalf("expected MEETING_INVALID_STATE, got %v", err)
	}
}

func TestUpdateDescriptiveFields(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &fakeRemover{})
	userID := uuid.New()

	m, _ := s.Create(context.Background(), userID, CreateInput{})

	mt := entities.MeetingTypeRetrospective
	updated, err := s.Update(context.Background(), m.ID, userID, UpdateInput{
		Title: strPtr("Sprint 12 retro"),
		Type:  &mt,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title == nil || *updated.Title != "Sprint 12 retro" {
		t.Fatalf("title = %v", updated.Title)
	}
	if updated.Type != entities.MeetingTypeRetrospective {
		t.Fatalf("type = %s", updated.Type)
	}
}

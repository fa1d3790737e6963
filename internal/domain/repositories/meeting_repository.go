package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// MeetingUpdates is a set of column updates applied alongside a status
// transition or a metadata patch.
type MeetingUpdates map[string]interface{}

// MeetingRepository defines the record-store contract the pipeline and the
// CRUD surface use to read and write meeting state.
type MeetingRepository interface {
	// Create persists a meeting together with its markers in one write
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID finds a meeting owned by userID, markers preloaded.
	// Returns entities.ErrMeetingNotFound if absent or owned by someone else.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error)

	// Get loads a meeting by id regardless of owner, markers preloaded.
	// Used by pipeline runs, which are already owner-scoped at intake.
	Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ListByUser returns the user's meetings newest meeting-date first,
	// markers preloaded.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error)

	// UpdateFields applies a partial metadata update to an owned meeting
	UpdateFields(ctx context.Context, id, userID uuid.UUID, updates MeetingUpdates) error

	// AdvanceStatus performs a single atomic conditional write: the meeting
	// row is updated only while its current status equals from. Additional
	// column updates (transcript, report, audio_location) land in the same
	// statement. Returns entities.ErrStaleTransition when no row matched,
	// so a stale or duplicate run can never overwrite a further-advanced
	// state.
	AdvanceStatus(ctx context.Context, id uuid.UUID, from, to entities.MeetingStatus, updates MeetingUpdates) error

	// AddMarkers appends markers to a meeting in one write
	AddMarkers(ctx context.Context, markers []entities.Marker) error

	// MarkFailed forces the terminal failure state from any non-terminal
	// status. Completed meetings are left untouched.
	MarkFailed(ctx context.Context, id uuid.UUID) error

	// Delete removes an owned meeting; markers cascade
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create persists a meeting together with its markers in one write
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID finds a meeting owned by userID with markers preloaded
func (r *MeetingRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Markers", func(db *gorm.DB) *gorm.DB {
			return db.Order("time_seconds ASC")
		}).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// Get loads a meeting by id regardless of owner, markers preloaded
func (r *MeetingRepository) Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Markers", func(db *gorm.DB) *gorm.DB {
			return db.Order("time_seconds ASC")
		}).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// ListByUser returns the user's meetings newest meeting-date first
func (r *MeetingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("meeting_date DESC").
		Preload("Markers", func(db *gorm.DB) *gorm.DB {
			return db.Order("time_seconds ASC")
		}).
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// UpdateFields applies a partial metadata update to an owned meeting
func (r *MeetingRepository) UpdateFields(ctx context.Context, id, userID uuid.UUID, updates repositories.MeetingUpdates) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}(updates))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// AdvanceStatus performs the conditional status-transition write. The row
// is updated only while its current status equals from, which keeps a
// stale or duplicate pipeline run from overwriting a further-advanced
// state.
func (r *MeetingRepository) AdvanceStatus(ctx context.Context, id uuid.UUID, from, to entities.MeetingStatus, updates repositories.MeetingUpdates) error {
	fields := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range updates {
		fields[k] = v
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrStaleTransition
	}
	return nil
}

// AddMarkers appends markers to a meeting in one write
func (r *MeetingRepository) AddMarkers(ctx context.Context, markers []entities.Marker) error {
	if len(markers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&markers).Error
}

// MarkFailed forces the terminal failure state from any non-terminal
// status. Matching zero rows is not an error: the record may already be
// terminal or deleted while the run was in flight.
func (r *MeetingRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status NOT IN ?", id, []entities.MeetingStatus{
			entities.MeetingStatusCompleted,
			entities.MeetingStatusFailed,
		}).
		Updates(map[string]interface{}{
			"status":     entities.MeetingStatusFailed,
			"updated_at": time.Now(),
		}).Error
}

// Delete removes an owned meeting; markers cascade at the database level
func (r *MeetingRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Meeting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

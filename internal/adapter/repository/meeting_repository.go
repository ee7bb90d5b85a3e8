package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-companion/internal/domain/repositories"
)

// MeetingRepository implements the meeting repository interface using GORM
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) domainrepo.MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create persists the meeting and its children atomically. GORM cascades
// the ActionItems and Decisions associations inside one transaction, so a
// malformed child row rolls back the whole meeting.
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// FindByID retrieves a meeting with its children. Decisions keep their
// insertion order.
func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("ActionItems").
		Preload("Decisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("decisions.position ASC")
		}).
		Preload("Topics").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting by ID: %w", err)
	}
	return &meeting, nil
}

// ListByUser retrieves a user's meetings, newest first. Children are not
// loaded; list views only need the headline fields.
func (r *MeetingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	err := r.db.WithContext(ctx).
		Select("id", "user_id", "title", "date", "created_at").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// UpdateSummary overwrites the serialized summary block
func (r *MeetingRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary datatypes.JSON) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Update("summary", summary)
	if result.Error != nil {
		return fmt.Errorf("failed to update summary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// UpdateActionPlan overwrites the serialized action plan
func (r *MeetingRepository) UpdateActionPlan(ctx context.Context, id uuid.UUID, plan datatypes.JSON) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Update("action_plan", plan)
	if result.Error != nil {
		return fmt.Errorf("failed to update action plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// ReplaceTopics deletes all topics for the meeting and inserts the new
// set in one transaction. There is no merge path: re-clustering is a full
// eviction.
func (r *MeetingRepository) ReplaceTopics(ctx context.Context, meetingID uuid.UUID, topics []entities.Topic) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.Topic{}).Error; err != nil {
			return fmt.Errorf("failed to clear topics: %w", err)
		}
		if len(topics) == 0 {
			return nil
		}
		if err := tx.Create(&topics).Error; err != nil {
			return fmt.Errorf("failed to insert topics: %w", err)
		}
		return nil
	})
}

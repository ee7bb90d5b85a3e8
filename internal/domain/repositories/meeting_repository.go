package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create persists a meeting together with its action items and
	// decisions in a single transaction
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting with its children
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ListByUser retrieves a user's meetings ordered by date descending
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error)

	// UpdateSummary overwrites the serialized summary block
	UpdateSummary(ctx context.Context, id uuid.UUID, summary datatypes.JSON) error

	// UpdateActionPlan overwrites the serialized action plan
	UpdateActionPlan(ctx context.Context, id uuid.UUID, plan datatypes.JSON) error

	// ReplaceTopics evicts all existing topics for the meeting and
	// inserts the given set in one transaction
	ReplaceTopics(ctx context.Context, meetingID uuid.UUID, topics []entities.Topic) error
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// Decision is a free-text decision recorded during a meeting. Position
// preserves transcript chronology as produced by the model.
type Decision struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Position    int       `json:"position" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Decision
func (Decision) TableName() string {
	return "decisions"
}

// NewDecision creates a new Decision entity
func NewDecision(meetingID uuid.UUID, description string, position int) *Decision {
	return &Decision{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Description: description,
		Position:    position,
	}
}

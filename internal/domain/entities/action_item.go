package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItem is a task extracted from a meeting transcript. Assignee and
// due date are nullable; an unparseable due date is stored as null, never
// as a malformed value.
type ActionItem struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Assignee    *string    `json:"assignee,omitempty" gorm:"type:varchar(255)"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority" gorm:"type:varchar(20);default:'Medium'"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a new ActionItem entity
func NewActionItem(meetingID uuid.UUID, description string) *ActionItem {
	return &ActionItem{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Description: description,
		Priority:    PriorityMedium,
	}
}

// ActionItem priority constants
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

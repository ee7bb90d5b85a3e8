package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting is a stored analysis unit: one submitted transcript plus
// everything generated from it. Summary, sentiment and action plan are
// kept as serialized JSON columns; action items, decisions and topics
// are child rows replaced wholesale per generation pass.
type Meeting struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Title         string         `json:"title" gorm:"type:varchar(500);not null"`
	Date          time.Time      `json:"date" gorm:"not null"`
	Transcript    string         `json:"transcript" gorm:"type:text;not null"`
	SourceFileURL string         `json:"source_file_url,omitempty" gorm:"type:text"`
	Summary       datatypes.JSON `json:"summary" gorm:"type:jsonb;not null"`
	Sentiment     datatypes.JSON `json:"sentiment" gorm:"type:jsonb;not null"`
	ActionPlan    datatypes.JSON `json:"action_plan,omitempty" gorm:"type:jsonb"`
	ActionItems   []ActionItem   `json:"action_items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Decisions     []Decision     `json:"decisions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Topics        []Topic        `json:"topics,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new Meeting entity
func NewMeeting(userID uuid.UUID, title string, date time.Time) *Meeting {
	if title == "" {
		title = "Untitled Meeting"
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Meeting{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Date:   date,
	}
}

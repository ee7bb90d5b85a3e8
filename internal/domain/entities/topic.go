package entities

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a clustered discussion theme. Topics are replaced in full on
// every re-clustering call; keywords live only in the generation response
// and are not persisted.
type Topic struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "topics"
}

// NewTopic creates a new Topic entity
func NewTopic(meetingID uuid.UUID, name, content string) *Topic {
	return &Topic{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Name:      name,
		Content:   content,
	}
}

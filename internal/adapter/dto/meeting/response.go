package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
)

// MeetingResponse represents a full meeting in responses
type MeetingResponse struct {
	ID            string                    `json:"id"`
	Title         string                    `json:"title"`
	Date          time.Time                 `json:"date"`
	Transcript    string                    `json:"transcript,omitempty"`
	SourceFileURL string                    `json:"source_file_url,omitempty"`
	Summary       *entities.SummaryText     `json:"summary,omitempty"`
	Sentiment     *entities.SentimentResult `json:"sentiment,omitempty"`
	ActionPlan    *entities.ActionPlan      `json:"action_plan,omitempty"`
	ActionItems   []ActionItemResponse      `json:"action_items"`
	Decisions     []string                  `json:"decisions"`
	Topics        []TopicResponse           `json:"topics"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// MeetingListItemResponse represents a meeting headline in list responses
type MeetingListItemResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionItemResponse represents a stored action item
type ActionItemResponse struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Assignee    *string    `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
}

// TopicResponse represents a stored topic
type TopicResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// ChatResponse represents a grounded Q&A answer
type ChatResponse struct {
	Answer string `json:"answer"`
}

// UploadResponse represents the result of a transcript file upload
type UploadResponse struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

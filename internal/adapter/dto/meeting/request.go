package meeting

import (
	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
)

// CreateMeetingRequest represents the request to save a meeting. The
// analysis fields are optional: a client that already ran the pipeline
// can submit its results, otherwise the transcript is analyzed on save.
type CreateMeetingRequest struct {
	Title         string                           `json:"title" validate:"omitempty,max=500"`
	Date          string                           `json:"date,omitempty"`
	Transcript    string                           `json:"transcript"`
	SourceFileURL string                           `json:"sourceFileUrl,omitempty"`
	Summary       *entities.SummaryText            `json:"summary,omitempty"`
	Sentiment     *entities.SentimentResult        `json:"sentiment,omitempty"`
	ActionItems   []entities.ExtractedActionItem   `json:"actionItems,omitempty"`
	Decisions     []string                         `json:"decisions,omitempty"`
	Attendees     []entities.Attendee              `json:"attendees,omitempty"`
}

// RegenerateRequest represents the request to re-run analysis with a
// persona
type RegenerateRequest struct {
	Role string `json:"role" validate:"required,min=1,max=100"`
}

// ChatRequest represents a grounded Q&A request
type ChatRequest struct {
	Query   string            `json:"query" validate:"required,min=1"`
	History []ChatHistoryTurn `json:"history,omitempty" validate:"omitempty,dive"`
}

// ChatHistoryTurn is one prior conversation turn supplied by the client
type ChatHistoryTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ConvertDocumentRequest carries the optional output language for
// document conversion; the document type comes from the URL path
type ConvertDocumentRequest struct {
	Language string `json:"language,omitempty" validate:"omitempty,max=50"`
}

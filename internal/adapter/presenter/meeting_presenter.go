package presenter

import (
	"encoding/json"

	"github.com/johnquangdev/meeting-companion/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meeting.MeetingResponse{
		ID:            m.ID.String(),
		Title:         m.Title,
		Date:          m.Date,
		Transcript:    m.Transcript,
		SourceFileURL: m.SourceFileURL,
		ActionItems:   make([]meeting.ActionItemResponse, 0, len(m.ActionItems)),
		Decisions:     make([]string, 0, len(m.Decisions)),
		Topics:        make([]meeting.TopicResponse, 0, len(m.Topics)),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	// JSON columns are stored exactly as generated; unmarshal failures
	// just leave the section empty rather than failing the whole response
	if len(m.Summary) > 0 {
		var summary entities.SummaryText
		if json.Unmarshal(m.Summary, &summary) == nil {
			response.Summary = &summary
		}
	}
	if len(m.Sentiment) > 0 {
		var sentiment entities.SentimentResult
		if json.Unmarshal(m.Sentiment, &sentiment) == nil {
			response.Sentiment = &sentiment
		}
	}
	if len(m.ActionPlan) > 0 {
		var plan entities.ActionPlan
		if json.Unmarshal(m.ActionPlan, &plan) == nil {
			response.ActionPlan = &plan
		}
	}

	for _, item := range m.ActionItems {
		response.ActionItems = append(response.ActionItems, meeting.ActionItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Assignee:    item.Assignee,
			DueDate:     item.DueDate,
			Priority:    item.Priority,
		})
	}

	for _, d := range m.Decisions {
		response.Decisions = append(response.Decisions, d.Description)
	}

	for _, t := range m.Topics {
		response.Topics = append(response.Topics, meeting.TopicResponse{
			ID:      t.ID.String(),
			Name:    t.Name,
			Content: t.Content,
		})
	}

	return response
}

// ToMeetingListResponse converts Meeting entities to list item DTOs
func ToMeetingListResponse(meetings []entities.Meeting) []meeting.MeetingListItemResponse {
	items := make([]meeting.MeetingListItemResponse, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, meeting.MeetingListItemResponse{
			ID:        m.ID.String(),
			Title:     m.Title,
			Date:      m.Date,
			CreatedAt: m.CreatedAt,
		})
	}
	return items
}

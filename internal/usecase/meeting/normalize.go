package meeting

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
)

// dueDateLayouts are the formats accepted for model-emitted due dates.
// Anything else is dropped to null rather than stored malformed.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// sanitizeText strips null bytes and non-printing control characters from
// free text before it reaches storage. Newlines and tabs survive.
func sanitizeText(s string) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// normalizeActionItem reconciles the two field vocabularies the model has
// used over time (what/who/dueDate vs description/assignee/deadline) into
// one persisted ActionItem. Unparseable dates become null and missing or
// unrecognized priority defaults to Medium.
func normalizeActionItem(meetingID uuid.UUID, raw entities.ExtractedActionItem) entities.ActionItem {
	description := raw.Description
	if description == "" {
		description = raw.What
	}

	assignee := raw.Assignee
	if assignee == "" {
		assignee = raw.Who
	}

	deadline := raw.Deadline
	if deadline == "" {
		deadline = raw.DueDate
	}

	item := entities.ActionItem{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Description: sanitizeText(description),
		Priority:    normalizePriority(raw.Priority),
	}

	if assignee != "" {
		clean := sanitizeText(assignee)
		item.Assignee = &clean
	}

	if due := parseDueDate(deadline); due != nil {
		item.DueDate = due
	}

	return item
}

// parseDueDate parses a model-emitted date string, returning nil on
// anything unparseable ("next week", "null", empty, garbage).
func parseDueDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// normalizePriority maps model output to the stored priority vocabulary,
// defaulting to Medium for anything unrecognized.
func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high", "urgent":
		return entities.PriorityHigh
	case "low":
		return entities.PriorityLow
	case "medium":
		return entities.PriorityMedium
	default:
		return entities.PriorityMedium
	}
}

// normalizeDecisions converts decision strings into ordered child rows,
// skipping blanks. Position reflects transcript chronology.
func normalizeDecisions(meetingID uuid.UUID, decisions []string) []entities.Decision {
	out := make([]entities.Decision, 0, len(decisions))
	for _, desc := range decisions {
		desc = sanitizeText(strings.TrimSpace(desc))
		if desc == "" {
			continue
		}
		out = append(out, *entities.NewDecision(meetingID, desc, len(out)))
	}
	return out
}

// sanitizeAnalysis cleans every free-text field of a pipeline result
// before serialization.
func sanitizeAnalysis(a *entities.AnalysisResult) {
	a.Summary.Short = sanitizeText(a.Summary.Short)
	a.Summary.Long = sanitizeText(a.Summary.Long)
	a.Sentiment.Sentiment = sanitizeText(a.Sentiment.Sentiment)
	a.Sentiment.Tone = sanitizeText(a.Sentiment.Tone)
	for i := range a.Sentiment.Highlights {
		a.Sentiment.Highlights[i] = sanitizeText(a.Sentiment.Highlights[i])
	}
	for i := range a.Attendees {
		a.Attendees[i].Name = sanitizeText(a.Attendees[i].Name)
		a.Attendees[i].Role = sanitizeText(a.Attendees[i].Role)
	}
}

// parseMeetingDate parses a caller-supplied meeting date, falling back to
// now on absence or garbage.
func parseMeetingDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

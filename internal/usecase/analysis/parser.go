package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
)

// extractJSON extracts JSON content from markdown code blocks or plain text.
// Models occasionally wrap JSON-mode output in code fences anyway.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

// decodeResponse strips code fences and unmarshals into out. Invalid JSON
// is a hard failure for the call; callers decide whether defaults apply,
// never this function.
func decodeResponse(raw string, out interface{}) error {
	cleaned := extractJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

// fillDeepAnalysisDefaults guarantees every top-level key of the deep
// analysis shape regardless of which fields the model chose to omit.
// Child slices become empty, never nil.
func fillDeepAnalysisDefaults(d *entities.DeepAnalysis) {
	if d.ActionItems == nil {
		d.ActionItems = make([]entities.ExtractedActionItem, 0)
	}
	if d.Decisions == nil {
		d.Decisions = make([]string, 0)
	}
	if d.Attendees == nil {
		d.Attendees = make([]entities.Attendee, 0)
	}
}

// fillSentimentDefaults guarantees the sentiment shape is complete
func fillSentimentDefaults(s *entities.SentimentResult) {
	if s.Highlights == nil {
		s.Highlights = make([]string, 0)
	}
}

// fillActionPlanDefaults guarantees the action plan shape is complete
func fillActionPlanDefaults(p *entities.ActionPlan) {
	if p.Goals == nil {
		p.Goals = make([]string, 0)
	}
	if p.Tasks == nil {
		p.Tasks = make([]entities.PlanTask, 0)
	}
	if p.Timeline == nil {
		p.Timeline = make([]entities.Milestone, 0)
	}
}

// fillTopicClusterDefaults guarantees the clustering shape is complete
func fillTopicClusterDefaults(c *entities.TopicCluster) {
	if c.Topics == nil {
		c.Topics = make([]entities.ClusteredTopic, 0)
	}
	for i := range c.Topics {
		if c.Topics[i].Keywords == nil {
			c.Topics[i].Keywords = make([]string, 0)
		}
	}
}

// fillSlideDeckDefaults guarantees the slide deck shape is complete
func fillSlideDeckDefaults(d *entities.SlideDeck) {
	if d.Slides == nil {
		d.Slides = make([]entities.Slide, 0)
	}
	for i := range d.Slides {
		if d.Slides[i].Bullets == nil {
			d.Slides[i].Bullets = make([]string, 0)
		}
	}
}

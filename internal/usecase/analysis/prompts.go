package analysis

import "fmt"

// deepAnalysisPrompt drives the deep analysis stage. The schema matches
// entities.DeepAnalysis.
const deepAnalysisPrompt = `You are an expert meeting assistant. Analyze the following meeting transcript and provide a structured JSON output containing:
1. "summary": { "short": "A clean paragraph summary", "long": "Detailed notes" }
2. "actionItems": [{ "who": "Name", "what": "Task", "dueDate": "Date/null", "priority": "High/Medium/Low" }]
3. "decisions": ["Decision 1", "Decision 2"]
4. "attendees": [{ "name": "Name", "role": "Role" }]

Output must be valid JSON.`

// rolePromptModifier biases summary tone and emphasis toward a persona.
// It changes framing only, never the schema.
const rolePromptModifier = `

Write the summary from the perspective of a %s: emphasize what a %s would care about, and adjust tone and level of detail accordingly. Keep the exact same JSON structure.`

// sentimentPrompt drives the fast-insights stage
const sentimentPrompt = `Analyze the sentiment and tone of this meeting transcript. Provide a JSON output with:
1. "sentiment": Overall sentiment (Positive/Neutral/Negative).
2. "tone": A brief description of the tone (e.g., Professional, Tense, Casual).
3. "highlights": ["Highlight 1", "Highlight 2", "Highlight 3"]`

// actionPlanPrompt drives project plan generation
const actionPlanPrompt = `You are a project manager. Convert the following meeting transcript into a concrete action plan. Provide a JSON output with:
1. "goals": ["Goal 1", "Goal 2"]
2. "tasks": [{ "description": "Task", "owner": "Name", "deadline": "Date or timeframe", "priority": "High/Medium/Low", "status": "Not Started" }]
3. "timeline": [{ "milestone": "Milestone", "date": "Date" }]

Output must be valid JSON.`

// topicsPrompt drives topic clustering
const topicsPrompt = `You are a meeting analyst. Cluster the discussion in the following transcript into distinct topics. Provide a JSON output with:
1. "topics": [{ "name": "Topic name", "description": "What was discussed about it", "keywords": ["keyword1", "keyword2"] }]

Every topic must be grounded in the transcript. Output must be valid JSON.`

// slidesPrompt drives slide outline generation. The minimum content floor
// is enforced here, not programmatically.
const slidesPrompt = `You are a presentation designer. Turn the following meeting transcript into a slide deck outline. Provide a JSON output with:
1. "title": "Deck title"
2. "slides": [{ "title": "Slide title", "bullets": ["Point 1", "Point 2"], "speakerNotes": "What to say" }]

The deck must at minimum cover: Agenda, Key Discussion, Decisions, Action Items, and Next Steps. Output must be valid JSON.`

// documentPrompts maps a document type to its conversion instruction.
// Unknown types fall back to documentFallbackPrompt.
var documentPrompts = map[string]string{
	"proposal":       `You are a business writer. Convert the following meeting transcript into a formal project proposal in markdown, with sections for Background, Objectives, Scope, Approach, and Budget considerations.`,
	"user_stories":   `You are a product owner. Convert the following meeting transcript into a set of user stories in markdown. Use the format "As a <role>, I want <capability> so that <benefit>", grouped by feature, with acceptance criteria.`,
	"technical_spec": `You are a software architect. Convert the following meeting transcript into a technical specification in markdown, with sections for Overview, Requirements, Architecture, Data Model, and Open Questions.`,
	"marketing":      `You are a marketing copywriter. Convert the following meeting transcript into marketing copy in markdown: a headline, key messaging points, and a short announcement draft.`,
	"requirements":   `You are a business analyst. Convert the following meeting transcript into a requirements document in markdown, separating functional and non-functional requirements, each numbered.`,
}

const documentFallbackPrompt = `You are a meeting assistant. Summarize the following meeting transcript as a well-structured markdown document.`

// documentOutputContract is appended to every document conversion prompt
const documentOutputContract = `

Respond with a JSON object: { "content": "<the full markdown document>" }. Output must be valid JSON.`

// chatGroundingPrompt embeds the transcript and constrains answers to it
const chatGroundingPrompt = `You are a meeting assistant answering questions about a specific meeting. Here is the full transcript:

---
%s
---

Answer ONLY using information from this transcript. If the answer is not in the transcript, say "%s". Keep answers concise.`

// chatNotFoundAnswer is both the instruction given to the model and the
// fallback returned when the model produces nothing.
const chatNotFoundAnswer = "I couldn't find that information in the meeting."

// buildDeepAnalysisPrompt returns the deep analysis system prompt,
// optionally biased toward a persona
func buildDeepAnalysisPrompt(role string) string {
	if role == "" {
		return deepAnalysisPrompt
	}
	return deepAnalysisPrompt + fmt.Sprintf(rolePromptModifier, role, role)
}

// buildDocumentPrompt selects the conversion template for a document type
func buildDocumentPrompt(docType, language string) string {
	prompt, ok := documentPrompts[docType]
	if !ok {
		prompt = documentFallbackPrompt
	}
	if language != "" {
		prompt += fmt.Sprintf("\n\nWrite the document in %s.", language)
	}
	return prompt + documentOutputContract
}

package entities

// AnalysisResult is the merged output of one full pipeline run: the deep
// analysis stage plus the sentiment stage. Consumers can rely on every
// top-level field being present; child slices may be empty but never nil
// after defaults are applied.
type AnalysisResult struct {
	Summary     SummaryText           `json:"summary"`
	ActionItems []ExtractedActionItem `json:"actionItems"`
	Decisions   []string              `json:"decisions"`
	Attendees   []Attendee            `json:"attendees"`
	Sentiment   SentimentResult       `json:"sentiment"`
}

// SummaryText holds the two summary variants
type SummaryText struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// ExtractedActionItem is an action item as the model emits it. The model
// has drifted between two field vocabularies over time, so both are
// accepted here and reconciled by the assembler before persistence.
type ExtractedActionItem struct {
	Description string `json:"description,omitempty"`
	What        string `json:"what,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	Who         string `json:"who,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// Attendee is a meeting participant identified by the model
type Attendee struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// SentimentResult is the fast-insights stage output
type SentimentResult struct {
	Sentiment  string   `json:"sentiment"`
	Tone       string   `json:"tone"`
	Highlights []string `json:"highlights"`
}

// DeepAnalysis is the raw deep-analysis stage output before merging
type DeepAnalysis struct {
	Summary     SummaryText           `json:"summary"`
	ActionItems []ExtractedActionItem `json:"actionItems"`
	Decisions   []string              `json:"decisions"`
	Attendees   []Attendee            `json:"attendees"`
}

// ActionPlan is the derived project plan generated from a transcript
type ActionPlan struct {
	Goals    []string    `json:"goals"`
	Tasks    []PlanTask  `json:"tasks"`
	Timeline []Milestone `json:"timeline"`
}

// PlanTask is a single task in an action plan
type PlanTask struct {
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// Milestone is a dated timeline entry in an action plan
type Milestone struct {
	Milestone string `json:"milestone"`
	Date      string `json:"date"`
}

// TopicCluster is the topic clustering response shape
type TopicCluster struct {
	Topics []ClusteredTopic `json:"topics"`
}

// ClusteredTopic is one generated topic; keywords are transient and not
// persisted with the Topic row.
type ClusteredTopic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// SlideDeck is the generated slide outline
type SlideDeck struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// Slide is one slide in a generated deck
type Slide struct {
	Title        string   `json:"title"`
	Bullets      []string `json:"bullets"`
	SpeakerNotes string   `json:"speakerNotes"`
}

// DocumentDraft is the document conversion response
type DocumentDraft struct {
	Content string `json:"content"`
}

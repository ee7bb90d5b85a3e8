package analysis

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-companion/errors"
	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
	pkgai "github.com/johnquangdev/meeting-companion/pkg/ai"
	"github.com/johnquangdev/meeting-companion/pkg/config"
)

const testTranscript = `Alice: We need to finalize the Q3 budget by Friday.
Bob: I'll prepare the draft. Also we decided to move the launch to October.`

// fakeModel is an httptest-backed OpenRouter stand-in. It dispatches on
// the system prompt so the two concurrent pipeline stages can get
// different payloads from the same server, and records every request.
type fakeModel struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []pkgai.ChatRequest

	// respond maps a system prompt substring to a canned content payload
	respond map[string]string
	status  int
}

func newFakeModel(t *testing.T) *fakeModel {
	f := &fakeModel{
		respond: map[string]string{},
		status:  http.StatusOK,
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req pkgai.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid request payload: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		if f.status != http.StatusOK {
			w.WriteHeader(f.status)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "model unavailable"},
			})
			return
		}

		content := `{}`
		if len(req.Messages) > 0 {
			system := req.Messages[0].Content
			for marker, payload := range f.respond {
				if strings.Contains(system, marker) {
					content = payload
					break
				}
			}
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeModel) captured() []pkgai.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]pkgai.ChatRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// systemPromptOf finds the recorded request whose system message contains
// the given marker
func (f *fakeModel) systemPromptOf(marker string) (string, bool) {
	for _, req := range f.captured() {
		if len(req.Messages) > 0 && strings.Contains(req.Messages[0].Content, marker) {
			return req.Messages[0].Content, true
		}
	}
	return "", false
}

func newTestService(f *fakeModel) Service {
	cfg := &config.OpenRouterConfig{
		APIKey:        "test-key",
		BaseURL:       f.server.URL,
		AnalysisModel: "analysis-model",
		InsightModel:  "insight-model",
		ChatModel:     "chat-model",
	}
	return NewService(pkgai.NewOpenRouterClient(cfg), cfg, zap.NewNop())
}

func TestAnalyze_MergesBothStages(t *testing.T) {
	f := newFakeModel(t)
	f.respond["expert meeting assistant"] = `{
		"summary": {"short": "Budget and launch", "long": "Discussed Q3 budget and launch timing."},
		"actionItems": [{"who": "Bob", "what": "Prepare the budget draft", "dueDate": "Friday", "priority": "High"}],
		"decisions": ["Move the launch to October"],
		"attendees": [{"name": "Alice", "role": "Manager"}, {"name": "Bob", "role": "Analyst"}]
	}`
	f.respond["sentiment and tone"] = `{
		"sentiment": "Positive",
		"tone": "Professional",
		"highlights": ["Budget deadline agreed"]
	}`

	svc := newTestService(f)
	result, err := svc.Analyze(context.Background(), testTranscript, "")
	require.NoError(t, err)

	assert.Equal(t, "Budget and launch", result.Summary.Short)
	require.Len(t, result.ActionItems, 1)
	assert.Equal(t, "Bob", result.ActionItems[0].Who)
	assert.Equal(t, []string{"Move the launch to October"}, result.Decisions)
	assert.Len(t, result.Attendees, 2)
	assert.Equal(t, "Positive", result.Sentiment.Sentiment)
	assert.Equal(t, []string{"Budget deadline agreed"}, result.Sentiment.Highlights)

	// both stages must have been invoked
	assert.Len(t, f.captured(), 2)
}

func TestAnalyze_FillsMissingSections(t *testing.T) {
	f := newFakeModel(t)
	f.respond["expert meeting assistant"] = `{"summary": {"short": "s", "long": "l"}}`
	f.respond["sentiment and tone"] = `{"sentiment": "Neutral", "tone": "Casual"}`

	svc := newTestService(f)
	result, err := svc.Analyze(context.Background(), testTranscript, "")
	require.NoError(t, err)

	assert.NotNil(t, result.ActionItems)
	assert.NotNil(t, result.Decisions)
	assert.NotNil(t, result.Attendees)
	assert.NotNil(t, result.Sentiment.Highlights)
	assert.Empty(t, result.ActionItems)
}

func TestAnalyze_RoleBiasesPrompt(t *testing.T) {
	f := newFakeModel(t)
	f.respond["expert meeting assistant"] = `{"summary": {"short": "s", "long": "l"}}`
	f.respond["sentiment and tone"] = `{"sentiment": "Neutral", "tone": "Casual"}`

	svc := newTestService(f)
	_, err := svc.Analyze(context.Background(), testTranscript, "Product Manager")
	require.NoError(t, err)

	system, ok := f.systemPromptOf("expert meeting assistant")
	require.True(t, ok, "deep analysis request not captured")
	assert.Contains(t, system, "Product Manager")

	// the sentiment stage never carries the persona
	system, ok = f.systemPromptOf("sentiment and tone")
	require.True(t, ok, "sentiment request not captured")
	assert.NotContains(t, system, "Product Manager")
}

func TestAnalyze_UpstreamStatusPropagates(t *testing.T) {
	f := newFakeModel(t)
	f.status = http.StatusTooManyRequests

	svc := newTestService(f)
	_, err := svc.Analyze(context.Background(), testTranscript, "")
	require.Error(t, err)

	var appErr apperrors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPCode)
	assert.Equal(t, apperrors.ErrorCode_AI_UPSTREAM_FAILED, appErr.Code)
}

func TestAnalyze_NonJSONResponseIsHardFailure(t *testing.T) {
	f := newFakeModel(t)
	f.respond["expert meeting assistant"] = `I am unable to analyze this transcript.`
	f.respond["sentiment and tone"] = `{"sentiment": "Neutral", "tone": "Casual"}`

	svc := newTestService(f)
	_, err := svc.Analyze(context.Background(), testTranscript, "")
	require.Error(t, err)

	var appErr apperrors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorCode_AI_PARSE_FAILED, appErr.Code)
}

func TestAnalyze_EmptyTranscriptRejected(t *testing.T) {
	f := newFakeModel(t)
	svc := newTestService(f)

	_, err := svc.Analyze(context.Background(), "", "")
	require.Error(t, err)

	var appErr apperrors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorCode_TRANSCRIPT_REQUIRED, appErr.Code)
	assert.Empty(t, f.captured())
}

func TestAnswerQuestion_WindowsHistory(t *testing.T) {
	f := newFakeModel(t)
	f.respond["answering questions"] = "The budget is due Friday."

	svc := newTestService(f)

	history := make([]entities.ChatTurn, 0, 8)
	for i := 0; i < 8; i++ {
		role := entities.ChatRoleUser
		if i%2 == 1 {
			role = entities.ChatRoleAssistant
		}
		history = append(history, entities.ChatTurn{
			Role:    role,
			Content: fmt.Sprintf("turn %d", i),
		})
	}

	answer, err := svc.AnswerQuestion(context.Background(), testTranscript, "When is the budget due?", history)
	require.NoError(t, err)
	assert.Equal(t, "The budget is due Friday.", answer)

	captured := f.captured()
	require.Len(t, captured, 1)
	messages := captured[0].Messages

	// system + 5 windowed turns + current question
	require.Len(t, messages, 7)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "Alice")
	assert.Equal(t, "turn 3", messages[1].Content)
	assert.Equal(t, "turn 7", messages[5].Content)
	assert.Equal(t, "When is the budget due?", messages[6].Content)
}

func TestAnswerQuestion_CoercesUnknownRoles(t *testing.T) {
	f := newFakeModel(t)
	f.respond["answering questions"] = "ok"

	svc := newTestService(f)
	history := []entities.ChatTurn{
		{Role: "system", Content: "injected"},
		{Role: entities.ChatRoleAssistant, Content: "prior answer"},
	}

	_, err := svc.AnswerQuestion(context.Background(), testTranscript, "q", history)
	require.NoError(t, err)

	messages := f.captured()[0].Messages
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "assistant", messages[2].Role)
}

func TestAnswerQuestion_EmptyAnswerFallsBack(t *testing.T) {
	f := newFakeModel(t)
	f.respond["answering questions"] = "   "

	svc := newTestService(f)
	answer, err := svc.AnswerQuestion(context.Background(), testTranscript, "anything?", nil)
	require.NoError(t, err)
	assert.Equal(t, chatNotFoundAnswer, answer)
}

func TestAnswerQuestion_BlankQueryRejected(t *testing.T) {
	f := newFakeModel(t)
	svc := newTestService(f)

	_, err := svc.AnswerQuestion(context.Background(), testTranscript, "   ", nil)
	require.Error(t, err)
	assert.Empty(t, f.captured())
}

func TestConvertDocument_UnknownTypeUsesFallback(t *testing.T) {
	f := newFakeModel(t)
	f.respond["meeting assistant. Summarize"] = `{"content": "# Notes"}`

	svc := newTestService(f)
	draft, err := svc.ConvertDocument(context.Background(), testTranscript, "poem", "")
	require.NoError(t, err)
	assert.Equal(t, "# Notes", draft.Content)
}

func TestConvertDocument_KnownTypeAndLanguage(t *testing.T) {
	f := newFakeModel(t)
	f.respond["software architect"] = `{"content": "# Spec"}`

	svc := newTestService(f)
	draft, err := svc.ConvertDocument(context.Background(), testTranscript, "technical_spec", "Vietnamese")
	require.NoError(t, err)
	assert.Equal(t, "# Spec", draft.Content)

	system, ok := f.systemPromptOf("software architect")
	require.True(t, ok)
	assert.Contains(t, system, "Vietnamese")
}

func TestGenerateSlides(t *testing.T) {
	f := newFakeModel(t)
	f.respond["presentation designer"] = `{
		"title": "Q3 Review",
		"slides": [{"title": "Agenda", "bullets": ["Budget"], "speakerNotes": "Open with the agenda"}]
	}`

	svc := newTestService(f)
	deck, err := svc.GenerateSlides(context.Background(), testTranscript)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Review", deck.Title)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, []string{"Budget"}, deck.Slides[0].Bullets)
}

func TestGenerateActionPlan(t *testing.T) {
	f := newFakeModel(t)
	f.respond["project manager"] = `{
		"goals": ["Ship in October"],
		"tasks": [{"description": "Draft budget", "owner": "Bob", "deadline": "Friday", "priority": "High", "status": "Not Started"}]
	}`

	svc := newTestService(f)
	plan, err := svc.GenerateActionPlan(context.Background(), testTranscript)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ship in October"}, plan.Goals)
	require.Len(t, plan.Tasks, 1)
	assert.NotNil(t, plan.Timeline)
}

package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-companion/errors"
	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
	pkgai "github.com/johnquangdev/meeting-companion/pkg/ai"
)

// maxHistoryTurns bounds the rolling context window. Older turns are
// dropped, not summarized.
const maxHistoryTurns = 5

// AnswerQuestion answers a question about the transcript, grounded by a
// system message embedding the full transcript plus a sliding window of
// prior turns. The call is stateless: conversation state across turns is
// the caller's responsibility.
func (s *analysisService) AnswerQuestion(ctx context.Context, transcript, query string, history []entities.ChatTurn) (string, error) {
	if transcript == "" {
		return "", apperrors.ErrTranscriptRequired()
	}
	if strings.TrimSpace(query) == "" {
		return "", apperrors.ErrInvalidArgument("Query is required")
	}

	messages := make([]pkgai.Message, 0, maxHistoryTurns+2)
	messages = append(messages, pkgai.Message{
		Role:    "system",
		Content: fmt.Sprintf(chatGroundingPrompt, transcript, chatNotFoundAnswer),
	})

	for _, turn := range windowHistory(history) {
		role := turn.Role
		if role != entities.ChatRoleAssistant {
			role = entities.ChatRoleUser
		}
		messages = append(messages, pkgai.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, pkgai.Message{Role: "user", Content: query})

	answer, err := s.client.CreateChatCompletion(ctx, pkgai.ChatRequest{
		Model:       s.cfg.ChatModel,
		Messages:    messages,
		Temperature: 0.5,
	})
	if err != nil {
		return "", mapClientError(err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = chatNotFoundAnswer
	}

	if s.logger != nil {
		s.logger.Info("chat answer generated",
			zap.Int("history_turns", len(history)),
			zap.Int("answer_length", len(answer)),
		)
	}

	return answer, nil
}

// windowHistory keeps the most recent maxHistoryTurns turns, oldest
// dropped first
func windowHistory(history []entities.ChatTurn) []entities.ChatTurn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}

package meeting

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/johnquangdev/meeting-companion/errors"
	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
	"github.com/johnquangdev/meeting-companion/internal/domain/repositories"
	"github.com/johnquangdev/meeting-companion/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-companion/internal/usecase/analysis"
)

// detailCacheTTL bounds how long a meeting detail response may be served
// from cache. Every regeneration write invalidates the entry.
const detailCacheTTL = 5 * time.Minute

// PrecomputedBundle is a caller-supplied analysis bundle. When complete,
// it is trusted and persisted verbatim without re-invoking the pipeline,
// so the client can save exactly what the user already saw and edited.
type PrecomputedBundle struct {
	Summary     *entities.SummaryText
	Sentiment   *entities.SentimentResult
	ActionItems []entities.ExtractedActionItem
	Decisions   []string
	Attendees   []entities.Attendee
}

// Complete reports whether all four required sections are present.
// Partially supplied bundles fall back to a full pipeline run.
func (b *PrecomputedBundle) Complete() bool {
	return b != nil &&
		b.Summary != nil &&
		b.Sentiment != nil &&
		b.ActionItems != nil &&
		b.Decisions != nil
}

// CreateMeetingInput is the assembler's input
type CreateMeetingInput struct {
	Transcript    string
	Title         string
	Date          string
	SourceFileURL string
	Bundle        *PrecomputedBundle
}

// Service defines meeting-scoped operations. Every meeting-scoped call
// verifies ownership before acting; a foreign meeting is reported as not
// found, never as forbidden.
type Service interface {
	CreateMeeting(ctx context.Context, userID uuid.UUID, input CreateMeetingInput) (*entities.Meeting, error)
	ListMeetings(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error)
	GetMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error)
	RegenerateWithRole(ctx context.Context, userID, meetingID uuid.UUID, role string) (*entities.AnalysisResult, error)
	GenerateActionPlan(ctx context.Context, userID, meetingID uuid.UUID) (*entities.ActionPlan, error)
	ClusterTopics(ctx context.Context, userID, meetingID uuid.UUID) (*entities.TopicCluster, error)
	GenerateSlides(ctx context.Context, userID, meetingID uuid.UUID) (*entities.SlideDeck, error)
	ConvertDocument(ctx context.Context, userID, meetingID uuid.UUID, docType, language string) (*entities.DocumentDraft, error)
	Chat(ctx context.Context, userID, meetingID uuid.UUID, query string, history []entities.ChatTurn) (string, error)
}

type meetingService struct {
	repo     repositories.MeetingRepository
	analyzer analysis.Service
	store    cache.Store
	logger   *zap.Logger
}

// NewService constructs the meeting service
func NewService(repo repositories.MeetingRepository, analyzer analysis.Service, store cache.Store, logger *zap.Logger) Service {
	return &meetingService{
		repo:     repo,
		analyzer: analyzer,
		store:    store,
		logger:   logger,
	}
}

// CreateMeeting assembles and persists a full meeting entity graph. A
// complete precomputed bundle is trusted as-is; anything less runs the
// pipeline against the transcript. The entire graph is created in one
// transaction.
func (s *meetingService) CreateMeeting(ctx context.Context, userID uuid.UUID, input CreateMeetingInput) (*entities.Meeting, error) {
	if input.Transcript == "" && !input.Bundle.Complete() {
		return nil, apperrors.ErrTranscriptRequired()
	}

	var result *entities.AnalysisResult
	if input.Bundle.Complete() {
		result = &entities.AnalysisResult{
			Summary:     *input.Bundle.Summary,
			ActionItems: input.Bundle.ActionItems,
			Decisions:   input.Bundle.Decisions,
			Attendees:   input.Bundle.Attendees,
			Sentiment:   *input.Bundle.Sentiment,
		}
	} else {
		var err error
		result, err = s.analyzer.Analyze(ctx, input.Transcript, "")
		if err != nil {
			return nil, err
		}
	}

	sanitizeAnalysis(result)

	m := entities.NewMeeting(userID, sanitizeText(input.Title), parseMeetingDate(input.Date))
	m.Transcript = sanitizeText(input.Transcript)
	m.SourceFileURL = input.SourceFileURL

	summaryJSON, err := toJSON(result.Summary)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	sentimentJSON, err := toJSON(result.Sentiment)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	m.Summary = summaryJSON
	m.Sentiment = sentimentJSON

	for _, raw := range result.ActionItems {
		item := normalizeActionItem(m.ID, raw)
		if item.Description == "" {
			continue
		}
		m.ActionItems = append(m.ActionItems, item)
	}
	m.Decisions = normalizeDecisions(m.ID, result.Decisions)

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apperrors.ErrMeetingSaveFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("meeting created",
			zap.String("meeting_id", m.ID.String()),
			zap.String("user_id", userID.String()),
			zap.Int("action_items", len(m.ActionItems)),
			zap.Int("decisions", len(m.Decisions)),
			zap.Bool("precomputed", input.Bundle.Complete()),
		)
	}

	return m, nil
}

// ListMeetings returns the caller's meetings, newest first
func (s *meetingService) ListMeetings(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error) {
	meetings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrMeetingQueryFailed(err)
	}
	return meetings, nil
}

// GetMeeting returns a meeting with its children, served from cache when
// possible
func (s *meetingService) GetMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
	key := detailCacheKey(userID, meetingID)
	if s.store != nil {
		if cached, ok, err := s.store.Get(ctx, key); err == nil && ok {
			var m entities.Meeting
			if json.Unmarshal([]byte(cached), &m) == nil {
				return &m, nil
			}
		}
	}

	m, err := s.ownedMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if b, err := json.Marshal(m); err == nil {
			_ = s.store.Set(ctx, key, string(b), detailCacheTTL)
		}
	}

	return m, nil
}

// RegenerateWithRole re-runs the full pipeline with a persona modifier
// and persists the fresh summary. Action items and decisions are returned
// but deliberately not re-persisted, so the stored children stay those of
// the original run. Concurrent regenerations are not coordinated: the
// last write wins.
func (s *meetingService) RegenerateWithRole(ctx context.Context, userID, meetingID uuid.UUID, role string) (*entities.AnalysisResult, error) {
	m, err := s.ownedMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	result, err := s.analyzer.Analyze(ctx, m.Transcript, role)
	if err != nil {
		return nil, err
	}
	sanitizeAnalysis(result)

	summaryJSON, err := toJSON(result.Summary)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if err := s.repo.UpdateSummary(ctx, meetingID, summaryJSON); err != nil {
		return nil, s.mapRepoError(meetingID, err)
	}
	s.invalidate(ctx, userID, meetingID)

	return result, nil
}

// GenerateActionPlan generates and persists the project action plan
func (s *meetingService) GenerateActionPlan(ctx context.Context, userID, meetingID uuid.UUID) (*entities.ActionPlan, error) {
	m, err := s.ownedMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	plan, err := s.analyzer.GenerateActionPlan(ctx, m.Transcript)
	if err != nil {
		return nil, err
	}

	planJSON, err := toJSON(plan)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if err := s.repo.UpdateActionPlan(ctx, meetingID, planJSON); err != nil {
		return nil, s.mapRepoError(meetingID, err)
	}
	s.invalidate(ctx, userID, meetingID)

	return plan, nil
}

// ClusterTopics regenerates the topic set. Persistence is a full
// replacement: the previous run's topics are evicted, not merged.
func (s *meetingService) ClusterTopics(ctx context.Context, userID, meetingID uuid.UUID) (*entities.TopicCluster, error) {
	m, err := s.ownedMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	cluster, err := s.analyzer.ClusterTopics(ctx, m.Transcript)
	if err != nil {
		return nil, err
	}

	topics := make([]entities.Topic, 0, len(cluster.Topics))
	for _, t := range cluster.Topics {
		name := sanitizeText(t.Name)
		if name == "" {
			continue
		}
		topics = append(topics, *entities.NewTopic(meetingID, name, sanitizeText(t.Description)))
	}

	if err := s.repo.ReplaceTopics(ctx, meetingID, topics); err != nil {
		return nil, apperrors.ErrMeetingUpdateFailed(err)
	}
	s.invalidate(ctx, userID, meetingID)

	return cluster, nil
}

// GenerateSlides produces a slide outline from the stored transcript
func (s *meetingService) GenerateSlides(ctx context.Context, userID, meetingID uuid.UUID) (*entities.SlideDeck, error) {
	m, err := s.ownedMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}
	return s.analyzer.GenerateSlides(ctx, m.Transcript)
}

// ConvertDocument renders the stored transcript as a typed document
func (s *meetingService) ConvertDocument(ctx context.Context, userID, meetingID uuid.UUID, docType, language string) (*entities.DocumentDraft, error) {
	m, err := s.ownedMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}
	return s.analyzer.ConvertDocument(ctx, m.Transcript, docType, language)
}

// Chat answers a question grounded in the stored transcript
func (s *meetingService) Chat(ctx context.Context, userID, meetingID uuid.UUID, query string, history []entities.ChatTurn) (string, error) {
	m, err := s.ownedMeeting(ctx, userID, meetingID)
	if err != nil {
		return "", err
	}
	if m.Transcript == "" {
		return "", apperrors.ErrTranscriptRequired()
	}
	return s.analyzer.AnswerQuestion(ctx, m.Transcript, query, history)
}

// ownedMeeting loads a meeting and verifies the caller owns it. Absent
// and foreign meetings are indistinguishable to the caller.
func (s *meetingService) ownedMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
	m, err := s.repo.FindByID(ctx, meetingID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMeetingNotFound) {
			return nil, apperrors.ErrMeetingNotFound(meetingID.String())
		}
		return nil, apperrors.ErrMeetingQueryFailed(err)
	}
	if m.UserID != userID {
		return nil, apperrors.ErrMeetingNotFound(meetingID.String())
	}
	return m, nil
}

func (s *meetingService) mapRepoError(meetingID uuid.UUID, err error) error {
	if stdErrors.Is(err, entities.ErrMeetingNotFound) {
		return apperrors.ErrMeetingNotFound(meetingID.String())
	}
	return apperrors.ErrMeetingUpdateFailed(err)
}

// invalidate drops the cached detail entry after any regeneration write
func (s *meetingService) invalidate(ctx context.Context, userID, meetingID uuid.UUID) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, detailCacheKey(userID, meetingID)); err != nil && s.logger != nil {
		s.logger.Warn("failed to invalidate meeting cache",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
	}
}

func detailCacheKey(userID, meetingID uuid.UUID) string {
	return fmt.Sprintf("meeting:detail:%s:%s", userID, meetingID)
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

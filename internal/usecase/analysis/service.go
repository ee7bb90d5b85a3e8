package analysis

import (
	"context"
	stdErrors "errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/johnquangdev/meeting-companion/errors"
	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
	pkgai "github.com/johnquangdev/meeting-companion/pkg/ai"
	"github.com/johnquangdev/meeting-companion/pkg/config"
)

// Service defines the transcript analysis operations: the two-stage
// pipeline, the derived-artifact generators and the Q&A engine. Every
// method is a stateless single-shot call against the model provider; no
// result caching and no automatic retry.
type Service interface {
	Analyze(ctx context.Context, transcript, role string) (*entities.AnalysisResult, error)
	GenerateActionPlan(ctx context.Context, transcript string) (*entities.ActionPlan, error)
	ClusterTopics(ctx context.Context, transcript string) (*entities.TopicCluster, error)
	GenerateSlides(ctx context.Context, transcript string) (*entities.SlideDeck, error)
	ConvertDocument(ctx context.Context, transcript, docType, language string) (*entities.DocumentDraft, error)
	AnswerQuestion(ctx context.Context, transcript, query string, history []entities.ChatTurn) (string, error)
}

type analysisService struct {
	client *pkgai.OpenRouterClient
	cfg    *config.OpenRouterConfig
	logger *zap.Logger
}

// NewService constructs the analysis service
func NewService(client *pkgai.OpenRouterClient, cfg *config.OpenRouterConfig, logger *zap.Logger) Service {
	return &analysisService{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// completeJSON runs one JSON-mode extraction call and decodes the result
// into out. Provider failures and parse failures both come back typed so
// the endpoint can propagate a meaningful status.
func (s *analysisService) completeJSON(ctx context.Context, model, system, user string, out interface{}) error {
	raw, err := s.client.CreateJSONCompletion(ctx, model, system, user)
	if err != nil {
		return mapClientError(err)
	}
	if err := decodeResponse(raw, out); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to parse model response",
				zap.String("model", model),
				zap.String("raw_response", truncate(raw, 500)),
				zap.Error(err),
			)
		}
		return apperrors.ErrAIParseFailed(err)
	}
	return nil
}

// mapClientError converts transport-level failures into typed AppErrors
func mapClientError(err error) error {
	var upstream *pkgai.UpstreamError
	if stdErrors.As(err, &upstream) {
		return apperrors.ErrAIUpstream(upstream.StatusCode, err)
	}
	return apperrors.ErrAIUpstream(0, err)
}

// Analyze runs the full pipeline: the deep analysis stage and the
// sentiment stage have no data dependency, so they run concurrently and
// join before merging. Either failure fails the whole call.
func (s *analysisService) Analyze(ctx context.Context, transcript, role string) (*entities.AnalysisResult, error) {
	if transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	var deep entities.DeepAnalysis
	var sentiment entities.SentimentResult

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.completeJSON(gctx, s.cfg.AnalysisModel, buildDeepAnalysisPrompt(role), transcript, &deep)
	})
	g.Go(func() error {
		return s.completeJSON(gctx, s.cfg.InsightModel, sentimentPrompt, transcript, &sentiment)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fillDeepAnalysisDefaults(&deep)
	fillSentimentDefaults(&sentiment)

	if s.logger != nil {
		s.logger.Info("pipeline analysis completed",
			zap.Int("action_items", len(deep.ActionItems)),
			zap.Int("decisions", len(deep.Decisions)),
			zap.String("sentiment", sentiment.Sentiment),
		)
	}

	return &entities.AnalysisResult{
		Summary:     deep.Summary,
		ActionItems: deep.ActionItems,
		Decisions:   deep.Decisions,
		Attendees:   deep.Attendees,
		Sentiment:   sentiment,
	}, nil
}

// GenerateActionPlan converts the transcript into a project action plan
func (s *analysisService) GenerateActionPlan(ctx context.Context, transcript string) (*entities.ActionPlan, error) {
	if transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	var plan entities.ActionPlan
	if err := s.completeJSON(ctx, s.cfg.AnalysisModel, actionPlanPrompt, transcript, &plan); err != nil {
		return nil, err
	}
	fillActionPlanDefaults(&plan)
	return &plan, nil
}

// ClusterTopics groups the discussion into named topics
func (s *analysisService) ClusterTopics(ctx context.Context, transcript string) (*entities.TopicCluster, error) {
	if transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	var cluster entities.TopicCluster
	if err := s.completeJSON(ctx, s.cfg.InsightModel, topicsPrompt, transcript, &cluster); err != nil {
		return nil, err
	}
	fillTopicClusterDefaults(&cluster)
	return &cluster, nil
}

// GenerateSlides produces a slide deck outline from the transcript
func (s *analysisService) GenerateSlides(ctx context.Context, transcript string) (*entities.SlideDeck, error) {
	if transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	var deck entities.SlideDeck
	if err := s.completeJSON(ctx, s.cfg.AnalysisModel, slidesPrompt, transcript, &deck); err != nil {
		return nil, err
	}
	fillSlideDeckDefaults(&deck)
	return &deck, nil
}

// ConvertDocument renders the transcript as a typed markdown document.
// Unrecognized types use the generic fallback template instead of failing.
func (s *analysisService) ConvertDocument(ctx context.Context, transcript, docType, language string) (*entities.DocumentDraft, error) {
	if transcript == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	var draft entities.DocumentDraft
	if err := s.completeJSON(ctx, s.cfg.AnalysisModel, buildDocumentPrompt(docType, language), transcript, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// truncate limits a string to n bytes for logging
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

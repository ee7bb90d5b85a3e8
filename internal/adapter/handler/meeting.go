package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-companion/errors"
	meetingdto "github.com/johnquangdev/meeting-companion/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-companion/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meeting-companion/internal/usecase/meeting"
)

// docTypeSlides selects the slide generator on the generate route; every
// other type goes through document conversion
const docTypeSlides = "slides"

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// CreateMeeting handles POST /meetings
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.CreateMeetingInput{
		Transcript:    req.Transcript,
		Title:         req.Title,
		Date:          req.Date,
		SourceFileURL: req.SourceFileURL,
		Bundle: &meetingUsecase.PrecomputedBundle{
			Summary:     req.Summary,
			Sentiment:   req.Sentiment,
			ActionItems: req.ActionItems,
			Decisions:   req.Decisions,
			Attendees:   req.Attendees,
		},
	}

	m, err := h.meetingService.CreateMeeting(c.Request().Context(), userID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /meetings
func (h *Meeting) ListMeetings(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.meetingService.ListMeetings(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings))
}

// GetMeeting handles GET /meetings/:id
func (h *Meeting) GetMeeting(c echo.Context) error {
	userID, meetingID, err := h.scope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// Regenerate handles POST /meetings/:id/regenerate
func (h *Meeting) Regenerate(c echo.Context) error {
	var req meetingdto.RegenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	userID, meetingID, err := h.scope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.meetingService.RegenerateWithRole(c.Request().Context(), userID, meetingID, req.Role)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// GenerateActionPlan handles POST /meetings/:id/action-plan
func (h *Meeting) GenerateActionPlan(c echo.Context) error {
	userID, meetingID, err := h.scope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	plan, err := h.meetingService.GenerateActionPlan(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, plan)
}

// ClusterTopics handles POST /meetings/:id/topics
func (h *Meeting) ClusterTopics(c echo.Context) error {
	userID, meetingID, err := h.scope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	cluster, err := h.meetingService.ClusterTopics(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, cluster)
}

// Chat handles POST /meetings/:id/chat
func (h *Meeting) Chat(c echo.Context) error {
	var req meetingdto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	userID, meetingID, err := h.scope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	history := make([]entities.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, entities.ChatTurn{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	answer, err := h.meetingService.Chat(c.Request().Context(), userID, meetingID, req.Query, history)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ChatResponse{Answer: answer})
}

// Generate handles POST /meetings/:id/generate/:type. The slides type
// yields a structured deck; any other type yields a markdown document.
func (h *Meeting) Generate(c echo.Context) error {
	var req meetingdto.ConvertDocumentRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	userID, meetingID, err := h.scope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	docType := c.Param("type")
	ctx := c.Request().Context()

	// Older clients pass the language hint as a query parameter.
	if req.Language == "" {
		req.Language = c.QueryParam("language")
	}

	if docType == docTypeSlides {
		deck, err := h.meetingService.GenerateSlides(ctx, userID, meetingID)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, deck)
	}

	draft, err := h.meetingService.ConvertDocument(ctx, userID, meetingID, docType, req.Language)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, draft)
}

// userIDFromContext reads the authenticated user set by the auth middleware
func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.ErrUnauthenticated()
	}
	return userID, nil
}

// scope resolves the caller and the addressed meeting ID. A malformed ID
// is reported the same way as an absent meeting.
func (h *Meeting) scope(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := userIDFromContext(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrMeetingNotFound(c.Param("id"))
	}

	return userID, meetingID, nil
}

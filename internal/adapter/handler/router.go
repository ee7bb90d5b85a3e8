package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-companion/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-companion/pkg/config"
	"github.com/johnquangdev/meeting-companion/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	jwtManager     *jwt.Manager
	meetingHandler *Meeting
	storageHandler *Storage
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jwtManager *jwt.Manager, meetingHandler *Meeting, storageHandler *Storage) *Router {
	return &Router{
		cfg:            cfg,
		jwtManager:     jwtManager,
		meetingHandler: meetingHandler,
		storageHandler: storageHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group, authenticated throughout
	v1 := e.Group("/v1", middleware.EchoAuth(rt.jwtManager))

	rt.setupMeetingRoutes(v1)
	rt.setupUploadRoutes(v1)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	if rt.meetingHandler != nil {
		meetings.POST("", rt.meetingHandler.CreateMeeting)
		meetings.GET("", rt.meetingHandler.ListMeetings)
		meetings.GET("/:id", rt.meetingHandler.GetMeeting)
		meetings.POST("/:id/regenerate", rt.meetingHandler.Regenerate)
		meetings.POST("/:id/action-plan", rt.meetingHandler.GenerateActionPlan)
		meetings.POST("/:id/topics", rt.meetingHandler.ClusterTopics)
		meetings.POST("/:id/chat", rt.meetingHandler.Chat)
		meetings.POST("/:id/generate/:type", rt.meetingHandler.Generate)
	} else {
		meetings.Any("", rt.notImplemented)
		meetings.Any("/:id", rt.notImplemented)
	}
}

// setupUploadRoutes configures upload routes
func (rt *Router) setupUploadRoutes(g *echo.Group) {
	uploads := g.Group("/uploads")

	if rt.storageHandler != nil {
		uploads.POST("/transcript", rt.storageHandler.UploadTranscript)
	} else {
		uploads.POST("/transcript", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	authHandler       *Auth
	meetingHandler    *Meeting
	transcribeHandler *Transcribe
	authRequired      echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authHandler *Auth,
	meetingHandler *Meeting,
	transcribeHandler *Transcribe,
	authRequired echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:               cfg,
		authHandler:       authHandler,
		meetingHandler:    meetingHandler,
		transcribeHandler: transcribeHandler,
		authRequired:      authRequired,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupTranscribeRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/signup", rt.authHandler.Signup)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me, rt.authRequired)
}

// setupMeetingRoutes configures meeting CRUD routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings", rt.authRequired)

	meetingGroup.POST("", rt.meetingHandler.Create)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.PATCH("/:id", rt.meetingHandler.Update)
	meetingGroup.DELETE("/:id", rt.meetingHandler.Delete)
	meetingGroup.POST("/:id/markers", rt.meetingHandler.AddMarkers)
	meetingGroup.GET("/:id/report", rt.meetingHandler.GetReport)
}

// setupTranscribeRoutes configures audio intake and status routes
func (rt *Router) setupTranscribeRoutes(g *echo.Group) {
	transcribeGroup := g.Group("/transcribe", rt.authRequired)

	transcribeGroup.POST("", rt.transcribeHandler.Upload)
	transcribeGroup.GET("/:id/status", rt.transcribeHandler.Status)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}

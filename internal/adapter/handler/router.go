package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/note-cleaner/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	notesHandler *Notes
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, notesHandler *Notes) *Router {
	return &Router{
		cfg:          cfg,
		notesHandler: notesHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupNotesRoutes(v1)
}

// setupNotesRoutes configures meeting-notes routes
func (rt *Router) setupNotesRoutes(g *echo.Group) {
	notesGroup := g.Group("/notes")

	notesGroup.POST("/generate", rt.notesHandler.Generate)
	notesGroup.POST("/detect", rt.notesHandler.Detect)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

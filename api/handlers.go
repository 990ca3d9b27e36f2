// Package api exposes the dashboard widgets over HTTP: per-widget CRUD,
// live snapshot streams, and the proxied external data endpoints.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homeboard/integrations"
	"homeboard/internal/auth"
	"homeboard/internal/models"
	"homeboard/internal/roadmap"
	"homeboard/internal/store"
	"homeboard/internal/timers"
)

type Handler struct {
	Store *store.Store

	Tasks        *store.Collection[models.Task, *models.Task]
	Notes        *store.Collection[models.Note, *models.Note]
	Clipboard    *store.Collection[models.ClipboardItem, *models.ClipboardItem]
	Contacts     *store.Collection[models.Contact, *models.Contact]
	Bookmarks    *store.Collection[models.Bookmark, *models.Bookmark]
	Timers       *store.Collection[models.Timer, *models.Timer]
	RoadmapNotes *store.Collection[models.RoadmapNote, *models.RoadmapNote]

	Plan     *roadmap.Plan
	Engine   *timers.Engine
	Weather  *integrations.WeatherClient
	Geocoder *integrations.GeocodeClient
	Calendar *integrations.CalendarClient // nil when no service account is configured
}

// NewHandler wires every collection binding over the store.
func NewHandler(s *store.Store) *Handler {
	return &Handler{
		Store:        s,
		Tasks:        store.NewCollection[models.Task](s, "tasks"),
		Notes:        store.NewCollection[models.Note](s, "notes"),
		Clipboard:    store.NewCollection[models.ClipboardItem](s, "clipboard"),
		Contacts:     store.NewCollection[models.Contact](s, "contacts"),
		Bookmarks:    store.NewCollection[models.Bookmark](s, "bookmarks"),
		Timers:       store.NewCollection[models.Timer](s, timers.Collection),
		RoadmapNotes: store.NewCollection[models.RoadmapNote](s, "roadmapNotes"),
	}
}

// RequireIdentity authenticates the request and stores the identity for
// the handlers behind it. A rejected sign-in surfaces through the same
// notification envelope as every other failure.
func RequireIdentity(v auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := v.Verify(c.Request.Context(), auth.BearerToken(c))
		if err != nil {
			fail(c, &store.PermissionError{Reason: "Please sign in to use the dashboard"})
			c.Abort()
			return
		}
		auth.Attach(c, id)
		c.Next()
	}
}

// Register mounts all widget routes. The clipboard is a shared collection
// and stays outside the auth wall; everything else is owner-scoped.
func (h *Handler) Register(r *gin.RouterGroup, authed gin.HandlerFunc) {
	r.GET("/health", h.HealthCheckHandler)

	r.GET("/clipboard", h.listClipboard)
	r.GET("/clipboard/stream", h.streamClipboard)
	r.POST("/clipboard", h.addClipboardItem)
	r.DELETE("/clipboard/:id", h.removeClipboardItem)

	p := r.Group("", authed)

	p.GET("/me", h.me)

	p.GET("/tasks", h.listTasks)
	p.GET("/tasks/stream", h.streamTasks)
	p.POST("/tasks", h.addTask)
	p.PATCH("/tasks/:id", h.updateTask)
	p.DELETE("/tasks/:id", h.removeTask)

	p.GET("/notes", h.listNotes)
	p.GET("/notes/stream", h.streamNotes)
	p.POST("/notes", h.addNote)
	p.DELETE("/notes/:id", h.removeNote)

	p.GET("/contacts", h.listContacts)
	p.GET("/contacts/stream", h.streamContacts)
	p.POST("/contacts/import", h.importContacts)
	p.DELETE("/contacts/:id", h.removeContact)

	p.GET("/bookmarks", h.listBookmarks)
	p.GET("/bookmarks/stream", h.streamBookmarks)
	p.POST("/bookmarks", h.addBookmark)
	p.DELETE("/bookmarks/:id", h.removeBookmark)

	p.GET("/timers", h.listTimers)
	p.GET("/timers/stream", h.streamTimers)
	p.POST("/timers", h.addTimer)
	p.POST("/timers/:id/start", h.startTimer)
	p.POST("/timers/:id/pause", h.pauseTimer)
	p.POST("/timers/:id/reset", h.resetTimer)
	p.DELETE("/timers/:id", h.removeTimer)

	p.GET("/roadmap/plan", h.roadmapPlan)
	p.GET("/roadmap/notes", h.listRoadmapNotes)
	p.GET("/roadmap/notes/stream", h.streamRoadmapNotes)
	p.GET("/roadmap/notes/:date", h.getRoadmapNote)
	p.PUT("/roadmap/notes/:date", h.saveRoadmapNote)
	p.DELETE("/roadmap/notes/:date", h.removeRoadmapNote)

	p.POST("/schedule/link", h.scheduleLink)
	p.POST("/schedule/events", h.scheduleEvent)

	p.GET("/weather", h.currentWeather)
	p.GET("/locality", h.locality)
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, identity(c))
}

func identity(c *gin.Context) auth.Identity {
	id, _ := auth.FromContext(c)
	return id
}

// notify is the single notification envelope every outcome maps to: the
// client renders it as one dismissible banner regardless of which widget
// or failure produced it.
func notify(c *gin.Context, status int, level, message string, extra gin.H) {
	body := gin.H{"level": level, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, err error) {
	var vErr *store.ValidationError
	var pErr *store.PermissionError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.As(err, &pErr):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}
	notify(c, status, "failure", err.Error(), nil)
}

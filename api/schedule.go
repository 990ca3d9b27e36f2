package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeboard/internal/schedule"
	"homeboard/internal/store"
)

// scheduleLink validates the event form and returns the prefilled
// calendar edit URL. Nothing is persisted server-side.
func (h *Handler) scheduleLink(c *gin.Context) {
	var ev schedule.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}
	if err := ev.Validate(); err != nil {
		fail(c, &store.ValidationError{Reason: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":        ev.EventURL(),
		"recurrence": ev.Recurrence(),
	})
}

// scheduleEvent inserts the event into the configured Google Calendar.
// When no service account is configured the route reports the link-only
// fallback instead of failing silently.
func (h *Handler) scheduleEvent(c *gin.Context) {
	if h.Calendar == nil {
		notify(c, http.StatusServiceUnavailable, "failure", "Calendar is not configured; use the generated link instead", nil)
		return
	}

	var ev schedule.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}
	if err := ev.Validate(); err != nil {
		fail(c, &store.ValidationError{Reason: err.Error()})
		return
	}

	created, err := h.Calendar.CreateEvent(ev)
	if err != nil {
		zap.L().Error("calendar insert failed", zap.String("title", ev.Title), zap.Error(err))
		notify(c, http.StatusBadGateway, "failure", "Could not create the calendar event", nil)
		return
	}
	notify(c, http.StatusCreated, "success", "Event added to your calendar", gin.H{"htmlLink": created.HtmlLink})
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeboard/internal/models"
	"homeboard/internal/store"
)

const (
	defaultPomodoroMinutes = 25
	defaultBreakMinutes    = 5
	maxTimerMinutes        = 180
)

func (h *Handler) listTimers(c *gin.Context) {
	items, err := h.Timers.List(c.Request.Context(), store.Query{Owner: identity(c).ID, Desc: true})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) addTimer(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Duration int    `json:"duration"` // minutes
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		fail(c, &store.ValidationError{Field: "name", Reason: "timer name is required"})
		return
	}

	duration := req.Duration
	timerType := req.Type
	switch timerType {
	case models.TimerPomodoro, "":
		timerType = models.TimerPomodoro
		if duration == 0 {
			duration = defaultPomodoroMinutes
		}
	case models.TimerBreak:
		if duration == 0 {
			duration = defaultBreakMinutes
		}
	case models.TimerCustom:
	default:
		fail(c, &store.ValidationError{Field: "type", Reason: "unknown timer type"})
		return
	}
	if duration < 1 || duration > maxTimerMinutes {
		fail(c, &store.ValidationError{Field: "duration", Reason: "duration must be between 1 and 180 minutes"})
		return
	}

	timer := &models.Timer{
		Name:          strings.TrimSpace(req.Name),
		Duration:      duration,
		TimeRemaining: duration * 60,
		IsRunning:     false,
		Type:          timerType,
	}
	id, err := h.Timers.Insert(c.Request.Context(), identity(c).ID, timer)
	if err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusCreated, "success", "Timer added", gin.H{"id": id})
}

func (h *Handler) startTimer(c *gin.Context) {
	if err := h.Engine.StartTimer(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "success", "Timer started", nil)
}

func (h *Handler) pauseTimer(c *gin.Context) {
	if err := h.Engine.PauseTimer(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Timer paused", nil)
}

func (h *Handler) resetTimer(c *gin.Context) {
	if err := h.Engine.ResetTimer(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "info", "Timer reset", nil)
}

func (h *Handler) removeTimer(c *gin.Context) {
	if err := h.Timers.Remove(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Timer removed", nil)
}

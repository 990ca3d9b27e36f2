package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"homeboard/internal/models"
	"homeboard/internal/roadmap"
	"homeboard/internal/store"
)

// roadmapPlan returns the bundled study plan with today's phase/week/day
// pre-selected.
func (h *Handler) roadmapPlan(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"plan":      h.Plan,
		"selection": h.Plan.Select(time.Now()),
	})
}

func (h *Handler) listRoadmapNotes(c *gin.Context) {
	items, err := h.RoadmapNotes.List(c.Request.Context(), store.Query{Owner: identity(c).ID, Desc: true})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) getRoadmapNote(c *gin.Context) {
	day := c.Param("date")
	if !roadmap.ValidDayKey(day) {
		fail(c, &store.ValidationError{Field: "date", Reason: "expected a DD-MM-YYYY day"})
		return
	}

	id := identity(c)
	note, err := h.RoadmapNotes.Get(c.Request.Context(), id.ID, roadmap.NoteID(id.Email, day))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// saveRoadmapNote writes the single note for (user, day). The id is
// derived from both, so saving twice can only ever touch one document.
// Saving an empty note deletes it.
func (h *Handler) saveRoadmapNote(c *gin.Context) {
	day := c.Param("date")
	if !roadmap.ValidDayKey(day) {
		fail(c, &store.ValidationError{Field: "date", Reason: "expected a DD-MM-YYYY day"})
		return
	}

	var req struct {
		Content         string   `json:"content"`
		CompletedTopics []string `json:"completedTopics"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}

	id := identity(c)
	ctx := c.Request.Context()
	noteID := roadmap.NoteID(id.Email, day)
	empty := strings.TrimSpace(req.Content) == "" && len(req.CompletedTopics) == 0

	existing, err := h.RoadmapNotes.Get(ctx, id.ID, noteID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		fail(c, err)
		return
	}

	if empty {
		if existing == nil {
			fail(c, &store.ValidationError{Reason: "nothing to save"})
			return
		}
		if err := h.RoadmapNotes.Remove(ctx, id.ID, noteID); err != nil {
			fail(c, err)
			return
		}
		notify(c, http.StatusOK, "warning", "Note deleted", nil)
		return
	}

	now := time.Now().UTC()
	note := &models.RoadmapNote{
		Date:            day,
		Content:         req.Content,
		CompletedTopics: req.CompletedTopics,
		Updated:         now,
	}
	note.ID = noteID
	if existing != nil {
		note.Created = existing.Created
	} else {
		note.Created = now
	}

	if err := h.RoadmapNotes.Put(ctx, id.ID, note); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "success", "Note saved", gin.H{"id": noteID})
}

func (h *Handler) removeRoadmapNote(c *gin.Context) {
	day := c.Param("date")
	if !roadmap.ValidDayKey(day) {
		fail(c, &store.ValidationError{Field: "date", Reason: "expected a DD-MM-YYYY day"})
		return
	}

	id := identity(c)
	if err := h.RoadmapNotes.Remove(c.Request.Context(), id.ID, roadmap.NoteID(id.Email, day)); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Note deleted", nil)
}

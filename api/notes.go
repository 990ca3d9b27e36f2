package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeboard/internal/models"
	"homeboard/internal/store"
)

func (h *Handler) listNotes(c *gin.Context) {
	items, err := h.Notes.List(c.Request.Context(), store.Query{Owner: identity(c).ID, Desc: true})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) addNote(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		fail(c, &store.ValidationError{Field: "title", Reason: "title is required"})
		return
	}

	id, err := h.Notes.Insert(c.Request.Context(), identity(c).ID, &models.Note{
		Title: strings.TrimSpace(req.Title),
	})
	if err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusCreated, "success", "Note added", gin.H{"id": id})
}

func (h *Handler) removeNote(c *gin.Context) {
	if err := h.Notes.Remove(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Note removed", nil)
}

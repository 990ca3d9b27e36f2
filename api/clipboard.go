package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeboard/internal/models"
	"homeboard/internal/store"
)

// The clipboard is the one shared collection: no owner filter, no sign-in.

func (h *Handler) listClipboard(c *gin.Context) {
	items, err := h.Clipboard.List(c.Request.Context(), store.Query{Desc: true})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) addClipboardItem(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		fail(c, &store.ValidationError{Field: "content", Reason: "clipboard is empty"})
		return
	}

	id, err := h.Clipboard.Insert(c.Request.Context(), "", &models.ClipboardItem{Content: req.Content})
	if err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusCreated, "success", "Content pasted and saved", gin.H{"id": id})
}

func (h *Handler) removeClipboardItem(c *gin.Context) {
	if err := h.Clipboard.Remove(c.Request.Context(), "", c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Item removed", nil)
}

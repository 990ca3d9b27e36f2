package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeboard/internal/models"
	"homeboard/internal/store"
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type taskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (h *Handler) listTasks(c *gin.Context) {
	items, err := h.Tasks.List(c.Request.Context(), store.Query{Owner: identity(c).ID, Desc: true})
	if err != nil {
		fail(c, err)
		return
	}

	uncompleted := len(store.Search(items, func(t models.Task) bool { return !t.Completed }))
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total":       len(items),
		"uncompleted": uncompleted,
	})
}

func (h *Handler) addTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		fail(c, &store.ValidationError{Field: "title", Reason: "title is required"})
		return
	}

	task := &models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}
	id, err := h.Tasks.Insert(c.Request.Context(), identity(c).ID, task)
	if err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusCreated, "success", "Task added", gin.H{"id": id})
}

func (h *Handler) updateTask(c *gin.Context) {
	var patch taskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}

	fields := map[string]any{}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			fail(c, &store.ValidationError{Field: "title", Reason: "title is required"})
			return
		}
		fields["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Completed != nil {
		fields["completed"] = *patch.Completed
	}
	if len(fields) == 0 {
		fail(c, &store.ValidationError{Reason: "nothing to update"})
		return
	}

	if err := h.Tasks.Update(c.Request.Context(), identity(c).ID, c.Param("id"), fields); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "success", "Task updated", nil)
}

func (h *Handler) removeTask(c *gin.Context) {
	if err := h.Tasks.Remove(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Task removed", nil)
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-activity-backend/internal/tasks"
)

type taskTextRequest struct {
	Text string `json:"text"`
}

func respondTaskError(c *gin.Context, err error) {
	if errors.Is(err, tasks.ErrEmptyText) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task cannot be empty"})
		return
	}
	respondError(c, err)
}

// ListTasks returns the task list, optionally narrowed with ?filter=active|completed.
func (h *Handler) ListTasks(c *gin.Context) {
	list, err := h.tasks.All(c.Request.Context(), tasks.ParseFilter(c.Query("filter")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateTask adds an open task.
func (h *Handler) CreateTask(c *gin.Context) {
	var req taskTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.tasks.Add(c.Request.Context(), req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask replaces a task's text.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req taskTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), id, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ToggleTask flips a task between open and completed.
func (h *Handler) ToggleTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := h.tasks.Toggle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/calendar"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/mail"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// ============================================================================
// Recent items
// ============================================================================

// ListRecent lists recently opened items, newest first
func (h *Handlers) ListRecent(c *gin.Context) {
	items, err := h.shell.Recent.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

// RemoveRecent drops one entry
func (h *Handlers) RemoveRecent(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	items, err := h.shell.Recent.Remove(c.Request.Context(), id.RecentID(raw))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

// ClearRecent empties the list
func (h *Handlers) ClearRecent(c *gin.Context) {
	if err := h.shell.Recent.Clear(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ============================================================================
// Calendar
// ============================================================================

// ListEvents lists every calendar event
func (h *Handlers) ListEvents(c *gin.Context) {
	events, err := h.shell.Calendar.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// TodayEvents lists today's events by start time
func (h *Handlers) TodayEvents(c *gin.Context) {
	events, err := h.shell.Calendar.Today(c.Request.Context(), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// AddEvent creates an event
func (h *Handlers) AddEvent(c *gin.Context) {
	var e calendar.Event
	if err := c.ShouldBindJSON(&e); err != nil {
		invalid(c, err)
		return
	}
	added, err := h.shell.Calendar.Add(c.Request.Context(), e)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "event": added})
}

// UpdateEvent merges a patch into an event
func (h *Handlers) UpdateEvent(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	var p calendar.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		invalid(c, err)
		return
	}
	e, found, err := h.shell.Calendar.Update(c.Request.Context(), id.EventID(raw), p)
	eventResult(c, e, found, err)
}

// ToggleEvent flips an event's completed flag
func (h *Handlers) ToggleEvent(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	e, found, err := h.shell.Calendar.ToggleComplete(c.Request.Context(), id.EventID(raw))
	eventResult(c, e, found, err)
}

// DeleteEvent removes an event
func (h *Handlers) DeleteEvent(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.shell.Calendar.Delete(c.Request.Context(), id.EventID(raw))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": deleted, "event_id": raw})
}

func eventResult(c *gin.Context, e calendar.Event, found bool, err error) {
	switch {
	case err != nil:
		fail(c, err)
	case !found:
		missing(c, "event")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
	}
}

// ============================================================================
// Mail
// ============================================================================

// ListMail lists email notifications with the unread count
func (h *Handlers) ListMail(c *gin.Context) {
	ctx := c.Request.Context()
	emails, err := h.shell.Mail.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	unread, err := h.shell.Mail.Unread(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "emails": emails, "unread": unread})
}

// AddMail delivers a notification
func (h *Handlers) AddMail(c *gin.Context) {
	var e mail.Email
	if err := c.ShouldBindJSON(&e); err != nil {
		invalid(c, err)
		return
	}
	emails, err := h.shell.Mail.Add(c.Request.Context(), e)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "emails": emails})
}

// MarkMailRead marks one email read
func (h *Handlers) MarkMailRead(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	marked, err := h.shell.Mail.MarkRead(c.Request.Context(), id.MailID(raw))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": marked, "email_id": raw})
}

// ============================================================================
// Tasks
// ============================================================================

// ListTasks lists tasks, newest first
func (h *Handlers) ListTasks(c *gin.Context) {
	list, err := h.shell.Tasks.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": list})
}

// AddTask creates a task
func (h *Handlers) AddTask(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	task, err := h.shell.Tasks.Add(c.Request.Context(), req.Title)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}

// ToggleTask flips a task's completed flag
func (h *Handlers) ToggleTask(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	task, found, err := h.shell.Tasks.Toggle(c.Request.Context(), id.TaskID(raw))
	switch {
	case err != nil:
		fail(c, err)
	case !found:
		missing(c, "task")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
	}
}

// RenameTask changes a task's title
func (h *Handlers) RenameTask(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	task, found, err := h.shell.Tasks.Rename(c.Request.Context(), id.TaskID(raw), req.Title)
	switch {
	case err != nil:
		fail(c, err)
	case !found:
		missing(c, "task")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
	}
}

// DeleteTask removes a task
func (h *Handlers) DeleteTask(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.shell.Tasks.Delete(c.Request.Context(), id.TaskID(raw))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": deleted, "task_id": raw})
}

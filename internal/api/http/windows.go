package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// ListWindows lists open windows in stacking order
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"windows": h.shell.Windows.List(),
		"visible": h.shell.Windows.Visible(),
		"stats":   h.shell.Windows.Stats(),
	})
}

// OpenWindow opens an app window
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req struct {
		AppID string `json:"appId" binding:"required"`
		Title string `json:"title"`
		Icon  string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	w, err := h.shell.OpenApp(c.Request.Context(), req.AppID, req.Title, req.Icon)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"window":  w,
	})
}

// CloseWindow closes a window; focus moves to the new last window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowOp(c, h.shell.Windows.Close)
}

// MinimizeWindow hides a window without closing it
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowOp(c, h.shell.Windows.Minimize)
}

// RestoreWindow un-minimizes and focuses a window
func (h *Handlers) RestoreWindow(c *gin.Context) {
	h.windowOp(c, h.shell.Windows.Restore)
}

// FocusWindow brings a window to the front
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowOp(c, h.shell.Windows.Focus)
}

// MoveWindow sets a window's position
func (h *Handlers) MoveWindow(c *gin.Context) {
	var req struct {
		X *int `json:"x" binding:"required"`
		Y *int `json:"y" binding:"required"`
	}
	h.windowBodyOp(c, &req, func(wid id.WindowID) bool {
		return h.shell.Windows.Move(wid, *req.X, *req.Y)
	})
}

// ResizeWindow sets a window's size; the manager enforces the minimum
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var req struct {
		Width  *int `json:"width" binding:"required"`
		Height *int `json:"height" binding:"required"`
	}
	h.windowBodyOp(c, &req, func(wid id.WindowID) bool {
		return h.shell.Windows.Resize(wid, *req.Width, *req.Height)
	})
}

func (h *Handlers) windowOp(c *gin.Context, op func(id.WindowID) bool) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	h.windowResult(c, id.WindowID(raw), op(id.WindowID(raw)))
}

func (h *Handlers) windowBodyOp(c *gin.Context, req interface{}, op func(id.WindowID) bool) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		invalid(c, err)
		return
	}
	h.windowResult(c, id.WindowID(raw), op(id.WindowID(raw)))
}

// windowResult reports unknown ids as success=false with 200, matching the
// manager's silent no-op contract.
func (h *Handlers) windowResult(c *gin.Context, wid id.WindowID, found bool) {
	var w *window.Window
	if got, ok := h.shell.Windows.Get(wid); ok {
		w = &got
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   found,
		"window_id": wid,
		"window":    w,
	})
}

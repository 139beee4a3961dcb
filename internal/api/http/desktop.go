package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// ListIcons lists desktop icons
func (h *Handlers) ListIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"icons":   h.shell.Desktop.List(),
	})
}

// RefreshIcons reloads icons from storage and lays them out again
func (h *Handlers) RefreshIcons(c *gin.Context) {
	icons, err := h.shell.Desktop.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"icons":   icons,
	})
}

// NewFolder adds a "New Folder" icon
func (h *Handlers) NewFolder(c *gin.Context) {
	icon, err := h.shell.Desktop.NewFolder(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"icon":    icon,
	})
}

// MoveIcon persists a drag release position
func (h *Handlers) MoveIcon(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		X *int `json:"x" binding:"required"`
		Y *int `json:"y" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	moved, err := h.shell.Desktop.Move(c.Request.Context(), id.IconID(raw), *req.X, *req.Y)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": moved,
		"icon_id": raw,
	})
}

// OpenIcon launches the app behind a desktop icon
func (h *Handlers) OpenIcon(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}

	w, opened, err := h.shell.OpenIcon(c.Request.Context(), id.IconID(raw))
	if err != nil {
		fail(c, err)
		return
	}
	if !opened {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"icon_id": raw,
			"message": "Icon is not launchable",
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"window":  w,
	})
}

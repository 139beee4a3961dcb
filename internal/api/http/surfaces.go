package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/shell"
)

// SurfaceState reports which transient surfaces are open
func (h *Handlers) SurfaceState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"surfaces": h.shell.Surfaces.State(),
	})
}

// ToggleSurface flips the start menu, widgets or notification panel
func (h *Handlers) ToggleSurface(c *gin.Context) {
	var state shell.SurfaceState
	switch name := c.Param("name"); name {
	case "start":
		state = h.shell.Surfaces.ToggleStart()
	case "widgets":
		state = h.shell.Surfaces.ToggleWidgets()
	case "notifications":
		state = h.shell.Surfaces.ToggleNotifications()
	default:
		invalid(c, fmt.Errorf("unknown surface %q", name))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"surfaces": state,
	})
}

// OpenContextMenu opens the desktop context menu at a point
func (h *Handlers) OpenContextMenu(c *gin.Context) {
	var req struct {
		X *int `json:"x" binding:"required"`
		Y *int `json:"y" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"surfaces": h.shell.Surfaces.OpenContextMenu(*req.X, *req.Y),
	})
}

// CloseContextMenu closes the context menu only
func (h *Handlers) CloseContextMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"surfaces": h.shell.Surfaces.CloseContextMenu(),
	})
}

// CloseSurfaces closes everything, as a click on the desktop does
func (h *Handlers) CloseSurfaces(c *gin.Context) {
	h.shell.Surfaces.CloseAll()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"surfaces": h.shell.Surfaces.State(),
	})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/settings"
)

// GetSettings returns every setting
func (h *Handlers) GetSettings(c *gin.Context) {
	all, err := h.shell.Settings.Export(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": all})
}

// SetWallpaper changes the desktop background
func (h *Handlers) SetWallpaper(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	if err := h.shell.Settings.SetWallpaper(c.Request.Context(), req.URL); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "wallpaper": req.URL})
}

// NextWallpaper cycles to the next wallpaper option
func (h *Handlers) NextWallpaper(c *gin.Context) {
	url, err := h.shell.Settings.NextWallpaper(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "wallpaper": url})
}

// AddWallpaper adds a custom wallpaper option
func (h *Handlers) AddWallpaper(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		URL  string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	opt, err := h.shell.Settings.AddCustomWallpaper(c.Request.Context(), req.Name, req.URL)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "option": opt})
}

// SetTheme switches between light and dark
func (h *Handlers) SetTheme(c *gin.Context) {
	var req struct {
		Theme settings.Theme `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	if err := h.shell.Settings.SetTheme(c.Request.Context(), req.Theme); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "theme": req.Theme})
}

// SetAccentColor changes the accent colour
func (h *Handlers) SetAccentColor(c *gin.Context) {
	var req struct {
		Color string `json:"color" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	if err := h.shell.Settings.SetAccentColor(c.Request.Context(), req.Color); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "accentColor": req.Color})
}

// SetProfile replaces the user profile
func (h *Handlers) SetProfile(c *gin.Context) {
	var p settings.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		invalid(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.shell.Settings.SetProfile(ctx, p); err != nil {
		fail(c, err)
		return
	}
	stored, err := h.shell.Settings.Profile(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": stored})
}

// RenameDevice changes the device name
func (h *Handlers) RenameDevice(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	device, err := h.shell.Settings.RenameDevice(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "device": device})
}

// ToggleBluetooth flips the radio
func (h *Handlers) ToggleBluetooth(c *gin.Context) {
	enabled, err := h.shell.Settings.ToggleBluetooth(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "enabled": enabled})
}

// SetNetwork replaces the connection info
func (h *Handlers) SetNetwork(c *gin.Context) {
	var n settings.Network
	if err := c.ShouldBindJSON(&n); err != nil {
		invalid(c, err)
		return
	}
	if err := h.shell.Settings.SetNetwork(c.Request.Context(), n); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "network": n})
}

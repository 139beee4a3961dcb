package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListApps lists registered apps in pin order
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"apps":    h.shell.Registry.List(),
	})
}

// SearchApps is the start menu search box
func (h *Handlers) SearchApps(c *gin.Context) {
	query := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"apps":    h.shell.Registry.Search(query),
	})
}

// GetApp returns one app definition
func (h *Handlers) GetApp(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	def, found := h.shell.Registry.Lookup(raw)
	if !found {
		missing(c, "app")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"app":     def,
	})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

// ListFiles lists the children of ?parent (root when omitted)
func (h *Handlers) ListFiles(c *gin.Context) {
	parent := c.DefaultQuery("parent", string(vfs.RootID))
	if err := utils.ValidateID(parent, "parent", true); err != nil {
		invalid(c, err)
		return
	}
	if _, ok := h.shell.Files.Get(id.ItemID(parent)); !ok {
		missing(c, "folder")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"parent":  parent,
		"items":   h.shell.Files.Children(id.ItemID(parent)),
	})
}

// FileTree returns the whole file system as nested nodes
func (h *Handlers) FileTree(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tree":    h.shell.Files.Tree(),
	})
}

// GlobFiles matches item paths against ?pattern
func (h *Handlers) GlobFiles(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "pattern is required",
		})
		return
	}

	items, err := h.shell.Files.Glob(pattern)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pattern": pattern,
		"items":   items,
	})
}

// GetFile returns one item with its path
func (h *Handlers) GetFile(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	item, found := h.shell.Files.Get(id.ItemID(raw))
	if !found {
		missing(c, "item")
		return
	}
	path, _ := h.shell.Files.Path(item.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item,
		"path":    path,
	})
}

// CreateFile creates a file or folder
func (h *Handlers) CreateFile(c *gin.Context) {
	var req struct {
		Name     string       `json:"name" binding:"required"`
		Type     vfs.ItemType `json:"type" binding:"required,oneof=file folder"`
		Content  string       `json:"content"`
		ParentID id.ItemID    `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	var (
		item vfs.Item
		err  error
	)
	ctx := c.Request.Context()
	if req.Type == vfs.TypeFolder {
		item, err = h.shell.Files.CreateFolder(ctx, req.Name, req.ParentID)
	} else {
		item, err = h.shell.Files.CreateFile(ctx, req.Name, req.Content, req.ParentID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"item":    item,
	})
}

// UpdateFile renames an item or replaces file content
func (h *Handlers) UpdateFile(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	var patch vfs.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalid(c, err)
		return
	}

	item, found, err := h.shell.Files.Update(c.Request.Context(), id.ItemID(raw), patch)
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		missing(c, "item")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item,
	})
}

// MoveFile reparents an item
func (h *Handlers) MoveFile(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		ParentID id.ItemID `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	moved, err := h.shell.Files.Move(c.Request.Context(), id.ItemID(raw), req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	if !moved {
		missing(c, "item")
		return
	}
	item, _ := h.shell.Files.Get(id.ItemID(raw))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item,
	})
}

// DeleteFile removes an item and everything under it
func (h *Handlers) DeleteFile(c *gin.Context) {
	raw, ok := pathID(c)
	if !ok {
		return
	}

	removed, err := h.shell.Files.Delete(c.Request.Context(), id.ItemID(raw))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": removed > 0,
		"removed": removed,
	})
}

package vfs

import (
	"errors"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// ItemType distinguishes files from folders
type ItemType string

const (
	TypeFile   ItemType = "file"
	TypeFolder ItemType = "folder"
)

// RootID is the id of the root folder
const RootID id.ItemID = "root"

var (
	ErrParentNotFound = errors.New("parent folder not found")
	ErrNotFolder      = errors.New("parent is not a folder")
	ErrCycle          = errors.New("cannot move a folder into itself or a descendant")
	ErrRootProtected  = errors.New("root folder cannot be deleted or moved")
	ErrInvalidName    = errors.New("invalid name")
	ErrBadPattern     = errors.New("invalid glob pattern")
	ErrTooLarge       = errors.New("file content too large")
)

// Item is one file or folder record
type Item struct {
	ID        id.ItemID  `json:"id"`
	Name      string     `json:"name"`
	Type      ItemType   `json:"type"`
	ParentID  *id.ItemID `json:"parentId"`
	CreatedAt int64      `json:"createdAt"`
	UpdatedAt int64      `json:"updatedAt"`
	Content   *string    `json:"content,omitempty"`
	Size      *int64     `json:"size,omitempty"`
	MimeType  string     `json:"mimeType,omitempty"`
}

// IsFolder reports whether the item is a folder
func (i Item) IsFolder() bool { return i.Type == TypeFolder }

// Parent returns the parent id, "" for top-level records
func (i Item) Parent() id.ItemID {
	if i.ParentID == nil {
		return ""
	}
	return *i.ParentID
}

// Patch holds optional updates for Update
type Patch struct {
	Name    *string `json:"name,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Node is an item with its children, for tree rendering
type Node struct {
	Item
	Children []Node `json:"children,omitempty"`
}

func clone(i Item) Item {
	if i.ParentID != nil {
		p := *i.ParentID
		i.ParentID = &p
	}
	if i.Content != nil {
		c := *i.Content
		i.Content = &c
	}
	if i.Size != nil {
		s := *i.Size
		i.Size = &s
	}
	return i
}

func defaultRoot(now int64) Item {
	return Item{
		ID:        RootID,
		Name:      "Root",
		Type:      TypeFolder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

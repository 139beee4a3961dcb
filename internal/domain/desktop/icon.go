// Package desktop manages desktop icons: defaults, legacy migration,
// two-column layout and drag persistence.
package desktop

import (
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Type classifies an icon
type Type string

const (
	TypeFolder Type = "folder"
	TypeFile   Type = "file"
	TypeApp    Type = "app"
	TypeSystem Type = "system"
)

// Layout constants
const (
	// ColumnLeft and ColumnRight are the two icon column x offsets
	ColumnLeft  = 32
	ColumnRight = 160
	// RowTop is the y of the first row; RowGap separates rows after relayout
	RowTop = 32
	RowGap = 108
	// NewFolderGap spaces folders created from the context menu
	NewFolderGap = 96
)

// Icon is a shortcut on the desktop surface
type Icon struct {
	ID    id.IconID `json:"id"`
	Label string    `json:"label"`
	Icon  string    `json:"icon"`
	X     int       `json:"x"`
	Y     int       `json:"y"`
	Type  Type      `json:"type"`
	Path  string    `json:"path,omitempty"`
}

// Position returns the icon's coordinates
func (i Icon) Position() types.Position {
	return types.Position{X: i.X, Y: i.Y}
}

// Launchable reports whether double-clicking the icon opens a window
func Launchable(i Icon) bool {
	return i.Type == TypeFolder || i.Type == TypeApp
}

// AppFor returns the app id an icon launches. File Explorer and folders
// open the explorer; other icons launch under their own id.
func AppFor(i Icon) string {
	if i.Label == "File Explorer" || i.Icon == "folder" {
		return types.ContentExplorer
	}
	return i.ID.String()
}

// hidden reports icons that are no longer shown on the desktop
func hidden(i Icon) bool {
	return i.Icon == "recycle-bin" || strings.EqualFold(i.Label, "this pc")
}

// legacyEmoji reports icon values from the emoji era: at most three runes,
// one of them in U+1F000..U+1F9FF.
func legacyEmoji(value string) bool {
	if value == "" || utf8.RuneCountInString(value) > 3 {
		return false
	}
	for _, r := range value {
		if r >= 0x1F000 && r <= 0x1F9FF {
			return true
		}
	}
	return false
}

// DefaultIcons is the stock desktop
func DefaultIcons() []Icon {
	return []Icon{
		// First column
		{ID: "1", Label: "Recycle Bin", Icon: "recycle-bin", X: 32, Y: 32, Type: TypeSystem},
		{ID: "3", Label: "File Explorer", Icon: "folder", X: 32, Y: 140, Type: TypeApp, Path: "/Documents"},
		{ID: "4", Label: "Chrome", Icon: "chrome", X: 32, Y: 248, Type: TypeApp},
		{ID: "5", Label: "Excel", Icon: "excel", X: 32, Y: 356, Type: TypeApp},
		{ID: "6", Label: "Word", Icon: "word", X: 32, Y: 464, Type: TypeApp},
		// Second column
		{ID: "8", Label: "Cursor AI", Icon: "cursor", X: 160, Y: 32, Type: TypeApp},
		{ID: "9", Label: "PowerPoint", Icon: "powerpoint", X: 160, Y: 140, Type: TypeApp},
		{ID: "7", Label: "VS Code", Icon: "vscode", X: 160, Y: 248, Type: TypeApp},
	}
}

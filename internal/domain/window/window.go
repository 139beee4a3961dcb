package window

import (
	"context"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Window is one open application surface
type Window struct {
	ID          id.WindowID    `json:"id"`
	AppID       string         `json:"appId"`
	Title       string         `json:"title"`
	Icon        string         `json:"icon,omitempty"`
	Content     types.Content  `json:"content"`
	IsMinimized bool           `json:"isMinimized"`
	IsActive    bool           `json:"isActive"`
	Position    types.Position `json:"position"`
	Size        types.Size     `json:"size"`
}

// Stats summarises the window collection
type Stats struct {
	Total     int          `json:"total"`
	Visible   int          `json:"visible"`
	Minimized int          `json:"minimized"`
	ActiveID  *id.WindowID `json:"activeId,omitempty"`
}

// Layout controls where new windows appear and how small they may get
type Layout struct {
	Base    types.Position
	Offset  int
	Default types.Size
	Min     types.Size
}

// DefaultLayout cascades from (100,100) in 30px steps with 800x600
// windows and a 400x300 resize floor.
func DefaultLayout() Layout {
	return Layout{
		Base:    types.Position{X: 100, Y: 100},
		Offset:  30,
		Default: types.Size{Width: 800, Height: 600},
		Min:     types.Size{Width: 400, Height: 300},
	}
}

// cascade returns the position for the n-th open window
func (l Layout) cascade(n int) types.Position {
	return types.Position{
		X: l.Base.X + n*l.Offset,
		Y: l.Base.Y + n*l.Offset,
	}
}

// Recorder is told about every newly opened window
type Recorder interface {
	Opened(ctx context.Context, w Window)
}

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(ctx context.Context, w Window)

// Opened calls f(ctx, w)
func (f RecorderFunc) Opened(ctx context.Context, w Window) { f(ctx, w) }

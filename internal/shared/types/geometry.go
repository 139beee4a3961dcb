package types

// Position is a point on the desktop surface, in CSS pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window's outer dimensions
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClampMin returns s with each dimension raised to at least min's
func (s Size) ClampMin(min Size) Size {
	if s.Width < min.Width {
		s.Width = min.Width
	}
	if s.Height < min.Height {
		s.Height = min.Height
	}
	return s
}

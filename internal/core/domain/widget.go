package domain

// WidgetPosition is where the capture widget sits, in cells from the
// top-left of the viewport.
type WidgetPosition struct {
	Top  int `json:"top"`
	Left int `json:"left"`
}

// WidgetSize is the widget's rendered dimensions.
type WidgetSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Viewport is the visible area the widget must stay inside.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Clamp returns the position constrained so the whole widget stays
// inside the viewport. A saved position from a larger screen lands on
// the nearest edge rather than off-screen.
func (p WidgetPosition) Clamp(view Viewport, size WidgetSize) WidgetPosition {
	maxTop := view.Height - size.Height
	maxLeft := view.Width - size.Width
	if maxTop < 0 {
		maxTop = 0
	}
	if maxLeft < 0 {
		maxLeft = 0
	}
	out := p
	if out.Top < 0 {
		out.Top = 0
	}
	if out.Top > maxTop {
		out.Top = maxTop
	}
	if out.Left < 0 {
		out.Left = 0
	}
	if out.Left > maxLeft {
		out.Left = maxLeft
	}
	return out
}

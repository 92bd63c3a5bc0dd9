package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/motus/status"
)

// DiagnosticsLayer prints the status registry on the top row
type DiagnosticsLayer struct {
	registry *status.Registry
	keys     []string
	visible  bool
}

// NewDiagnosticsLayer creates a layer printing keys in order
func NewDiagnosticsLayer(registry *status.Registry, keys []string, visible bool) *DiagnosticsLayer {
	return &DiagnosticsLayer{registry: registry, keys: keys, visible: visible}
}

// IsVisible implements VisibilityToggle
func (l *DiagnosticsLayer) IsVisible() bool {
	return l.visible
}

// Toggle flips visibility
func (l *DiagnosticsLayer) Toggle() {
	l.visible = !l.visible
}

// Render writes the line, truncated to the width
func (l *DiagnosticsLayer) Render(ctx Context, buf *Buffer) {
	line := runewidth.Truncate(l.registry.Format(l.keys...), ctx.Width, "…")
	x := 0
	for _, r := range line {
		buf.SetText(x, 0, r, RgbDiag, 1, 0)
		x += max(1, runewidth.RuneWidth(r))
	}
}

package render

import (
	"math"
	"time"
)

// Context provides frame state for layers, passed by value
type Context struct {
	Elapsed  time.Duration // presentation clock, frozen while paused
	IsPaused bool

	Width  int
	Height int
}

// cellAspect is the height of a terminal cell in widths
const cellAspect = 2.0

// SceneUnit is the radius, in rows, of the unit circle of the scene
func (c Context) SceneUnit() float64 {
	return math.Min(float64(c.Width)/cellAspect, float64(c.Height)) / 2
}

// Center is the viewport centre in cell coordinates
func (c Context) Center() (cx, cy float64) {
	return float64(c.Width) / 2, float64(c.Height) / 2
}

// Distance is the aspect-corrected distance of cell x,y from the centre in
// scene units, with the cell's angle around the centre
func (c Context) Distance(x, y int) (d, angle float64) {
	unit := c.SceneUnit()
	if unit <= 0 {
		return math.Inf(1), 0
	}
	cx, cy := c.Center()
	dx := (float64(x) + 0.5 - cx) / cellAspect
	dy := float64(y) + 0.5 - cy
	return math.Hypot(dx, dy) / unit, math.Atan2(dy, dx)
}

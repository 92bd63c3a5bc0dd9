package whisper

import (
	"math"

	"github.com/lixenwraith/motus/visual"
)

// Rect is an axis-aligned box in viewport units
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromCenter builds the box of size b centred on p
func RectFromCenter(p Point, b Bounds) Rect {
	hw, hh := b.Width/2, b.Height/2
	return Rect{Left: p.X - hw, Top: p.Y - hh, Right: p.X + hw, Bottom: p.Y + hh}
}

// touchEpsilon absorbs rounding when a box is pushed exactly to the rim
const touchEpsilon = 1e-9

// SafeZone is the no-spawn region around the visual core: a circle in row
// units, stretched horizontally by the cell aspect
type SafeZone struct {
	CenterX, CenterY, Radius float64
	Aspect                   float64 // columns per row; 0 means 1
}

// SafeZoneFor derives the zone for a viewport measured in cells
func SafeZoneFor(cfg SafeZoneConfig, width, height float64) SafeZone {
	aspect := cfg.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	minDim := math.Min(width/aspect, height)
	return SafeZone{
		CenterX: width / 2,
		CenterY: height / 2,
		Radius:  minDim*cfg.RadiusRatio + cfg.Padding,
		Aspect:  aspect,
	}
}

// Intersects reports whether the box reaches inside the zone
// A box resting on the rim does not intersect
func (z SafeZone) Intersects(r Rect) bool {
	if z.Radius <= 0 {
		return false
	}
	cx := clamp(z.CenterX, r.Left, r.Right)
	cy := clamp(z.CenterY, r.Top, r.Bottom)
	dx, dy := z.columns(z.CenterX-cx), z.CenterY-cy
	return dx*dx+dy*dy < z.Radius*z.Radius-touchEpsilon
}

// clearanceY is the smallest vertical distance between the zone centre and
// the box centre that keeps a box of half-height hh, whose horizontal gap to
// the centre is gap columns, outside the zone
func (z SafeZone) clearanceY(gap, hh float64) float64 {
	dx := z.columns(gap)
	if dx >= z.Radius {
		return 0
	}
	return math.Sqrt(z.Radius*z.Radius-dx*dx) + hh
}

// columns converts a horizontal cell distance to row units
func (z SafeZone) columns(d float64) float64 {
	if z.Aspect > 0 {
		return d / z.Aspect
	}
	return d
}

func horizontalGap(cx float64, r Rect) float64 {
	switch {
	case cx < r.Left:
		return r.Left - cx
	case cx > r.Right:
		return cx - r.Right
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return visual.Clamp(v, lo, hi)
}

func clamp01(v float64) float64 {
	return visual.Clamp01(v)
}

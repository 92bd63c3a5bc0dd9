package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/motus/whisper"
)

const whisperDriftSpeed = 0.06 // noise units per second

// WhisperSource supplies the live whispers each frame
type WhisperSource interface {
	Active() []whisper.Whisper
}

// WhisperLayer draws whisper text at the scheduler's positions
// Drift is horizontal and never exceeds the whole cells of the frame drift
// the scheduler reserved around each box
type WhisperLayer struct {
	source   WhisperSource
	noise    *Noise
	maxWidth int
	drift    int
}

// NewWhisperLayer creates the layer; maxWidth and drift must match the
// scheduler's measurer and frame
func NewWhisperLayer(source WhisperSource, noise *Noise, maxWidth int, drift float64) *WhisperLayer {
	return &WhisperLayer{source: source, noise: noise, maxWidth: maxWidth, drift: int(math.Max(drift, 0))}
}

// Render draws every visible whisper
func (l *WhisperLayer) Render(ctx Context, buf *Buffer) {
	limit := l.maxWidth
	if limit == 0 || ctx.Width < limit {
		limit = ctx.Width
	}
	for _, w := range l.source.Active() {
		if w.Opacity <= 0 {
			continue
		}
		l.draw(ctx, buf, &w, limit)
	}
}

func (l *WhisperLayer) draw(ctx Context, buf *Buffer, w *whisper.Whisper, limit int) {
	lines := whisper.WrapCells(w.Text, limit)
	top := int(math.Round(w.Position.Y - float64(len(lines))/2))

	drift := 0
	if !w.IsFinal && l.noise != nil && l.drift > 0 {
		d := math.Round(l.noise.Drift(w.Seed, ctx.Elapsed.Seconds()*whisperDriftSpeed) * float64(l.drift))
		drift = max(-l.drift, min(l.drift, int(d)))
	}

	var attrs tcell.AttrMask
	switch w.Kind {
	case whisper.KindFinal:
		attrs = tcell.AttrBold
	case whisper.KindDebug:
		attrs = tcell.AttrItalic
	}

	for i, line := range lines {
		lw := runewidth.StringWidth(line)
		x := int(math.Round(w.Position.X-float64(lw)/2)) + drift
		y := top + i
		for _, r := range line {
			buf.SetText(x, y, r, RgbWhisper, w.Opacity, attrs)
			x += max(1, runewidth.RuneWidth(r))
		}
	}
}

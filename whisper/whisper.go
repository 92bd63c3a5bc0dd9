package whisper

import (
	"time"

	"github.com/lixenwraith/motus/visual"
)

// Kind distinguishes the origin of a whisper
type Kind uint8

const (
	KindScripted Kind = iota
	KindFinal
	KindDebug
)

func (k Kind) String() string {
	switch k {
	case KindFinal:
		return "final"
	case KindDebug:
		return "debug"
	default:
		return "scripted"
	}
}

// Stage is the lifecycle position of a whisper
type Stage uint8

const (
	StagePending Stage = iota
	StageFadingIn
	StageHolding
	StageFadingOut
	StageRemoved
)

func (s Stage) String() string {
	switch s {
	case StageFadingIn:
		return "fading_in"
	case StageHolding:
		return "holding"
	case StageFadingOut:
		return "fading_out"
	case StageRemoved:
		return "removed"
	default:
		return "pending"
	}
}

// Point is a position in viewport units
type Point struct {
	X, Y float64
}

// Bounds is the measured extent of a whisper's text
type Bounds struct {
	Width, Height float64
}

// Whisper is one overlay entry; Position is the centre of its text box
type Whisper struct {
	ID       string
	Text     string
	Kind     Kind
	Slot     string
	Position Point
	Bounds   Bounds

	FadeIn  time.Duration
	Hold    time.Duration
	FadeOut time.Duration
	Elapsed time.Duration

	Opacity    float64
	MaxOpacity float64

	// IsFinal marks the persistent closing whisper; its hold never ends
	IsFinal bool
	// Seed decorrelates renderer drift between whispers
	Seed float64
}

// Total is the full envelope span; meaningless for the final whisper
func (w *Whisper) Total() time.Duration {
	return w.FadeIn + w.Hold + w.FadeOut
}

// OpacityAt evaluates the envelope at elapsed
func (w *Whisper) OpacityAt(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed < w.FadeIn {
		return visual.SmoothStep(float64(elapsed)/float64(w.FadeIn)) * w.MaxOpacity
	}
	if w.IsFinal || elapsed < w.FadeIn+w.Hold {
		return w.MaxOpacity
	}
	fadeOutElapsed := elapsed - w.FadeIn - w.Hold
	if fadeOutElapsed < w.FadeOut {
		return (1 - visual.SmoothStep(float64(fadeOutElapsed)/float64(w.FadeOut))) * w.MaxOpacity
	}
	return 0
}

// StageAt maps elapsed time onto the lifecycle
func (w *Whisper) StageAt(elapsed time.Duration) Stage {
	switch {
	case elapsed < 0:
		return StagePending
	case elapsed < w.FadeIn:
		return StageFadingIn
	case w.IsFinal || elapsed < w.FadeIn+w.Hold:
		return StageHolding
	case elapsed < w.Total():
		return StageFadingOut
	default:
		return StageRemoved
	}
}

// Stage is the current lifecycle position
func (w *Whisper) Stage() Stage {
	return w.StageAt(w.Elapsed)
}

// Rect is the axis-aligned box of the whisper at its position
func (w *Whisper) Rect() Rect {
	return RectFromCenter(w.Position, w.Bounds)
}

package visual

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 0xRRGGBB value
type Color uint32

// RGB unpacks the color into 8-bit channels
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Colorful converts to a go-colorful color for perceptual blending
func (c Color) Colorful() colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// String renders the color as #rrggbb
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// FromColorful packs a go-colorful color, clamping out-of-gamut channels
func FromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or bare hex
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > 0xffffff {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return Color(v), nil
}

// Blend mixes from toward to by t in [0,1] using CIE-Lab interpolation
func Blend(from, to Color, t float64) Color {
	t = Clamp01(t)
	if t == 0 {
		return from
	}
	if t == 1 {
		return to
	}
	return FromColorful(from.Colorful().BlendLab(to.Colorful(), t))
}

// Scale multiplies luminance by k in [0,1], used to fade toward black
func Scale(c Color, k float64) Color {
	return Blend(0x000000, c, k)
}

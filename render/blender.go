package render

// BlendMode selects how a layer composites onto the buffer
type BlendMode uint8

const (
	BlendReplace BlendMode = iota
	BlendAlpha
	BlendMax
	BlendScreen
)

func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch m {
	case BlendAlpha:
		return Blend(dst, src, alpha)
	case BlendMax:
		return Max(dst, src, alpha)
	case BlendScreen:
		return Screen(dst, src, alpha)
	default:
		return src
	}
}

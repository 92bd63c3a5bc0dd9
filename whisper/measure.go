package whisper

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Measurer estimates the on-screen extent of a whisper's text
// ok is false when the text cannot be measured
type Measurer interface {
	Measure(text string, viewportWidth float64) (b Bounds, ok bool)
}

// CellMeasurer measures text in terminal cells, wrapping at MaxWidth
type CellMeasurer struct {
	MaxWidth   int     // cells, 0 disables wrapping
	LineHeight float64 // rows per line
}

// Measure implements Measurer
func (m CellMeasurer) Measure(text string, viewportWidth float64) (Bounds, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Bounds{}, false
	}
	if runewidth.StringWidth(text) == 0 {
		return Bounds{}, false
	}

	limit := m.MaxWidth
	if vw := int(viewportWidth); vw > 0 && (limit == 0 || vw < limit) {
		limit = vw
	}
	lines := WrapCells(text, limit)
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}

	lh := m.LineHeight
	if lh <= 0 {
		lh = 1
	}
	return Bounds{Width: float64(width), Height: float64(len(lines)) * lh}, true
}

// WrapCells splits text into lines no wider than limit cells on word boundaries
// Words longer than limit are hard-broken
func WrapCells(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if limit <= 0 || runewidth.StringWidth(text) <= limit {
		return []string{text}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		for ww > limit {
			if lineWidth > 0 {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
			head := runewidth.Truncate(word, limit, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if ww == 0 {
			continue
		}
		gap := 0
		if lineWidth > 0 {
			gap = 1
		}
		if lineWidth+gap+ww > limit {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth, gap = 0, 0
		}
		if gap == 1 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
		lineWidth += gap + ww
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

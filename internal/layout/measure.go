package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// AverageAdvanceFactor is the default width of a character relative to the
// font size under the fixed measurer.
const AverageAdvanceFactor = 0.6

// Measurer reports the horizontal advance of a piece of text. The layout
// engine is written against this interface so the measurement can be swapped
// for a real shaping engine without touching wrapping or pagination.
type Measurer interface {
	Advance(text string, fontFamily string, fontSize float64) (float64, error)
}

// FixedMeasurer models a fixed-pitch font: every character advances by
// Factor * fontSize.
type FixedMeasurer struct {
	Factor float64
}

// NewFixedMeasurer creates a fixed measurer with the default advance factor.
func NewFixedMeasurer() FixedMeasurer {
	return FixedMeasurer{Factor: AverageAdvanceFactor}
}

// Advance returns the advance of text under a fixed-pitch model.
func (m FixedMeasurer) Advance(text string, _ string, fontSize float64) (float64, error) {
	factor := m.Factor
	if factor <= 0 {
		factor = AverageAdvanceFactor
	}
	count := 0
	for range text {
		count++
	}
	return float64(count) * factor * fontSize, nil
}

// GraphemeMeasurer measures in terminal cells: text is segmented into
// grapheme clusters and each cluster contributes its cell width (wide CJK
// clusters count two cells) times CellWidth.
type GraphemeMeasurer struct {
	CellWidth float64
}

// Advance returns the cell-based advance of text.
func (m GraphemeMeasurer) Advance(text string, _ string, fontSize float64) (float64, error) {
	cell := m.CellWidth
	if cell <= 0 {
		cell = fontSize * AverageAdvanceFactor
	}
	cells := 0
	state := -1
	remaining := text
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		cells += runewidth.StringWidth(cluster)
	}
	return float64(cells) * cell, nil
}

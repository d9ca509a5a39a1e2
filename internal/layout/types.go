package layout

// Position is a point in layout coordinates.
type Position struct {
	X float64
	Y float64
}

// Span is a styled run within a line. Spans partition their line's offset
// range with no gaps or overlaps, in left-to-right, increasing-offset order.
type Span struct {
	StartOffset int
	EndOffset   int
	Text        string
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Style       string
}

// Line is a physical (wrapped) line of laid-out text. Its offset range
// [StartOffset, EndOffset) never includes a newline character.
type Line struct {
	LineNumber  int
	StartOffset int
	EndOffset   int
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Spans       []Span

	// advances[i] is the x offset of character i relative to X;
	// advances[len] is the line width.
	advances []float64
}

// CharCount returns the number of characters on the line.
func (l Line) CharCount() int {
	return l.EndOffset - l.StartOffset
}

// Page is a fixed-height slice of the line list. Pages partition the full
// line list with no gaps or overlaps; StartOffset/EndOffset equal the bounds
// of the first/last contained line.
type Page struct {
	PageNumber  int
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Lines       []Line
	StartOffset int
	EndOffset   int
}

// VisibleRange is a vertical pixel extent used for viewport culling.
type VisibleRange struct {
	Start float64
	End   float64
}

// Contains reports whether y falls inside the range.
func (v VisibleRange) Contains(y float64) bool {
	return y >= v.Start && y <= v.End
}

// Intersects reports whether [top, bottom] overlaps the range.
func (v VisibleRange) Intersects(top, bottom float64) bool {
	return bottom >= v.Start && top <= v.End
}

// StyleRun tags an offset range with a style name. Runs are applied in
// order; later runs win where they overlap.
type StyleRun struct {
	Start int
	End   int
	Style string
}

// DefaultStyle is the style applied where no run matches.
const DefaultStyle = "default"

// RenderConfig constrains layout geometry. Width and Height describe the
// content box a page offers to text.
type RenderConfig struct {
	Width         float64
	Height        float64
	FontSize      float64
	FontFamily    string
	LineHeight    float64 // multiplier over FontSize; <= 0 means 1.0
	LetterSpacing float64
	WordSpacing   float64
}

// LinePitch returns the vertical advance per line.
func (c RenderConfig) LinePitch() float64 {
	mult := c.LineHeight
	if mult <= 0 {
		mult = 1.0
	}
	return c.FontSize * mult
}

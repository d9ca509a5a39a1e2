// Package selection owns the selection range, selection mode, and the
// gesture-driven drag state machine. It consumes layout hit-testing results
// (rune offsets) and is consumed by rendering and by edit dispatch to know
// where edits apply.
package selection

// Range is a normalized selection span in rune offsets. Start <= End always
// holds; Start == End is a caret.
type Range struct {
	Start int
	End   int
}

// NewRange builds a normalized range from any two offsets.
func NewRange(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsEmpty returns true for a caret.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Len returns the selected character count.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset falls inside the selection.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Clamp bounds the range to [0, docLen]. Out-of-range offsets are clamped,
// never faulted.
func (r Range) Clamp(docLen int) Range {
	out := r
	if out.Start < 0 {
		out.Start = 0
	}
	if out.End < 0 {
		out.End = 0
	}
	if out.Start > docLen {
		out.Start = docLen
	}
	if out.End > docLen {
		out.End = docLen
	}
	return out
}

// Mode classifies how a selection was produced.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeCaret
	ModeCharacter
	ModeWord
	ModeLine
	ModeBlock
	ModeAll
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeCaret:
		return "caret"
	case ModeCharacter:
		return "character"
	case ModeWord:
		return "word"
	case ModeLine:
		return "line"
	case ModeBlock:
		return "block"
	case ModeAll:
		return "all"
	default:
		return "none"
	}
}

// ClassifyMode picks the selection mode for a press: Alt forces block
// selection, the line margin forces line selection, otherwise the click
// count decides (double-click selects words, triple-click lines).
func ClassifyMode(onMargin, altPressed bool, clickCount int) Mode {
	if altPressed {
		return ModeBlock
	}
	if onMargin {
		return ModeLine
	}
	switch clickCount {
	case 2:
		return ModeWord
	case 3:
		return ModeLine
	default:
		return ModeCharacter
	}
}

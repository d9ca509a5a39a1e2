package selection

// ScrollDirection hints which way the viewport should auto-scroll while a
// drag runs past its edges.
type ScrollDirection uint8

const (
	ScrollNone ScrollDirection = iota
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
	ScrollUpLeft
	ScrollUpRight
	ScrollDownLeft
	ScrollDownRight
)

// String returns the direction name.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	case ScrollUpLeft:
		return "up-left"
	case ScrollUpRight:
		return "up-right"
	case ScrollDownLeft:
		return "down-left"
	case ScrollDownRight:
		return "down-right"
	default:
		return "none"
	}
}

// ScrollHint classifies a drag position against the viewport rectangle and
// returns the direction the viewport should scroll to follow the drag.
func ScrollHint(x, y, left, top, right, bottom float64) ScrollDirection {
	up := y < top
	down := y > bottom
	l := x < left
	r := x > right

	switch {
	case up && l:
		return ScrollUpLeft
	case up && r:
		return ScrollUpRight
	case down && l:
		return ScrollDownLeft
	case down && r:
		return ScrollDownRight
	case up:
		return ScrollUp
	case down:
		return ScrollDown
	case l:
		return ScrollLeft
	case r:
		return ScrollRight
	default:
		return ScrollNone
	}
}

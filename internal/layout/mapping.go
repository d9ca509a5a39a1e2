package layout

// OffsetToPosition maps a rune offset to layout coordinates. An offset on a
// wrap boundary resolves to the start of the following line so the mapping
// round-trips through PositionToOffset. Returns false only when no layout
// exists yet.
func (e *Engine) OffsetToPosition(offset int) (Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, ok := e.lineForOffsetLocked(offset)
	if !ok {
		return Position{}, false
	}
	idx := offset - line.StartOffset
	if idx < 0 {
		idx = 0
	}
	if idx > line.CharCount() {
		idx = line.CharCount()
	}
	return Position{X: line.X + line.advances[idx], Y: line.Y}, true
}

// PositionToOffset maps layout coordinates to the nearest rune offset.
// Positions above the first line clamp to 0, below the last line to the
// document length; x is clamped to the containing line's bounds.
func (e *Engine) PositionToOffset(pos Position) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.lines) == 0 {
		return 0
	}
	if pos.Y < e.lines[0].Y {
		return 0
	}

	for i, line := range e.lines {
		bottom := line.Y + line.Height
		// Vertical extents are half-open so a y on a line boundary belongs
		// to the lower line; only the last line owns its bottom edge.
		last := i == len(e.lines)-1
		if pos.Y >= bottom && !last {
			continue
		}
		if pos.Y > bottom {
			break
		}
		x := pos.X - line.X
		idx := 0
		for idx < line.CharCount() && line.advances[idx+1] <= x {
			idx++
		}
		if x < 0 {
			idx = 0
		}
		return line.StartOffset + idx
	}

	return e.docLen
}

// LineNumberForOffset returns the physical line containing offset, or -1
// when no layout exists.
func (e *Engine) LineNumberForOffset(offset int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, ok := e.lineForOffsetLocked(offset)
	if !ok {
		return -1
	}
	return line.LineNumber
}

// LineStartOffset returns the first offset of the given physical line.
func (e *Engine) LineStartOffset(lineNumber int) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if lineNumber < 0 || lineNumber >= len(e.lines) {
		return 0, false
	}
	return e.lines[lineNumber].StartOffset, true
}

// LineEndOffset returns the exclusive end offset of the given physical line.
func (e *Engine) LineEndOffset(lineNumber int) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if lineNumber < 0 || lineNumber >= len(e.lines) {
		return 0, false
	}
	return e.lines[lineNumber].EndOffset, true
}

// lineForOffsetLocked scans for the line containing offset, preferring the
// line that starts at offset over the one that ends there. Out-of-range
// offsets clamp to the first or last line.
func (e *Engine) lineForOffsetLocked(offset int) (Line, bool) {
	if len(e.lines) == 0 {
		return Line{}, false
	}
	if offset < 0 {
		return e.lines[0], true
	}

	var fallback *Line
	for i := range e.lines {
		line := &e.lines[i]
		if offset >= line.StartOffset && offset < line.EndOffset {
			return *line, true
		}
		if offset == line.EndOffset && fallback == nil {
			fallback = line
		}
		// Offsets that land on a consumed newline belong to the line that
		// precedes the separator.
		if offset < line.StartOffset {
			if fallback != nil {
				return *fallback, true
			}
			return e.lines[i-1], true
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return e.lines[len(e.lines)-1], true
}

// VisibleLines returns the lines whose vertical extent intersects
// [top-cacheExtent, bottom+cacheExtent], bounding rendering work
// independently of document length.
func (e *Engine) VisibleLines(top, bottom, cacheExtent float64) []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	window := VisibleRange{Start: top - cacheExtent, End: bottom + cacheExtent}
	var out []Line
	for _, line := range e.lines {
		if window.Intersects(line.Y, line.Y+line.Height) {
			out = append(out, line)
		}
	}
	return out
}

// VisiblePages returns the pages whose vertical extent intersects
// [top-cacheExtent, bottom+cacheExtent].
func (e *Engine) VisiblePages(top, bottom, cacheExtent float64) []Page {
	e.mu.Lock()
	defer e.mu.Unlock()

	window := VisibleRange{Start: top - cacheExtent, End: bottom + cacheExtent}
	var out []Page
	for _, page := range e.pages {
		if window.Intersects(page.Y, page.Y+page.Height) {
			out = append(out, page)
		}
	}
	return out
}

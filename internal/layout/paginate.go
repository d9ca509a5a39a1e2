package layout

// paginate walks physical lines accumulating y and closes the current page
// when the next line would exceed the page height, provided the page already
// holds at least one line. Lines are re-stamped with page-relative y; the
// last page is closed unconditionally.
func paginate(lines []Line, cfg RenderConfig) []Page {
	pages := make([]Page, 0, 4)

	var (
		current []Line
		curY    float64
	)

	closePage := func() {
		if len(current) == 0 {
			return
		}
		page := Page{
			PageNumber:  len(pages),
			X:           0,
			Y:           float64(len(pages)) * cfg.Height,
			Width:       cfg.Width,
			Height:      cfg.Height,
			Lines:       current,
			StartOffset: current[0].StartOffset,
			EndOffset:   current[len(current)-1].EndOffset,
		}
		pages = append(pages, page)
		current = nil
		curY = 0
	}

	for _, line := range lines {
		if curY+line.Height > cfg.Height && len(current) > 0 {
			closePage()
		}
		stamped := line
		stamped.Y = curY
		stamped.Spans = restampSpans(line.Spans, curY)
		current = append(current, stamped)
		curY += line.Height
	}
	closePage()

	return pages
}

func restampSpans(spans []Span, y float64) []Span {
	if len(spans) == 0 {
		return nil
	}
	out := make([]Span, len(spans))
	copy(out, spans)
	for i := range out {
		out[i].Y = y
	}
	return out
}

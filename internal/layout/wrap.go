package layout

import (
	"sort"
	"strings"
)

// wrapContent splits text on explicit newlines and greedily packs each
// logical line into physical lines no wider than cfg.Width. Every physical
// line gets a monotonically increasing line number and an offset range
// covering its exact character span; the newline between logical lines is
// consumed by advancing the global offset by one.
func wrapContent(text string, cfg RenderConfig, m Measurer, runs []StyleRun) ([]Line, error) {
	pitch := cfg.LinePitch()
	lines := make([]Line, 0, 16)

	offset := 0
	lineNumber := 0
	y := 0.0

	logical := strings.Split(text, "\n")
	for li, paragraph := range logical {
		runes := []rune(paragraph)

		segStart := 0
		segAdvances := []float64{0}
		width := 0.0

		flush := func(endIdx int) {
			line := Line{
				LineNumber:  lineNumber,
				StartOffset: offset + segStart,
				EndOffset:   offset + endIdx,
				X:           0,
				Y:           y,
				Width:       width,
				Height:      pitch,
				advances:    segAdvances,
			}
			line.Spans = buildSpans(line, runes[segStart:endIdx], runs)
			lines = append(lines, line)

			lineNumber++
			y += pitch
			segStart = endIdx
			segAdvances = []float64{0}
			width = 0.0
		}

		for i, r := range runes {
			adv, err := m.Advance(string(r), cfg.FontFamily, cfg.FontSize)
			if err != nil {
				return nil, err
			}
			adv += cfg.LetterSpacing
			if r == ' ' {
				adv += cfg.WordSpacing
			}

			// Wrap before this character if it would overflow and the
			// physical line already holds at least one character.
			if width+adv > cfg.Width && i > segStart {
				flush(i)
			}
			width += adv
			segAdvances = append(segAdvances, width)
		}
		flush(len(runes))

		// Account for the newline separating logical lines.
		offset += len(runes)
		if li < len(logical)-1 {
			offset++
		}
	}

	return lines, nil
}

// buildSpans partitions a line's offset range into styled spans. Boundaries
// come from the style runs intersecting the line; gaps carry DefaultStyle.
// The spans cover [line.StartOffset, line.EndOffset) with no gaps or
// overlaps, left to right.
func buildSpans(line Line, runes []rune, runs []StyleRun) []Span {
	if line.CharCount() == 0 {
		return nil
	}

	cuts := []int{line.StartOffset, line.EndOffset}
	for _, run := range runs {
		if run.Start > line.StartOffset && run.Start < line.EndOffset {
			cuts = append(cuts, run.Start)
		}
		if run.End > line.StartOffset && run.End < line.EndOffset {
			cuts = append(cuts, run.End)
		}
	}
	sort.Ints(cuts)
	cuts = dedupeInts(cuts)

	spans := make([]Span, 0, len(cuts)-1)
	for i := 0; i < len(cuts)-1; i++ {
		start, end := cuts[i], cuts[i+1]
		si := start - line.StartOffset
		ei := end - line.StartOffset
		spans = append(spans, Span{
			StartOffset: start,
			EndOffset:   end,
			Text:        string(runes[si:ei]),
			X:           line.X + line.advances[si],
			Y:           line.Y,
			Width:       line.advances[ei] - line.advances[si],
			Height:      line.Height,
			Style:       styleAt(runs, start),
		})
	}
	return spans
}

// styleAt returns the style of the last run covering offset, or DefaultStyle.
func styleAt(runs []StyleRun, offset int) string {
	style := DefaultStyle
	for _, run := range runs {
		if offset >= run.Start && offset < run.End {
			style = run.Style
		}
	}
	return style
}

func dedupeInts(xs []int) []int {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}

package selection

// wordSeparators is the separator set used by separator-based word range
// detection.
const wordSeparators = " \t\n\r.,!?;:\"'()[]{}<>/\\|@#$%^&*-_+=`~"

// isWordRune reports whether r is part of a word under the ASCII
// alnum-or-underscore rule.
//
// Limitation: this is ASCII-only classification, not a Unicode word-boundary
// algorithm. Non-ASCII letters are treated as separators.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}

// WordRangeAt expands outward from offset over non-separator characters and
// returns the covered range. Returns ok=false when offset sits on a
// separator or outside the text.
func WordRangeAt(text string, offset int) (Range, bool) {
	runes := []rune(text)
	if offset < 0 || offset >= len(runes) {
		return Range{}, false
	}
	if isSeparator(runes[offset]) {
		return Range{}, false
	}

	start := offset
	for start > 0 && !isSeparator(runes[start-1]) {
		start--
	}
	end := offset
	for end < len(runes) && !isSeparator(runes[end]) {
		end++
	}
	return Range{Start: start, End: end}, true
}

func isSeparator(r rune) bool {
	for _, s := range wordSeparators {
		if r == s {
			return true
		}
	}
	return false
}

package selection

import "testing"

func TestWordRangeAt(t *testing.T) {
	text := "foo bar.baz qux"
	cases := []struct {
		offset     int
		start, end int
		ok         bool
	}{
		{0, 0, 3, true},   // inside "foo"
		{5, 4, 7, true},   // inside "bar"
		{8, 8, 11, true},  // inside "baz"
		{3, 0, 0, false},  // on the space
		{7, 0, 0, false},  // on the dot
		{-1, 0, 0, false}, // out of range
		{99, 0, 0, false}, // out of range
	}
	for _, c := range cases {
		r, ok := WordRangeAt(text, c.offset)
		if ok != c.ok {
			t.Errorf("WordRangeAt(%d) ok = %v, want %v", c.offset, ok, c.ok)
			continue
		}
		if ok && (r.Start != c.start || r.End != c.end) {
			t.Errorf("WordRangeAt(%d) = {%d,%d}, want {%d,%d}", c.offset, r.Start, r.End, c.start, c.end)
		}
	}
}

func TestIsWordRuneASCIIOnly(t *testing.T) {
	for _, r := range "azAZ09_" {
		if !isWordRune(r) {
			t.Errorf("expected %q to be a word rune", r)
		}
	}
	// Documented limitation: non-ASCII letters are not word runes.
	for _, r := range " .é日-" {
		if isWordRune(r) {
			t.Errorf("expected %q to be a separator", r)
		}
	}
}

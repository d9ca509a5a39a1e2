package selection

import "testing"

func TestNewRangeNormalizes(t *testing.T) {
	cases := []struct {
		a, b       int
		start, end int
	}{
		{5, 10, 5, 10},
		{10, 5, 5, 10},
		{3, 3, 3, 3},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		r := NewRange(c.a, c.b)
		if r.Start != c.start || r.End != c.end {
			t.Errorf("NewRange(%d,%d) = {%d,%d}, want {%d,%d}", c.a, c.b, r.Start, r.End, c.start, c.end)
		}
		if r.Start > r.End {
			t.Errorf("NewRange(%d,%d) violates Start <= End", c.a, c.b)
		}
	}
}

func TestRangeIsEmpty(t *testing.T) {
	if !(Range{Start: 3, End: 3}).IsEmpty() {
		t.Error("caret range should be empty")
	}
	if (Range{Start: 3, End: 4}).IsEmpty() {
		t.Error("non-empty range reported empty")
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Start: -5, End: 100}.Clamp(10)
	if r.Start != 0 || r.End != 10 {
		t.Errorf("clamped = {%d,%d}, want {0,10}", r.Start, r.End)
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 2, End: 5}
	for offset, want := range map[int]bool{1: false, 2: true, 4: true, 5: false} {
		if got := r.Contains(offset); got != want {
			t.Errorf("Contains(%d) = %v, want %v", offset, got, want)
		}
	}
}

func TestClassifyMode(t *testing.T) {
	cases := []struct {
		onMargin, alt bool
		clicks        int
		want          Mode
	}{
		{false, false, 1, ModeCharacter},
		{false, false, 2, ModeWord},
		{false, false, 3, ModeLine},
		{true, false, 1, ModeLine},
		{false, true, 1, ModeBlock},
		{true, true, 2, ModeBlock},
	}
	for _, c := range cases {
		if got := ClassifyMode(c.onMargin, c.alt, c.clicks); got != c.want {
			t.Errorf("ClassifyMode(%v,%v,%d) = %v, want %v", c.onMargin, c.alt, c.clicks, got, c.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeWord.String() != "word" || ModeAll.String() != "all" {
		t.Error("unexpected mode names")
	}
}

func TestInvariantHoldsAfterEveryMutator(t *testing.T) {
	// Adversarial orderings of anchor/active must never produce Start > End.
	e := NewEngine(100)
	check := func(step string) {
		if r, ok := e.Selection(); ok && r.Start > r.End {
			t.Errorf("%s: invariant violated: {%d,%d}", step, r.Start, r.End)
		}
	}

	e.SetSelection(90, 10)
	check("SetSelection reversed")
	e.SetSelection(-50, 200)
	check("SetSelection out of bounds")
	e.CollapseTo(150)
	check("CollapseTo out of bounds")
	e.StartDrag(80, false)
	check("StartDrag")
	e.UpdateDrag(5)
	check("UpdateDrag backward")
	e.UpdateDrag(95)
	check("UpdateDrag forward")
	e.EndDrag()
	check("EndDrag")
	e.SelectAll()
	check("SelectAll")
}

func TestSetSelectionModeInference(t *testing.T) {
	e := NewEngine(50)

	e.SetSelection(5, 5)
	if e.Mode() != ModeCaret {
		t.Errorf("mode = %v, want caret", e.Mode())
	}

	e.SetSelection(5, 9)
	if e.Mode() != ModeCharacter {
		t.Errorf("mode = %v, want character", e.Mode())
	}

	e.SetSelection(5, 9, ModeWord)
	if e.Mode() != ModeWord {
		t.Errorf("explicit mode must win, got %v", e.Mode())
	}
}

func TestCollapseToClearsRange(t *testing.T) {
	e := NewEngine(50)
	e.SetSelection(5, 20)
	e.CollapseTo(7)

	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected a caret range")
	}
	if !r.IsEmpty() || r.Start != 7 {
		t.Errorf("caret = {%d,%d}, want {7,7}", r.Start, r.End)
	}
	if e.HasSelection() {
		t.Error("caret must not count as a selection")
	}
	if e.Mode() != ModeCaret {
		t.Errorf("mode = %v, want caret", e.Mode())
	}
}

func TestSelectWordExpandsBothDirections(t *testing.T) {
	e := NewEngine(len("hello big_world again"))
	text := "hello big_world again"

	e.SelectWord(8, text) // inside "big_world"
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected a selection")
	}
	if r.Start != 6 || r.End != 15 {
		t.Errorf("word range = {%d,%d}, want {6,15}", r.Start, r.End)
	}
	if e.Mode() != ModeWord {
		t.Errorf("mode = %v, want word", e.Mode())
	}
}

func TestSelectWordOnSeparatorPlacesCaret(t *testing.T) {
	e := NewEngine(len("a b"))
	e.SelectWord(1, "a b")
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected a caret")
	}
	if !r.IsEmpty() || r.Start != 1 {
		t.Errorf("caret = {%d,%d}, want {1,1}", r.Start, r.End)
	}
}

func TestSelectAll(t *testing.T) {
	e := NewEngine(42)
	e.SelectAll()
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected a selection")
	}
	if r.Start != 0 || r.End != 42 {
		t.Errorf("range = {%d,%d}, want {0,42}", r.Start, r.End)
	}
	if e.Mode() != ModeAll {
		t.Errorf("mode = %v, want all", e.Mode())
	}
}

func TestSetDocumentLengthReclamps(t *testing.T) {
	e := NewEngine(100)
	e.SetSelection(50, 90)
	e.SetDocumentLength(60)
	r, _ := e.Selection()
	if r.End != 60 {
		t.Errorf("end = %d, want reclamped 60", r.End)
	}
}

func TestChangeHandlerSeesLatestState(t *testing.T) {
	e := NewEngine(100)
	var lastRange *Range
	var lastMode Mode
	e.SetChangeHandler(func(r *Range, mode Mode) {
		lastRange = r
		lastMode = mode
	})

	e.SetSelection(3, 9)
	if lastRange == nil || lastRange.Start != 3 || lastRange.End != 9 {
		t.Errorf("handler saw %v, want {3,9}", lastRange)
	}
	if lastMode != ModeCharacter {
		t.Errorf("handler mode = %v, want character", lastMode)
	}

	e.Clear()
	if lastRange != nil {
		t.Errorf("handler should see nil after Clear, got %v", lastRange)
	}
	if lastMode != ModeNone {
		t.Errorf("handler mode = %v, want none", lastMode)
	}
}

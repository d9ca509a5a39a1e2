package selection

import "testing"

func TestDragProducesCharacterSelection(t *testing.T) {
	e := NewEngine(100)

	e.StartDrag(5, false)
	if e.Phase() != PhaseSelecting {
		t.Fatalf("phase = %v, want selecting", e.Phase())
	}

	e.UpdateDrag(10)
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected a selection")
	}
	if r.Start != 5 || r.End != 10 {
		t.Errorf("range = {%d,%d}, want {5,10}", r.Start, r.End)
	}
	if e.Mode() != ModeCharacter {
		t.Errorf("mode = %v, want character", e.Mode())
	}
}

func TestCancelDragDiscardsSelection(t *testing.T) {
	e := NewEngine(100)

	e.StartDrag(5, false)
	e.UpdateDrag(10)
	e.CancelDrag()

	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", e.Phase())
	}
	if _, ok := e.Selection(); ok {
		t.Error("canceled drag must leave no selection")
	}
	if e.HasSelection() {
		t.Error("canceled drag must leave no selection")
	}
}

func TestEndDragCommitsSelection(t *testing.T) {
	e := NewEngine(100)

	e.StartDrag(5, false)
	e.UpdateDrag(10)
	e.EndDrag()

	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", e.Phase())
	}
	r, ok := e.Selection()
	if !ok || r.Start != 5 || r.End != 10 {
		t.Errorf("committed range = %v %v, want {5,10}", r, ok)
	}
}

func TestDragBackwardNormalizes(t *testing.T) {
	e := NewEngine(100)

	e.StartDrag(10, false)
	e.UpdateDrag(5)
	r, _ := e.Selection()
	if r.Start != 5 || r.End != 10 {
		t.Errorf("range = {%d,%d}, want {5,10}", r.Start, r.End)
	}
}

func TestDragSingleCharIsCaretMode(t *testing.T) {
	e := NewEngine(100)

	e.StartDrag(5, false)
	e.UpdateDrag(6)
	if e.Mode() != ModeCaret {
		t.Errorf("span of length 1 classifies as caret, got %v", e.Mode())
	}
	e.UpdateDrag(7)
	if e.Mode() != ModeCharacter {
		t.Errorf("span of length 2 classifies as character, got %v", e.Mode())
	}
}

func TestExtendKeepsAnchor(t *testing.T) {
	e := NewEngine(100)
	e.SetSelection(10, 20)

	e.StartDrag(40, true)
	if e.Phase() != PhaseExtending {
		t.Fatalf("phase = %v, want extending", e.Phase())
	}
	r, _ := e.Selection()
	if r.Start != 10 || r.End != 40 {
		t.Errorf("range = {%d,%d}, want {10,40}", r.Start, r.End)
	}

	e.UpdateDrag(5)
	r, _ = e.Selection()
	if r.Start != 5 || r.End != 10 {
		t.Errorf("range = {%d,%d}, want anchor 10 preserved: {5,10}", r.Start, r.End)
	}
}

func TestExtendWithoutPriorSelectionStartsFresh(t *testing.T) {
	e := NewEngine(100)

	e.StartDrag(40, true)
	if e.Phase() != PhaseSelecting {
		t.Errorf("phase = %v, want selecting when no prior selection exists", e.Phase())
	}
}

func TestStartDragClearsPriorSelection(t *testing.T) {
	e := NewEngine(100)
	e.SetSelection(10, 20)

	e.StartDrag(40, false)
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected a caret at drag origin")
	}
	if r.Start != 40 || r.End != 40 {
		t.Errorf("fresh drag anchor = {%d,%d}, want {40,40}", r.Start, r.End)
	}
}

func TestUpdateDragIgnoredWhenIdle(t *testing.T) {
	e := NewEngine(100)
	e.UpdateDrag(10)
	if _, ok := e.Selection(); ok {
		t.Error("updateDrag outside a drag must not create a selection")
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", e.Phase())
	}
}

func TestMachineNeverDragsWithoutStart(t *testing.T) {
	e := NewEngine(100)

	e.PressAt(5)
	if e.Phase() != PhasePreparing {
		t.Fatalf("phase = %v, want preparing", e.Phase())
	}
	e.UpdateDrag(10)
	if e.Phase() == PhaseSelecting || e.Phase() == PhaseExtending {
		t.Error("machine reached a drag phase without StartDrag")
	}

	e.CancelDrag()
	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", e.Phase())
	}
}

func TestDragOffsetsClamped(t *testing.T) {
	e := NewEngine(10)

	e.StartDrag(-5, false)
	e.UpdateDrag(50)
	r, _ := e.Selection()
	if r.Start != 0 || r.End != 10 {
		t.Errorf("range = {%d,%d}, want clamped {0,10}", r.Start, r.End)
	}
}

func TestScrollHint(t *testing.T) {
	// Viewport is [10,10]..[90,90].
	cases := []struct {
		x, y float64
		want ScrollDirection
	}{
		{50, 50, ScrollNone},
		{50, 5, ScrollUp},
		{50, 95, ScrollDown},
		{5, 50, ScrollLeft},
		{95, 50, ScrollRight},
		{5, 5, ScrollUpLeft},
		{95, 5, ScrollUpRight},
		{5, 95, ScrollDownLeft},
		{95, 95, ScrollDownRight},
	}
	for _, c := range cases {
		if got := ScrollHint(c.x, c.y, 10, 10, 90, 90); got != c.want {
			t.Errorf("ScrollHint(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

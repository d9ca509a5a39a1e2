package selection

import "sync"

// Phase is a state of the gesture-driven drag selection machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	// PhasePreparing is entered by a press that has not yet crossed the drag
	// threshold.
	PhasePreparing
	PhaseSelecting
	PhaseExtending
	PhaseCanceling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreparing:
		return "preparing"
	case PhaseSelecting:
		return "selecting"
	case PhaseExtending:
		return "extending"
	case PhaseCanceling:
		return "canceling"
	default:
		return "idle"
	}
}

// ChangeHandler observes selection mutations. A nil range means no
// selection.
type ChangeHandler func(r *Range, mode Mode)

// Engine owns the selection range and mode for one document and runs the
// drag state machine. Offsets passed in are clamped to the document bounds,
// never faulted.
type Engine struct {
	mu sync.Mutex

	docLen int
	anchor int
	active int
	rng    *Range
	mode   Mode
	phase  Phase

	onChange ChangeHandler
}

// NewEngine creates a selection engine for a document of the given length.
func NewEngine(docLen int) *Engine {
	return &Engine{docLen: docLen, mode: ModeNone, phase: PhaseIdle}
}

// SetChangeHandler registers the mutation observer.
func (e *Engine) SetChangeHandler(h ChangeHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = h
}

// SetDocumentLength updates the clamp bound and re-clamps any selection.
func (e *Engine) SetDocumentLength(docLen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if docLen < 0 {
		docLen = 0
	}
	e.docLen = docLen
	e.anchor = e.clamp(e.anchor)
	e.active = e.clamp(e.active)
	if e.rng != nil {
		clamped := e.rng.Clamp(docLen)
		e.rng = &clamped
	}
}

// Selection returns the current range, or ok=false when nothing is selected
// and no caret is placed.
func (e *Engine) Selection() (Range, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng == nil {
		return Range{}, false
	}
	return *e.rng, true
}

// HasSelection returns true for a non-empty selection.
func (e *Engine) HasSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng != nil && !e.rng.IsEmpty()
}

// Mode returns the current selection mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Phase returns the current drag phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// PressAt records a press that may become a drag. The machine enters
// preparing; StartDrag moves it on once the drag threshold is crossed.
func (e *Engine) PressAt(offset int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseIdle {
		return
	}
	e.phase = PhasePreparing
	e.anchor = e.clamp(offset)
	e.active = e.anchor
}

// StartDrag begins a drag at offset. With extend set and a prior selection
// present the existing anchor is kept and only the active end moves
// (extending); otherwise a fresh anchor is placed and any prior selection is
// cleared (selecting).
func (e *Engine) StartDrag(offset int, extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	offset = e.clamp(offset)

	if extend && e.rng != nil && !e.rng.IsEmpty() {
		// Keep the existing anchor, move the active end.
		if e.active == e.rng.Start {
			e.anchor = e.rng.End
		} else {
			e.anchor = e.rng.Start
		}
		e.active = offset
		e.phase = PhaseExtending
	} else {
		e.anchor = offset
		e.active = offset
		e.rng = nil
		e.mode = ModeNone
		e.phase = PhaseSelecting
	}
	e.applyDragLocked()
}

// UpdateDrag moves the active end. Valid only while dragging; calls in any
// other phase are ignored.
func (e *Engine) UpdateDrag(offset int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseSelecting && e.phase != PhaseExtending {
		return
	}
	e.active = e.clamp(offset)
	e.applyDragLocked()
}

// EndDrag commits the in-progress selection and returns to idle.
func (e *Engine) EndDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseIdle {
		return
	}
	e.phase = PhaseIdle
	e.notifyLocked()
}

// CancelDrag discards the in-progress selection entirely and returns to
// idle. Unlike EndDrag, nothing is committed.
func (e *Engine) CancelDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseIdle {
		return
	}
	e.phase = PhaseCanceling
	e.rng = nil
	e.mode = ModeNone
	e.anchor = 0
	e.active = 0
	e.phase = PhaseIdle
	e.notifyLocked()
}

// applyDragLocked normalizes anchor/active into the range and reclassifies
// the mode: character when the span covers more than one character, caret
// otherwise.
func (e *Engine) applyDragLocked() {
	r := NewRange(e.anchor, e.active)
	e.rng = &r
	if r.Len() > 1 {
		e.mode = ModeCharacter
	} else {
		e.mode = ModeCaret
	}
	e.notifyLocked()
}

// SetSelection places a selection from anchor/active. An explicit mode wins;
// otherwise caret is inferred when the ends coincide, character when not.
func (e *Engine) SetSelection(anchor, active int, mode ...Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.anchor = e.clamp(anchor)
	e.active = e.clamp(active)
	r := NewRange(e.anchor, e.active)
	e.rng = &r

	switch {
	case len(mode) > 0 && mode[0] != ModeNone:
		e.mode = mode[0]
	case r.IsEmpty():
		e.mode = ModeCaret
	default:
		e.mode = ModeCharacter
	}
	e.notifyLocked()
}

// CollapseTo places a caret at offset, clearing any range.
func (e *Engine) CollapseTo(offset int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	offset = e.clamp(offset)
	e.anchor = offset
	e.active = offset
	r := Range{Start: offset, End: offset}
	e.rng = &r
	e.mode = ModeCaret
	e.notifyLocked()
}

// Caret returns the caret position: the active end of the selection.
func (e *Engine) Caret() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// SelectWord expands outward from offset while the rune class is
// alphanumeric-or-underscore in both directions, producing a word-mode
// range. Classification is ASCII-only; see the package limitation note in
// word.go.
func (e *Engine) SelectWord(offset int, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runes := []rune(text)
	offset = e.clamp(offset)
	if offset >= len(runes) || !isWordRune(runes[offset]) {
		// Nothing to expand; place a caret.
		e.anchor = offset
		e.active = offset
		r := Range{Start: offset, End: offset}
		e.rng = &r
		e.mode = ModeCaret
		e.notifyLocked()
		return
	}

	start := offset
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := offset
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}

	e.anchor = start
	e.active = end
	r := Range{Start: start, End: end}
	e.rng = &r
	e.mode = ModeWord
	e.notifyLocked()
}

// SelectAll spans the whole document with mode all.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.anchor = 0
	e.active = e.docLen
	r := Range{Start: 0, End: e.docLen}
	e.rng = &r
	e.mode = ModeAll
	e.notifyLocked()
}

// Clear removes selection and caret.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rng = nil
	e.mode = ModeNone
	e.notifyLocked()
}

func (e *Engine) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > e.docLen {
		return e.docLen
	}
	return offset
}

func (e *Engine) notifyLocked() {
	if e.onChange == nil {
		return
	}
	var r *Range
	if e.rng != nil {
		cp := *e.rng
		r = &cp
	}
	handler := e.onChange
	mode := e.mode
	e.mu.Unlock()
	handler(r, mode)
	e.mu.Lock()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/vellum-editor/vellum/internal/config"
	"github.com/vellum-editor/vellum/internal/document"
	"github.com/vellum-editor/vellum/internal/engine"
	"github.com/vellum-editor/vellum/internal/layout"
	"github.com/vellum-editor/vellum/internal/selection"
)

// errQuit signals a normal user-requested exit.
var errQuit = errors.New("quit")

// doubleClickWindow is the longest gap between presses counted as one
// multi-click gesture.
const doubleClickWindow = 400 * time.Millisecond

// viewer renders one document to a terminal and translates terminal input
// into controller calls.
type viewer struct {
	screen tcell.Screen
	ctrl   *document.Controller
	log    *document.Logger
	path   string

	mu        sync.Mutex
	scrollTop int
	shutdown  bool

	// Pointer gesture state.
	pressed    bool
	dragging   bool
	lastClick  time.Time
	lastClickX int
	lastClickY int
	clickCount int
}

func newViewer(eng *engine.Engine, cfg config.Config, log *document.Logger, path string) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	v := &viewer{
		screen: screen,
		log:    log,
		path:   path,
	}

	ctrl, err := document.NewController(context.Background(), eng, cfg,
		document.WithLogger(log),
		document.WithMeasurer(layout.GraphemeMeasurer{CellWidth: 1}),
		document.WithBlinkHandler(func(bool) {
			// Wake the event loop so the caret repaints.
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}),
	)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	v.ctrl = ctrl

	v.applyTerminalGeometry()
	return v, nil
}

// applyTerminalGeometry sizes the layout to the terminal: one cell per
// column, one row per line, with the bottom row reserved for status.
func (v *viewer) applyTerminalGeometry() {
	w, h := v.screen.Size()
	if w < 1 {
		w = 1
	}
	textRows := h - 1
	if textRows < 1 {
		textRows = 1
	}
	v.ctrl.Layout().SetRenderConfig(layout.RenderConfig{
		Width:    float64(w),
		Height:   float64(textRows),
		FontSize: 1,
	})
}

// Run drives the event loop until quit or shutdown.
func (v *viewer) Run() error {
	for {
		v.render()

		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.applyTerminalGeometry()
			v.screen.Sync()

		case *tcell.EventInterrupt:
			// Redraw only.

		case *tcell.EventKey:
			if err := v.handleKey(ev); err != nil {
				return err
			}

		case *tcell.EventMouse:
			v.handleMouse(ev)
		}
	}
}

// Shutdown flushes pending edits and restores the terminal. Safe to call
// more than once and from signal handlers.
func (v *viewer) Shutdown() {
	v.mu.Lock()
	if v.shutdown {
		v.mu.Unlock()
		return
	}
	v.shutdown = true
	v.mu.Unlock()

	_ = v.ctrl.Close(context.Background())
	v.screen.Fini()
}

func (v *viewer) handleKey(ev *tcell.EventKey) error {
	ctx := context.Background()

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return errQuit

	case tcell.KeyCtrlZ:
		if err := v.ctrl.Undo(ctx); err != nil && !errors.Is(err, engine.ErrNothingToUndo) {
			v.log.Error("undo failed: %v", err)
		}

	case tcell.KeyCtrlY:
		if err := v.ctrl.Redo(ctx); err != nil && !errors.Is(err, engine.ErrNothingToRedo) {
			v.log.Error("redo failed: %v", err)
		}

	case tcell.KeyCtrlA:
		v.ctrl.Selection().SelectAll()

	case tcell.KeyEscape:
		v.ctrl.Selection().CancelDrag()
		v.ctrl.Selection().CollapseTo(v.ctrl.Selection().Caret())

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.editErr(v.ctrl.DeleteBackward())

	case tcell.KeyEnter:
		v.editErr(v.ctrl.InsertAtCaret("\n"))

	case tcell.KeyLeft:
		v.ctrl.Selection().CollapseTo(v.ctrl.Selection().Caret() - 1)

	case tcell.KeyRight:
		v.ctrl.Selection().CollapseTo(v.ctrl.Selection().Caret() + 1)

	case tcell.KeyUp:
		v.moveCaretVertically(-1)

	case tcell.KeyDown:
		v.moveCaretVertically(1)

	case tcell.KeyPgUp:
		v.scrollBy(-v.textRows())

	case tcell.KeyPgDn:
		v.scrollBy(v.textRows())

	case tcell.KeyRune:
		v.editErr(v.ctrl.InsertAtCaret(string(ev.Rune())))
	}

	v.followCaret()
	return nil
}

func (v *viewer) editErr(err error) {
	if err != nil {
		v.log.Error("edit rejected: %v", err)
	}
}

// moveCaretVertically moves the caret one visual line up or down, keeping its
// horizontal position.
func (v *viewer) moveCaretVertically(delta int) {
	caret := v.ctrl.Selection().Caret()
	pos, ok := v.ctrl.Layout().OffsetToPosition(caret)
	if !ok {
		return
	}
	target := layout.Position{X: pos.X, Y: pos.Y + float64(delta)}
	v.ctrl.Selection().CollapseTo(v.ctrl.Layout().PositionToOffset(target))
}

func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		v.scrollBy(-3)
		return
	case buttons&tcell.WheelDown != 0:
		v.scrollBy(3)
		return
	}

	offset := v.cellToOffset(x, y)
	sel := v.ctrl.Selection()

	switch {
	case buttons&tcell.Button1 != 0 && !v.pressed:
		v.pressed = true
		v.dragging = false
		v.trackClick(x, y)

		if v.clickCount >= 2 {
			sel.SelectWord(offset, v.ctrl.Text())
			return
		}
		sel.PressAt(offset)

	case buttons&tcell.Button1 != 0 && v.pressed:
		if !v.dragging {
			v.dragging = true
			extend := ev.Modifiers()&tcell.ModShift != 0
			sel.StartDrag(offset, extend)
		} else {
			sel.UpdateDrag(offset)
		}
		v.autoScrollForDrag(x, y)

	case buttons == tcell.ButtonNone && v.pressed:
		v.pressed = false
		if v.dragging {
			v.dragging = false
			sel.EndDrag()
		} else if v.clickCount < 2 {
			sel.CollapseTo(offset)
			sel.EndDrag()
		}
		v.followCaret()
	}
}

// trackClick counts rapid same-cell presses for multi-click gestures.
func (v *viewer) trackClick(x, y int) {
	now := time.Now()
	if now.Sub(v.lastClick) <= doubleClickWindow && x == v.lastClickX && y == v.lastClickY {
		v.clickCount++
	} else {
		v.clickCount = 1
	}
	v.lastClick = now
	v.lastClickX = x
	v.lastClickY = y
}

// autoScrollForDrag scrolls when a drag leaves the text area.
func (v *viewer) autoScrollForDrag(x, y int) {
	w, _ := v.screen.Size()
	dir := selection.ScrollHint(float64(x), float64(y),
		0, 0, float64(w-1), float64(v.textRows()-1))

	switch dir {
	case selection.ScrollUp, selection.ScrollUpLeft, selection.ScrollUpRight:
		v.scrollBy(-1)
	case selection.ScrollDown, selection.ScrollDownLeft, selection.ScrollDownRight:
		v.scrollBy(1)
	}
}

func (v *viewer) textRows() int {
	_, h := v.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}

func (v *viewer) scrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	maxTop := len(v.ctrl.Layout().Lines()) - v.textRows()
	if maxTop < 0 {
		maxTop = 0
	}
	v.scrollTop += delta
	if v.scrollTop < 0 {
		v.scrollTop = 0
	}
	if v.scrollTop > maxTop {
		v.scrollTop = maxTop
	}
}

// followCaret scrolls the minimum distance needed to keep the caret on
// screen.
func (v *viewer) followCaret() {
	pos, ok := v.ctrl.Layout().OffsetToPosition(v.ctrl.Selection().Caret())
	if !ok {
		return
	}
	row := int(pos.Y)

	v.mu.Lock()
	defer v.mu.Unlock()
	if row < v.scrollTop {
		v.scrollTop = row
	}
	if row >= v.scrollTop+v.textRows() {
		v.scrollTop = row - v.textRows() + 1
	}
}

// cellToOffset maps a screen cell to a document offset.
func (v *viewer) cellToOffset(x, y int) int {
	v.mu.Lock()
	top := v.scrollTop
	v.mu.Unlock()

	return v.ctrl.Layout().PositionToOffset(layout.Position{
		X: float64(x),
		Y: float64(y + top),
	})
}

func (v *viewer) render() {
	v.mu.Lock()
	top := v.scrollTop
	v.mu.Unlock()

	v.screen.Clear()

	textRows := v.textRows()
	lines := v.ctrl.Layout().VisibleLines(float64(top), float64(top+textRows-1), 0)

	var selStart, selEnd int
	if rng, ok := v.ctrl.Selection().Selection(); ok && !rng.IsEmpty() {
		selStart, selEnd = rng.Start, rng.End
	}

	base := tcell.StyleDefault
	highlight := base.Reverse(true)

	for _, line := range lines {
		row := int(line.Y) - top
		if row < 0 || row >= textRows {
			continue
		}
		for _, span := range line.Spans {
			col := int(span.X)
			offset := span.StartOffset
			for _, r := range span.Text {
				style := base
				if offset >= selStart && offset < selEnd {
					style = highlight
				}
				v.screen.SetContent(col, row, r, nil, style)
				col += runewidth.RuneWidth(r)
				offset++
			}
		}
	}

	v.renderCaret(top, textRows)
	v.renderStatus()
	v.screen.Show()
}

func (v *viewer) renderCaret(top, textRows int) {
	if !v.ctrl.CaretVisible() {
		v.screen.HideCursor()
		return
	}
	pos, ok := v.ctrl.Layout().OffsetToPosition(v.ctrl.Selection().Caret())
	if !ok {
		v.screen.HideCursor()
		return
	}
	row := int(pos.Y) - top
	if row < 0 || row >= textRows {
		v.screen.HideCursor()
		return
	}
	v.screen.ShowCursor(int(pos.X), row)
}

func (v *viewer) renderStatus() {
	w, h := v.screen.Size()
	row := h - 1
	if row < 0 {
		return
	}

	name := v.path
	if name == "" {
		name = "[scratch]"
	}
	status := fmt.Sprintf(" %s | %d pages | caret %d | pending %d",
		name, len(v.ctrl.Layout().Pages()), v.ctrl.Selection().Caret(), v.ctrl.PendingEdits())

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range status {
		if col >= w {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for ; col < w; col++ {
		v.screen.SetContent(col, row, ' ', nil, style)
	}
}

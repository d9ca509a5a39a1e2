// Package document wires one document session together: the text engine
// holding the authoritative buffer, the edit queue synchronizing toward it,
// the layout engine, the selection state machine and the notification bus.
// Every dependency is passed in explicitly; nothing here is process-global.
package document

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vellum-editor/vellum/internal/config"
	"github.com/vellum-editor/vellum/internal/editsync"
	"github.com/vellum-editor/vellum/internal/event"
	"github.com/vellum-editor/vellum/internal/layout"
	"github.com/vellum-editor/vellum/internal/selection"
)

// ErrClosed indicates an operation on a closed controller.
var ErrClosed = errors.New("document controller closed")

// TextEngine is the authoritative text store. It may be an in-process buffer
// or a remote service; the controller only sees this surface. Mutating calls
// return the full updated text.
type TextEngine interface {
	InsertText(ctx context.Context, offset int, text string) (string, error)
	DeleteText(ctx context.Context, offset, length int) (string, error)
	Undo(ctx context.Context) (string, error)
	Redo(ctx context.Context) (string, error)
	CanUndo() bool
	CanRedo() bool
	FullText(ctx context.Context) (string, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the session logger. Defaults to NullLogger.
func WithLogger(log *Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithBus sets the notification bus. Defaults to a fresh bus.
func WithBus(bus *event.Bus) Option {
	return func(c *Controller) {
		if bus != nil {
			c.bus = bus
		}
	}
}

// WithMeasurer sets the text measurer used for layout.
func WithMeasurer(m layout.Measurer) Option {
	return func(c *Controller) { c.measurer = m }
}

// WithBlinkHandler receives caret visibility toggles from the blink timer.
func WithBlinkHandler(h func(visible bool)) Option {
	return func(c *Controller) { c.blinkHandler = h }
}

// Controller coordinates one open document. The local text (the shadow) is
// updated optimistically so layout and selection track keystrokes
// immediately; the edit queue reconciles the engine in the background.
type Controller struct {
	id  string
	log *Logger
	cfg config.Config

	engine TextEngine
	queue  *editsync.Queue
	layout *layout.Engine
	sel    *selection.Engine
	bus    *event.Bus
	blink  *Blinker

	measurer     layout.Measurer
	blinkHandler func(visible bool)

	mu     sync.Mutex
	shadow string
	closed bool
}

// NewController opens a document session over the given engine. The initial
// text is read from the engine and laid out before the call returns.
func NewController(ctx context.Context, eng TextEngine, cfg config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		id:     uuid.NewString(),
		log:    NullLogger,
		cfg:    cfg,
		engine: eng,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = event.NewBus()
	}
	c.log = c.log.WithField("document", c.id)

	initial, err := eng.FullText(ctx)
	if err != nil {
		return nil, err
	}
	c.shadow = initial

	c.sel = selection.NewEngine(runeLen(initial))
	c.sel.SetChangeHandler(c.handleSelectionChanged)

	layoutOpts := []layout.Option{layout.WithLayoutHandler(c.handleLayout)}
	if c.measurer != nil {
		layoutOpts = append(layoutOpts, layout.WithMeasurer(c.measurer))
	}
	c.layout = layout.NewEngine(cfg.RenderConfig(), layoutOpts...)

	c.queue = editsync.NewQueue(eng,
		editsync.WithDebounce(time.Duration(cfg.Editor.DebounceMillis)*time.Millisecond),
		editsync.WithMaxQueue(cfg.Editor.MaxQueuedEdits),
		editsync.WithAppliedHandler(c.handleApplied),
		editsync.WithErrorHandler(c.handleDispatchError),
	)

	c.blink = NewBlinker(time.Duration(cfg.Editor.CaretBlinkMillis)*time.Millisecond, c.blinkHandler)
	c.blink.Start()

	c.layout.UpdateContent(initial)
	c.log.Info("document opened, %d chars", runeLen(initial))
	return c, nil
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Bus returns the notification bus for this session.
func (c *Controller) Bus() *event.Bus { return c.bus }

// Layout returns the layout engine for coordinate queries and culling.
func (c *Controller) Layout() *layout.Engine { return c.layout }

// Selection returns the selection state machine for pointer input.
func (c *Controller) Selection() *selection.Engine { return c.sel }

// CaretVisible reports blink state.
func (c *Controller) CaretVisible() bool { return c.blink.Visible() }

// Text returns the local text, which may be ahead of the engine while edits
// are pending.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shadow
}

// SetText replaces the local text wholesale, relayouts immediately and queues
// the transition for engine synchronization.
func (c *Controller) SetText(newText string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	old := c.shadow
	if old == newText {
		c.mu.Unlock()
		return nil
	}
	c.shadow = newText
	c.mu.Unlock()

	c.layout.UpdateContent(newText)
	return c.queue.OnTextChanged(old, newText)
}

// InsertAtCaret inserts text at the caret, replacing the selection when one
// exists. The caret lands after the inserted text.
func (c *Controller) InsertAtCaret(text string) error {
	if text == "" {
		return nil
	}

	start, end := c.editTarget()
	newText := spliceRunes(c.Text(), start, end, text)
	if err := c.SetText(newText); err != nil {
		return err
	}
	c.sel.CollapseTo(start + runeLen(text))
	c.blink.Restart()
	return nil
}

// DeleteBackward removes the selection, or the character before the caret
// when the selection is empty. At offset zero it is a no-op.
func (c *Controller) DeleteBackward() error {
	start, end := c.editTarget()
	if start == end {
		if start == 0 {
			return nil
		}
		start--
	}

	newText := spliceRunes(c.Text(), start, end, "")
	if err := c.SetText(newText); err != nil {
		return err
	}
	c.sel.CollapseTo(start)
	c.blink.Restart()
	return nil
}

// editTarget returns the offsets the next edit replaces: the selection range,
// or the collapsed caret.
func (c *Controller) editTarget() (start, end int) {
	if rng, ok := c.sel.Selection(); ok {
		return rng.Start, rng.End
	}
	caret := c.sel.Caret()
	return caret, caret
}

// Undo flushes pending edits and rolls the engine back one step. The engine's
// resulting text replaces the local text.
func (c *Controller) Undo(ctx context.Context) error {
	c.queue.Flush(ctx)
	text, err := c.engine.Undo(ctx)
	if err != nil {
		return err
	}
	c.adoptConfirmed(text)
	return nil
}

// Redo flushes pending edits and reapplies the last undone step.
func (c *Controller) Redo(ctx context.Context) error {
	c.queue.Flush(ctx)
	text, err := c.engine.Redo(ctx)
	if err != nil {
		return err
	}
	c.adoptConfirmed(text)
	return nil
}

// CanUndo reports whether the engine has undo history.
func (c *Controller) CanUndo() bool { return c.engine.CanUndo() }

// CanRedo reports whether the engine has redo history.
func (c *Controller) CanRedo() bool { return c.engine.CanRedo() }

// Flush synchronously drains the edit queue.
func (c *Controller) Flush(ctx context.Context) {
	c.queue.Flush(ctx)
}

// PendingEdits returns the number of queued, undispatched edits.
func (c *Controller) PendingEdits() int { return c.queue.Len() }

// Close flushes pending edits and tears the session down. Further mutations
// return ErrClosed; the bus stops delivering.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.queue.Close(ctx)
	c.blink.Stop()
	c.bus.Close()
	c.log.Info("document closed")
	return nil
}

// adoptConfirmed replaces the local text with engine-confirmed text.
func (c *Controller) adoptConfirmed(text string) {
	c.mu.Lock()
	c.shadow = text
	c.mu.Unlock()

	c.layout.UpdateContent(text)
	c.bus.PublishContent(event.ContentChanged{Text: text})
}

// handleLayout runs after every completed relayout: the selection clamps to
// the new document length, then listeners see the new lines and pages.
func (c *Controller) handleLayout(lines []layout.Line, pages []layout.Page) {
	c.sel.SetDocumentLength(c.layout.DocumentLength())
	c.bus.PublishLayout(event.LayoutChanged{Lines: lines, Pages: pages})
}

// handleSelectionChanged republishes selection updates on the bus.
func (c *Controller) handleSelectionChanged(rng *selection.Range, mode selection.Mode) {
	c.blink.Restart()
	c.bus.PublishSelection(event.SelectionChanged{Range: rng, Mode: mode})
}

// handleApplied runs after each successful dispatch. The confirmed text is
// published; if the queue is idle and the engine disagrees with the local
// text (an engine-side normalization, say), the engine wins.
func (c *Controller) handleApplied(confirmed string) {
	c.bus.PublishContent(event.ContentChanged{Text: confirmed})

	if c.queue.Len() > 0 {
		return
	}
	c.mu.Lock()
	diverged := !c.closed && confirmed != c.shadow
	if diverged {
		c.shadow = confirmed
	}
	c.mu.Unlock()

	if diverged {
		c.log.Warn("engine text diverged from local text, adopting engine text")
		c.layout.UpdateContent(confirmed)
	}
}

// handleDispatchError logs a failed dispatch. The edit is not retried and the
// local text is not rolled back; the queue continues with later edits and the
// engine converges on the next successful dispatch.
func (c *Controller) handleDispatchError(edit editsync.PendingEdit, err error) {
	c.log.Error("edit dispatch failed (%d -> %d chars): %v",
		runeLen(edit.Old), runeLen(edit.New), err)
}

// runeLen returns the length of s in runes.
func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// spliceRunes replaces the rune range [start, end) of s with insert.
func spliceRunes(s string, start, end int, insert string) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}
	out := make([]rune, 0, len(runes)-(end-start)+runeLen(insert))
	out = append(out, runes[:start]...)
	out = append(out, []rune(insert)...)
	out = append(out, runes[end:]...)
	return string(out)
}

package engine

import (
	"context"
	"sync"
)

// Engine is the authoritative text engine: buffer plus undo/redo history
// behind one lock. All offsets are rune offsets.
type Engine struct {
	mu sync.Mutex

	buf     *Buffer
	history *History

	readOnly       bool
	maxUndoEntries int
	initContent    string
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{maxUndoEntries: DefaultMaxUndoEntries}
	for _, opt := range opts {
		opt(e)
	}
	if e.initContent != "" {
		e.buf = NewBufferFromString(e.initContent)
	} else {
		e.buf = NewBuffer()
	}
	e.history = NewHistory(e.maxUndoEntries)
	return e
}

// InsertText places text at offset and returns the full updated buffer.
func (e *Engine) InsertText(ctx context.Context, offset int, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}
	if err := e.buf.Insert(offset, text); err != nil {
		return "", err
	}
	e.history.Push(&appliedEditCommand{offset: offset, newText: text})
	return e.buf.String(), nil
}

// DeleteText removes length runes at offset and returns the full updated
// buffer.
func (e *Engine) DeleteText(ctx context.Context, offset, length int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}
	if offset < 0 || offset > e.buf.Len() {
		return "", ErrInvalidOffset
	}
	if length < 0 || offset+length > e.buf.Len() {
		return "", ErrInvalidRange
	}
	oldText := e.buf.Slice(offset, offset+length)
	if err := e.buf.Delete(offset, length); err != nil {
		return "", err
	}
	e.history.Push(&appliedEditCommand{offset: offset, oldText: oldText})
	return e.buf.String(), nil
}

// Undo reverses the last edit and returns the full updated buffer.
func (e *Engine) Undo(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}
	if err := e.history.Undo(e.buf); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

// Redo re-applies the last undone edit and returns the full updated buffer.
func (e *Engine) Redo(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}
	if err := e.history.Redo(e.buf); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// FullText returns the full buffer content.
func (e *Engine) FullText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.String(), nil
}

// Len returns the buffer length in runes.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Len()
}

// IsReadOnly returns true if the engine rejects mutations.
func (e *Engine) IsReadOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readOnly
}

// BeginUndoGroup starts a new undo group. All edits until EndUndoGroup are
// undone as a single unit.
func (e *Engine) BeginUndoGroup(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.BeginGroup(name)
}

// EndUndoGroup ends the current undo group.
func (e *Engine) EndUndoGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.EndGroup()
}

// CancelUndoGroup cancels the current undo group without recording it.
func (e *Engine) CancelUndoGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.CancelGroup()
}

// SetContent replaces all content and resets history.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	e.buf = NewBufferFromString(content)
	e.history.Clear()
	return nil
}

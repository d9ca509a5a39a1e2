// Package event carries the document core's notifications to the
// presentation layer: content changed, layout changed, selection changed.
//
// The bus replaces broadcast streams with an explicit observer registry.
// Listeners are invoked synchronously in subscription order after each
// atomic mutation, so they always observe the latest state and never a
// partial one. Publishing to a closed bus is dropped silently, not faulted.
package event

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/vellum-editor/vellum/internal/layout"
	"github.com/vellum-editor/vellum/internal/selection"
)

// ContentChanged carries the confirmed buffer text.
type ContentChanged struct {
	Text string
}

// LayoutChanged carries the freshly computed line and page lists.
type LayoutChanged struct {
	Lines []layout.Line
	Pages []layout.Page
}

// SelectionChanged carries the selection range (nil when none) and mode.
type SelectionChanged struct {
	Range *selection.Range
	Mode  selection.Mode
}

// Subscription identifies a registered listener and can cancel it.
type Subscription struct {
	ID     string
	cancel func()
}

// Cancel removes the listener. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type contentListener struct {
	id string
	fn func(ContentChanged)
}

type layoutListener struct {
	id string
	fn func(LayoutChanged)
}

type selectionListener struct {
	id string
	fn func(SelectionChanged)
}

// Bus is a per-document observer registry. One bus is constructed per
// document session and passed explicitly to dependents; there are no
// process-wide instances.
type Bus struct {
	mu        sync.Mutex
	closed    bool
	content   []contentListener
	layout    []layoutListener
	selection []selectionListener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeContent registers a content-changed listener.
func (b *Bus) SubscribeContent(fn func(ContentChanged)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := newID()
	b.content = append(b.content, contentListener{id: id, fn: fn})
	return Subscription{ID: id, cancel: func() { b.removeContent(id) }}
}

// SubscribeLayout registers a layout-changed listener.
func (b *Bus) SubscribeLayout(fn func(LayoutChanged)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := newID()
	b.layout = append(b.layout, layoutListener{id: id, fn: fn})
	return Subscription{ID: id, cancel: func() { b.removeLayout(id) }}
}

// SubscribeSelection registers a selection-changed listener.
func (b *Bus) SubscribeSelection(fn func(SelectionChanged)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := newID()
	b.selection = append(b.selection, selectionListener{id: id, fn: fn})
	return Subscription{ID: id, cancel: func() { b.removeSelection(id) }}
}

// PublishContent notifies content listeners in subscription order.
func (b *Bus) PublishContent(ev ContentChanged) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	listeners := make([]contentListener, len(b.content))
	copy(listeners, b.content)
	b.mu.Unlock()

	for _, l := range listeners {
		l.fn(ev)
	}
}

// PublishLayout notifies layout listeners in subscription order.
func (b *Bus) PublishLayout(ev LayoutChanged) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	listeners := make([]layoutListener, len(b.layout))
	copy(listeners, b.layout)
	b.mu.Unlock()

	for _, l := range listeners {
		l.fn(ev)
	}
}

// PublishSelection notifies selection listeners in subscription order.
func (b *Bus) PublishSelection(ev SelectionChanged) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	listeners := make([]selectionListener, len(b.selection))
	copy(listeners, b.selection)
	b.mu.Unlock()

	for _, l := range listeners {
		l.fn(ev)
	}
}

// Close detaches all listeners. Publishes arriving after Close are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.content = nil
	b.layout = nil
	b.selection = nil
}

func (b *Bus) removeContent(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.content {
		if l.id == id {
			b.content = append(b.content[:i], b.content[i+1:]...)
			return
		}
	}
}

func (b *Bus) removeLayout(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.layout {
		if l.id == id {
			b.layout = append(b.layout[:i], b.layout[i+1:]...)
			return
		}
	}
}

func (b *Bus) removeSelection(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.selection {
		if l.id == id {
			b.selection = append(b.selection[:i], b.selection[i+1:]...)
			return
		}
	}
}

// listenerSeq backs ID generation when the system randomness source fails.
var listenerSeq atomic.Uint64

// newID generates a unique listener ID.
func newID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fallbackID()
	}
	return hex.EncodeToString(buf[:])
}

// fallbackID draws from a process-local counter so two subscriptions never
// share an ID even without randomness; a shared ID would let one Cancel
// remove another subscription's listener.
func fallbackID() string {
	return "listener-" + strconv.FormatUint(listenerSeq.Add(1), 10)
}

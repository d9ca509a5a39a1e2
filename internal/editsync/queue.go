package editsync

import (
	"context"
	"sync"
	"time"
)

// Default queue tuning.
const (
	DefaultMaxQueue = 10
	DefaultDebounce = 50 * time.Millisecond
)

// Dispatcher is the subset of the text engine the queue drives.
// Offsets are in runes. Each call returns the full updated buffer.
type Dispatcher interface {
	InsertText(ctx context.Context, offset int, text string) (string, error)
	DeleteText(ctx context.Context, offset, length int) (string, error)
}

// PendingEdit is a queued (old, new) text pair awaiting debounce.
// It is owned exclusively by the queue and destroyed once dispatched.
type PendingEdit struct {
	Old string
	New string
}

// ErrorHandler is called once per failing batch. The queue does not retry;
// it continues draining so later edits are not stalled behind a dead one.
type ErrorHandler func(edit PendingEdit, err error)

// AppliedHandler is called after a batch dispatches successfully, carrying
// the confirmed buffer text returned by the engine.
type AppliedHandler func(confirmed string)

// Option configures a Queue.
type Option func(*Queue)

// WithMaxQueue sets the pending-edit count that triggers an overflow merge.
func WithMaxQueue(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.maxQueue = n
		}
	}
}

// WithDebounce sets the quiet period before the queue drains. Zero is
// honored and means dispatch without a quiet period; negative durations
// keep the default.
func WithDebounce(d time.Duration) Option {
	return func(q *Queue) {
		if d >= 0 {
			q.debounce = d
		}
	}
}

// WithErrorHandler sets the dispatch failure callback.
func WithErrorHandler(h ErrorHandler) Option {
	return func(q *Queue) { q.onError = h }
}

// WithAppliedHandler sets the dispatch success callback.
func WithAppliedHandler(h AppliedHandler) Option {
	return func(q *Queue) { q.onApplied = h }
}

// Queue buffers per-keystroke edits, debounces them and serializes dispatch
// of the resulting diffs to the text engine.
//
// Pending edits are applied strictly FIFO, and each edit's delete is fully
// applied before its insert is dispatched. Calls arriving faster than the
// debounce window may be merged: clients must not assume every keystroke
// produces an engine call.
type Queue struct {
	mu sync.Mutex

	engine    Dispatcher
	pending   []PendingEdit
	timer     *time.Timer
	maxQueue  int
	debounce  time.Duration
	onError   ErrorHandler
	onApplied AppliedHandler

	// processing is the sole mutual-exclusion device around draining.
	// It must be treated as a non-reentrant lock.
	processing bool

	// overflowed marks a burst that has already collapsed once; further
	// changes fold into the merged edit until the drain empties the queue.
	overflowed bool
	closed     bool

	// drained wakes waiters when a drain releases the processing flag.
	drained *sync.Cond
}

// NewQueue creates a queue dispatching to the given engine.
func NewQueue(engine Dispatcher, opts ...Option) *Queue {
	q := &Queue{
		engine:   engine,
		maxQueue: DefaultMaxQueue,
		debounce: DefaultDebounce,
	}
	q.drained = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// OnTextChanged records an observed buffer transition. Equal texts are a
// no-op. If the queue grows past its maximum, the whole queue collapses into
// a single edit spanning the first old text and the last new text; the net
// effect is preserved and intermediate states are discarded. Once a burst
// has overflowed, further changes keep folding into the collapsed edit until
// a drain empties the queue, so a sustained burst reaches the engine as one
// dispatch. The debounce timer is reset on every call.
func (q *Queue) OnTextChanged(oldText, newText string) error {
	if oldText == newText {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.pending = append(q.pending, PendingEdit{Old: oldText, New: newText})
	if len(q.pending) > q.maxQueue || (q.overflowed && len(q.pending) > 1) {
		merged := PendingEdit{
			Old: q.pending[0].Old,
			New: q.pending[len(q.pending)-1].New,
		}
		q.pending = q.pending[:0]
		q.pending = append(q.pending, merged)
		q.overflowed = true
	}

	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(q.debounce, func() {
		q.ProcessQueue(context.Background())
	})
	return nil
}

// ProcessQueue drains the pending edits in FIFO order. If a drain is already
// in progress the call is an idempotent no-op; the edits appended since will
// be picked up by the running drain. The processing flag is released when the
// queue empties, even on error.
func (q *Queue) ProcessQueue(ctx context.Context) {
	q.mu.Lock()
	if q.processing {
		q.mu.Unlock()
		return
	}
	q.processing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.processing = false
		q.drained.Broadcast()
		q.mu.Unlock()
	}()

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.overflowed = false
			q.mu.Unlock()
			return
		}
		edit := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.dispatch(ctx, edit)
	}
}

// dispatch applies one pending edit: diff, delete, then insert.
func (q *Queue) dispatch(ctx context.Context, edit PendingEdit) {
	op, ok := Diff(edit.Old, edit.New)
	if !ok {
		return
	}

	var (
		confirmed = edit.New
		err       error
	)
	if op.HasDelete() {
		confirmed, err = q.engine.DeleteText(ctx, op.DeleteOffset, op.DeleteLength)
	}
	if err == nil && op.HasInsert() {
		confirmed, err = q.engine.InsertText(ctx, op.InsertOffset, op.InsertText)
	}

	if err != nil {
		// Reported once per failing batch, never once per merged keystroke.
		if handler := q.errorHandler(); handler != nil {
			handler(edit, err)
		}
		return
	}
	if handler := q.appliedHandler(); handler != nil {
		handler(confirmed)
	}
}

func (q *Queue) errorHandler() ErrorHandler {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	return q.onError
}

func (q *Queue) appliedHandler() AppliedHandler {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	return q.onApplied
}

// Flush cancels the debounce timer and drains synchronously. If another
// goroutine holds the processing flag, Flush blocks until that drain releases
// it and the queue is empty, so edits queued behind an in-flight dispatch are
// never stranded. Call before teardown to guarantee no edits are dropped.
func (q *Queue) Flush(ctx context.Context) {
	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	for q.processing || len(q.pending) > 0 {
		if q.processing {
			q.drained.Wait()
			continue
		}
		q.mu.Unlock()
		q.ProcessQueue(ctx)
		q.mu.Lock()
	}
	q.mu.Unlock()
}

// Close flushes pending edits and detaches the queue. Dispatch completions
// arriving after Close are dropped silently, not faulted.
func (q *Queue) Close(ctx context.Context) {
	q.Flush(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.pending = nil
}

// Len returns the number of pending edits.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Processing reports whether a drain is in progress.
func (q *Queue) Processing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processing
}

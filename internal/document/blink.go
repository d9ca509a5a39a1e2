package document

import (
	"sync"
	"time"
)

// Blinker toggles caret visibility on a fixed half-period. The timer is an
// explicit dependency rather than a rendering-loop side effect, so tests can
// drive it and callers can disable it. The caret resets to visible on every
// Restart, which the controller calls when the caret moves.
type Blinker struct {
	mu       sync.Mutex
	interval time.Duration
	visible  bool
	handler  func(visible bool)
	timer    *time.Timer
	running  bool
}

// NewBlinker creates a blinker with the given half-period. An interval of
// zero or less disables blinking; the caret stays visible.
func NewBlinker(interval time.Duration, handler func(visible bool)) *Blinker {
	return &Blinker{
		interval: interval,
		visible:  true,
		handler:  handler,
	}
}

// Start begins toggling. Starting a running blinker restarts its phase.
func (b *Blinker) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.interval <= 0 {
		return
	}
	b.running = true
	b.setVisibleLocked(true)
	b.armLocked()
}

// Stop halts toggling and leaves the caret visible.
func (b *Blinker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.running = false
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.setVisibleLocked(true)
}

// Restart resets the phase so the caret shows immediately after movement.
func (b *Blinker) Restart() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}
	b.setVisibleLocked(true)
	b.armLocked()
}

// Visible reports the current caret visibility.
func (b *Blinker) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

func (b *Blinker) armLocked() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.interval, b.tick)
}

func (b *Blinker) tick() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.setVisibleLocked(!b.visible)
	b.armLocked()
	b.mu.Unlock()
}

// setVisibleLocked updates visibility and fires the handler on change. The
// handler runs under the lock; it must not call back into the blinker.
func (b *Blinker) setVisibleLocked(visible bool) {
	if b.visible == visible {
		return
	}
	b.visible = visible
	if b.handler != nil {
		b.handler(visible)
	}
}

package event

import (
	"testing"

	"github.com/vellum-editor/vellum/internal/selection"
)

func TestPublishContentDeliversInOrder(t *testing.T) {
	bus := NewBus()
	var order []int

	bus.SubscribeContent(func(ContentChanged) { order = append(order, 1) })
	bus.SubscribeContent(func(ContentChanged) { order = append(order, 2) })
	bus.SubscribeContent(func(ContentChanged) { order = append(order, 3) })

	bus.PublishContent(ContentChanged{Text: "hello"})

	if len(order) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(order))
	}
	for i, v := range order {
		if v != i+1 {
			t.Errorf("delivery %d: got listener %d, want %d", i, v, i+1)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	calls := 0

	sub := bus.SubscribeContent(func(ContentChanged) { calls++ })
	bus.PublishContent(ContentChanged{Text: "a"})
	sub.Cancel()
	bus.PublishContent(ContentChanged{Text: "b"})

	if calls != 1 {
		t.Errorf("expected 1 call after cancel, got %d", calls)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	bus := NewBus()
	sub := bus.SubscribeContent(func(ContentChanged) {})
	sub.Cancel()
	sub.Cancel()

	bus.PublishContent(ContentChanged{Text: "x"})
}

func TestCancelOnlyRemovesOwnListener(t *testing.T) {
	bus := NewBus()
	var fired []string

	a := bus.SubscribeSelection(func(SelectionChanged) { fired = append(fired, "a") })
	bus.SubscribeSelection(func(SelectionChanged) { fired = append(fired, "b") })
	a.Cancel()

	bus.PublishSelection(SelectionChanged{Mode: selection.ModeCaret})

	if len(fired) != 1 || fired[0] != "b" {
		t.Errorf("expected only listener b, got %v", fired)
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.SubscribeLayout(func(LayoutChanged) { calls++ })

	bus.Close()
	bus.PublishLayout(LayoutChanged{})

	if calls != 0 {
		t.Errorf("expected no deliveries after close, got %d", calls)
	}
}

func TestSelectionPayloadCarriesRangeAndMode(t *testing.T) {
	bus := NewBus()
	var got SelectionChanged
	bus.SubscribeSelection(func(ev SelectionChanged) { got = ev })

	rng := selection.NewRange(5, 2)
	bus.PublishSelection(SelectionChanged{Range: &rng, Mode: selection.ModeWord})

	if got.Range == nil {
		t.Fatal("expected non-nil range")
	}
	if got.Range.Start != 2 || got.Range.End != 5 {
		t.Errorf("range = [%d,%d), want [2,5)", got.Range.Start, got.Range.End)
	}
	if got.Mode != selection.ModeWord {
		t.Errorf("mode = %v, want %v", got.Mode, selection.ModeWord)
	}
}

func TestSubscriptionIDsAreUnique(t *testing.T) {
	bus := NewBus()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		sub := bus.SubscribeContent(func(ContentChanged) {})
		if seen[sub.ID] {
			t.Fatalf("duplicate subscription ID %q", sub.ID)
		}
		seen[sub.ID] = true
	}
}

func TestFallbackIDsAreUnique(t *testing.T) {
	// Without randomness, IDs come from a process-local counter. A repeated
	// ID would make one subscription's Cancel remove another's listener.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := fallbackID()
		if seen[id] {
			t.Fatalf("duplicate fallback ID %q", id)
		}
		seen[id] = true
	}
}

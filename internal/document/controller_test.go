package document

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vellum-editor/vellum/internal/config"
	"github.com/vellum-editor/vellum/internal/engine"
	"github.com/vellum-editor/vellum/internal/event"
	"github.com/vellum-editor/vellum/internal/selection"
)

func testConfig() config.Config {
	cfg := config.Default()
	// Long enough that tests drain via Flush rather than racing the timer.
	cfg.Editor.DebounceMillis = 200
	cfg.Editor.CaretBlinkMillis = 0
	return cfg
}

func newTestController(t *testing.T, content string) (*Controller, *engine.Engine) {
	t.Helper()
	eng := engine.New(engine.WithContent(content))
	c, err := NewController(context.Background(), eng, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close(context.Background()) })
	return c, eng
}

func TestNewControllerLaysOutInitialText(t *testing.T) {
	c, _ := newTestController(t, "hello world")

	if c.Text() != "hello world" {
		t.Errorf("text = %q", c.Text())
	}
	if got := c.Layout().DocumentLength(); got != 11 {
		t.Errorf("document length %d, want 11", got)
	}
	if len(c.Layout().Pages()) != 1 {
		t.Errorf("got %d pages, want 1", len(c.Layout().Pages()))
	}
	if c.ID() == "" {
		t.Error("controller has no ID")
	}
}

func TestInsertAtCaretMovesCaretAndSyncs(t *testing.T) {
	ctx := context.Background()
	c, eng := newTestController(t, "helo")

	c.Selection().CollapseTo(3)
	if err := c.InsertAtCaret("l"); err != nil {
		t.Fatal(err)
	}

	if c.Text() != "hello" {
		t.Errorf("local text = %q, want hello", c.Text())
	}
	if got := c.Selection().Caret(); got != 4 {
		t.Errorf("caret = %d, want 4", got)
	}

	c.Flush(ctx)
	confirmed, err := eng.FullText(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if confirmed != "hello" {
		t.Errorf("engine text = %q, want hello", confirmed)
	}
}

func TestInsertAtCaretReplacesSelection(t *testing.T) {
	ctx := context.Background()
	c, eng := newTestController(t, "hello cruel world")

	c.Selection().SetSelection(6, 11) // "cruel"
	if err := c.InsertAtCaret("kind"); err != nil {
		t.Fatal(err)
	}

	if c.Text() != "hello kind world" {
		t.Errorf("local text = %q", c.Text())
	}
	if got := c.Selection().Caret(); got != 10 {
		t.Errorf("caret = %d, want 10", got)
	}
	if c.Selection().HasSelection() {
		t.Error("selection should collapse after replacement")
	}

	c.Flush(ctx)
	confirmed, _ := eng.FullText(ctx)
	if confirmed != "hello kind world" {
		t.Errorf("engine text = %q", confirmed)
	}
}

func TestDeleteBackwardAtCaret(t *testing.T) {
	c, _ := newTestController(t, "hello")
	c.Selection().CollapseTo(5)

	if err := c.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if c.Text() != "hell" {
		t.Errorf("text = %q, want hell", c.Text())
	}
	if got := c.Selection().Caret(); got != 4 {
		t.Errorf("caret = %d, want 4", got)
	}
}

func TestDeleteBackwardRemovesSelection(t *testing.T) {
	c, _ := newTestController(t, "hello world")
	c.Selection().SetSelection(5, 11)

	if err := c.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if c.Text() != "hello" {
		t.Errorf("text = %q, want hello", c.Text())
	}
	if got := c.Selection().Caret(); got != 5 {
		t.Errorf("caret = %d, want 5", got)
	}
}

func TestDeleteBackwardAtStartIsNoOp(t *testing.T) {
	c, _ := newTestController(t, "abc")
	c.Selection().CollapseTo(0)

	if err := c.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if c.Text() != "abc" {
		t.Errorf("text = %q, want abc", c.Text())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, "base")

	c.Selection().CollapseTo(4)
	if err := c.InsertAtCaret("!"); err != nil {
		t.Fatal(err)
	}
	c.Flush(ctx)
	if !c.CanUndo() {
		t.Fatal("expected undo history after flush")
	}

	if err := c.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Text() != "base" {
		t.Errorf("after undo: %q, want base", c.Text())
	}
	if !c.CanRedo() {
		t.Fatal("expected redo history after undo")
	}

	if err := c.Redo(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Text() != "base!" {
		t.Errorf("after redo: %q, want base!", c.Text())
	}
}

func TestUndoWithoutHistoryFailsDistinctly(t *testing.T) {
	c, _ := newTestController(t, "text")
	err := c.Undo(context.Background())
	if !errors.Is(err, engine.ErrNothingToUndo) {
		t.Errorf("got %v, want ErrNothingToUndo", err)
	}
}

func TestUndoFlushesPendingEditsFirst(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, "")

	c.Selection().CollapseTo(0)
	if err := c.InsertAtCaret("abc"); err != nil {
		t.Fatal(err)
	}
	// The edit is still queued; Undo must flush it and then revert it rather
	// than undoing some earlier state.
	if c.PendingEdits() == 0 {
		t.Fatal("expected a pending edit before the debounce fires")
	}
	if err := c.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Text() != "" {
		t.Errorf("after undo: %q, want empty", c.Text())
	}
}

func TestBusPublishesLayoutAndSelectionAndContent(t *testing.T) {
	ctx := context.Background()
	eng := engine.New(engine.WithContent("one"))
	bus := event.NewBus()

	var layouts, selections, contents int
	bus.SubscribeLayout(func(event.LayoutChanged) { layouts++ })
	bus.SubscribeSelection(func(event.SelectionChanged) { selections++ })
	bus.SubscribeContent(func(event.ContentChanged) { contents++ })

	c, err := NewController(ctx, eng, testConfig(), WithBus(bus))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close(ctx)

	if layouts != 1 {
		t.Errorf("initial layout published %d times, want 1", layouts)
	}

	c.Selection().CollapseTo(2)
	if selections == 0 {
		t.Error("caret move published no selection change")
	}

	if err := c.SetText("one two"); err != nil {
		t.Fatal(err)
	}
	if layouts < 2 {
		t.Error("text change did not relayout")
	}

	c.Flush(ctx)
	if contents != 1 {
		t.Errorf("confirmed content published %d times, want 1", contents)
	}
}

func TestSelectionClampsWhenTextShrinks(t *testing.T) {
	c, _ := newTestController(t, "hello world")
	c.Selection().CollapseTo(11)

	if err := c.SetText("hi"); err != nil {
		t.Fatal(err)
	}
	if got := c.Selection().Caret(); got != 2 {
		t.Errorf("caret = %d, want clamped 2", got)
	}
}

func TestSetTextEqualIsNoOp(t *testing.T) {
	c, _ := newTestController(t, "same")
	if err := c.SetText("same"); err != nil {
		t.Fatal(err)
	}
	if c.PendingEdits() != 0 {
		t.Errorf("equal text queued %d edits", c.PendingEdits())
	}
}

func TestCloseRejectsFurtherEdits(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, "text")
	if err := c.Close(ctx); err != nil {
		t.Fatal(err)
	}

	if err := c.SetText("changed"); !errors.Is(err, ErrClosed) {
		t.Errorf("got %v, want ErrClosed", err)
	}
	if err := c.Close(ctx); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestCloseFlushesPendingEdits(t *testing.T) {
	ctx := context.Background()
	eng := engine.New(engine.WithContent(""))
	c, err := NewController(ctx, eng, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	c.Selection().CollapseTo(0)
	if err := c.InsertAtCaret("final words"); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(ctx); err != nil {
		t.Fatal(err)
	}

	confirmed, _ := eng.FullText(ctx)
	if confirmed != "final words" {
		t.Errorf("engine text after close = %q", confirmed)
	}
}

// failingEngine rejects all mutations, for exercising the dispatch failure
// policy: no retry, no rollback, the document keeps its local text.
type failingEngine struct {
	text string
}

func (f *failingEngine) InsertText(context.Context, int, string) (string, error) {
	return "", errors.New("engine unavailable")
}

func (f *failingEngine) DeleteText(context.Context, int, int) (string, error) {
	return "", errors.New("engine unavailable")
}

func (f *failingEngine) Undo(context.Context) (string, error) {
	return "", errors.New("engine unavailable")
}

func (f *failingEngine) Redo(context.Context) (string, error) {
	return "", errors.New("engine unavailable")
}

func (f *failingEngine) CanUndo() bool { return false }
func (f *failingEngine) CanRedo() bool { return false }

func (f *failingEngine) FullText(context.Context) (string, error) {
	return f.text, nil
}

func TestDispatchFailureKeepsLocalTextAndLogs(t *testing.T) {
	ctx := context.Background()
	var logBuf strings.Builder
	log := NewLogger(LoggerConfig{Level: LogLevelError, Output: &logBuf})

	c, err := NewController(ctx, &failingEngine{text: "start"}, testConfig(), WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close(ctx)

	if err := c.SetText("start plus more"); err != nil {
		t.Fatal(err)
	}
	c.Flush(ctx)

	if c.Text() != "start plus more" {
		t.Errorf("local text rolled back to %q", c.Text())
	}
	if !strings.Contains(logBuf.String(), "edit dispatch failed") {
		t.Errorf("failure not logged: %q", logBuf.String())
	}
}

func TestSelectWordThroughController(t *testing.T) {
	c, _ := newTestController(t, "alpha beta gamma")
	c.Selection().SelectWord(7, c.Text())

	rng, ok := c.Selection().Selection()
	if !ok {
		t.Fatal("no selection after word select")
	}
	if rng.Start != 6 || rng.End != 10 {
		t.Errorf("word range [%d,%d), want [6,10)", rng.Start, rng.End)
	}
	if c.Selection().Mode() != selection.ModeWord {
		t.Errorf("mode = %v, want word", c.Selection().Mode())
	}
}

func TestSpliceRunes(t *testing.T) {
	cases := []struct {
		s          string
		start, end int
		insert     string
		want       string
	}{
		{"hello", 5, 5, "!", "hello!"},
		{"hello", 0, 0, ">", ">hello"},
		{"hello", 1, 4, "", "ho"},
		{"日本語", 1, 2, "英", "日英語"},
		{"abc", -2, 99, "x", "x"},
		{"abc", 2, 1, "x", "abxc"},
	}
	for _, tc := range cases {
		if got := spliceRunes(tc.s, tc.start, tc.end, tc.insert); got != tc.want {
			t.Errorf("spliceRunes(%q, %d, %d, %q) = %q, want %q",
				tc.s, tc.start, tc.end, tc.insert, got, tc.want)
		}
	}
}

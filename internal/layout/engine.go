package layout

import (
	"sync"
	"unicode/utf8"
)

// LayoutHandler receives the line and page lists after each completed
// relayout. The slices are owned by the engine; treat them as read-only.
type LayoutHandler func(lines []Line, pages []Page)

// Option configures an Engine.
type Option func(*Engine)

// WithMeasurer sets the advance measurer. Defaults to the fixed measurer.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) {
		if m != nil {
			e.measurer = m
		}
	}
}

// WithLayoutHandler sets the relayout completion callback.
func WithLayoutHandler(h LayoutHandler) Option {
	return func(e *Engine) { e.onLayout = h }
}

// Engine owns the laid-out representation of one document: the line list,
// its pagination and the offset<->coordinate mapping derived from them.
// Line and page lists are recomputed wholesale on each relayout and replace
// the previous lists atomically; no partial update is ever visible.
type Engine struct {
	mu sync.Mutex

	cfg       RenderConfig
	measurer  Measurer
	styleRuns []StyleRun
	onLayout  LayoutHandler

	text   string
	docLen int
	lines  []Line
	pages  []Page

	// Single-flight relayout state: dirty marks pending work, computing
	// marks a pass in flight. A request arriving mid-flight sets dirty and
	// returns; the running pass loops until the state is clean.
	dirty     bool
	computing bool

	lastErr error
}

// NewEngine creates a layout engine with the given geometry.
func NewEngine(cfg RenderConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		measurer: NewFixedMeasurer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UpdateContent replaces the text and requests a relayout.
func (e *Engine) UpdateContent(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
	e.requestLayout()
}

// SetRenderConfig replaces the geometry and requests a relayout.
func (e *Engine) SetRenderConfig(cfg RenderConfig) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
	e.requestLayout()
}

// SetStyleRuns replaces the style runs and requests a relayout.
func (e *Engine) SetStyleRuns(runs []StyleRun) {
	e.mu.Lock()
	e.styleRuns = runs
	e.mu.Unlock()
	e.requestLayout()
}

// requestLayout marks the layout dirty and, if no pass is in flight, runs
// one. The pass reads the latest state at computation start and loops while
// new requests arrive, so the last request always wins. A measurement
// failure aborts the pass and leaves the previous valid layout in place.
func (e *Engine) requestLayout() {
	e.mu.Lock()
	e.dirty = true
	if e.computing {
		e.mu.Unlock()
		return
	}
	e.computing = true

	for e.dirty {
		e.dirty = false
		text := e.text
		cfg := e.cfg
		measurer := e.measurer
		runs := e.styleRuns
		e.mu.Unlock()

		lines, err := wrapContent(text, cfg, measurer, runs)

		e.mu.Lock()
		if err != nil {
			e.lastErr = err
			continue
		}
		pages := paginate(lines, cfg)
		e.lastErr = nil
		e.lines = lines
		e.pages = pages
		e.docLen = utf8.RuneCountInString(text)

		if handler := e.onLayout; handler != nil {
			e.mu.Unlock()
			handler(lines, pages)
			e.mu.Lock()
		}
	}

	e.computing = false
	e.mu.Unlock()
}

// Lines returns the current line list.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lines
}

// Pages returns the current page list.
func (e *Engine) Pages() []Page {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pages
}

// DocumentLength returns the laid-out text length in runes.
func (e *Engine) DocumentLength() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.docLen
}

// LastError returns the error that aborted the most recent relayout, or nil
// if it completed.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

package engine

// DefaultMaxUndoEntries bounds the undo history.
const DefaultMaxUndoEntries = 1000

// Option configures an Engine.
type Option func(*Engine)

// WithContent sets the initial buffer content.
func WithContent(content string) Option {
	return func(e *Engine) { e.initContent = content }
}

// WithReadOnly makes the engine reject all mutations.
func WithReadOnly(readOnly bool) Option {
	return func(e *Engine) { e.readOnly = readOnly }
}

// WithMaxUndoEntries bounds the undo history depth.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndoEntries = n
		}
	}
}

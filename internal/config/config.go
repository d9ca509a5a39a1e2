// Package config defines the document editor's configuration: page geometry,
// rendering parameters and editing behavior. Values load from a TOML file and
// validate before use; a missing file yields the defaults.
package config

import (
	"fmt"

	"github.com/vellum-editor/vellum/internal/layout"
)

// Standard page dimensions in PostScript points.
const (
	A4Width  = 595.35
	A4Height = 841.89

	LetterWidth  = 612.0
	LetterHeight = 792.0

	// DefaultMargin is one inch on every side.
	DefaultMargin = 72.0
)

// PageSection describes the physical page: outer dimensions, margins and the
// reserved header/footer bands. All values are points.
type PageSection struct {
	Size         string  `toml:"size"` // "a4", "letter" or "custom"
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	MarginTop    float64 `toml:"margin_top"`
	MarginBottom float64 `toml:"margin_bottom"`
	MarginLeft   float64 `toml:"margin_left"`
	MarginRight  float64 `toml:"margin_right"`
	HeaderHeight float64 `toml:"header_height"`
	FooterHeight float64 `toml:"footer_height"`
}

// RenderSection describes how text is drawn.
type RenderSection struct {
	FontSize      float64 `toml:"font_size"`
	FontFamily    string  `toml:"font_family"`
	LineHeight    float64 `toml:"line_height"`
	LetterSpacing float64 `toml:"letter_spacing"`
	WordSpacing   float64 `toml:"word_spacing"`
}

// EditorSection describes editing behavior.
type EditorSection struct {
	// DebounceMillis is the quiet period before queued edits dispatch.
	// Zero dispatches edits without a quiet period.
	DebounceMillis int `toml:"debounce_ms"`
	// MaxQueuedEdits caps the pending edit queue before overflow merging.
	MaxQueuedEdits int `toml:"max_queued_edits"`
	// CaretBlinkMillis is the caret blink half-period. Zero disables blinking.
	CaretBlinkMillis int `toml:"caret_blink_ms"`
	// MaxUndoEntries caps undo history depth.
	MaxUndoEntries int `toml:"max_undo_entries"`
}

// Config is the root configuration document.
type Config struct {
	Page   PageSection   `toml:"page"`
	Render RenderSection `toml:"render"`
	Editor EditorSection `toml:"editor"`
}

// A4Page returns an A4 page with one-inch margins and no header or footer.
func A4Page() PageSection {
	return PageSection{
		Size:         "a4",
		Width:        A4Width,
		Height:       A4Height,
		MarginTop:    DefaultMargin,
		MarginBottom: DefaultMargin,
		MarginLeft:   DefaultMargin,
		MarginRight:  DefaultMargin,
	}
}

// LetterPage returns a US Letter page with one-inch margins.
func LetterPage() PageSection {
	return PageSection{
		Size:         "letter",
		Width:        LetterWidth,
		Height:       LetterHeight,
		MarginTop:    DefaultMargin,
		MarginBottom: DefaultMargin,
		MarginLeft:   DefaultMargin,
		MarginRight:  DefaultMargin,
	}
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Page: A4Page(),
		Render: RenderSection{
			FontSize:   12,
			FontFamily: "serif",
			LineHeight: 1.4,
		},
		Editor: EditorSection{
			DebounceMillis:   50,
			MaxQueuedEdits:   10,
			CaretBlinkMillis: 500,
			MaxUndoEntries:   1000,
		},
	}
}

// ContentWidth returns the horizontal space available to text.
func (p PageSection) ContentWidth() float64 {
	return p.Width - p.MarginLeft - p.MarginRight
}

// ContentHeight returns the vertical space available to text after margins
// and the header/footer bands.
func (p PageSection) ContentHeight() float64 {
	return p.Height - p.MarginTop - p.MarginBottom - p.HeaderHeight - p.FooterHeight
}

// RenderConfig converts the configuration into layout geometry. The layout
// engine works in the content box; margins are presentation offsets.
func (c Config) RenderConfig() layout.RenderConfig {
	return layout.RenderConfig{
		Width:         c.Page.ContentWidth(),
		Height:        c.Page.ContentHeight(),
		FontSize:      c.Render.FontSize,
		FontFamily:    c.Render.FontFamily,
		LineHeight:    c.Render.LineHeight,
		LetterSpacing: c.Render.LetterSpacing,
		WordSpacing:   c.Render.WordSpacing,
	}
}

// Validate reports the first invalid setting found.
func (c Config) Validate() error {
	p := c.Page
	switch p.Size {
	case "a4", "letter", "custom":
	default:
		return fmt.Errorf("%w: page.size %q (want a4, letter or custom)", ErrValidationFailed, p.Size)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: page dimensions %gx%g must be positive", ErrValidationFailed, p.Width, p.Height)
	}
	if p.MarginTop < 0 || p.MarginBottom < 0 || p.MarginLeft < 0 || p.MarginRight < 0 {
		return fmt.Errorf("%w: page margins must not be negative", ErrValidationFailed)
	}
	if p.HeaderHeight < 0 || p.FooterHeight < 0 {
		return fmt.Errorf("%w: header/footer heights must not be negative", ErrValidationFailed)
	}
	if p.ContentWidth() <= 0 {
		return fmt.Errorf("%w: margins leave no horizontal space for content", ErrValidationFailed)
	}
	if p.ContentHeight() <= 0 {
		return fmt.Errorf("%w: margins, header and footer leave no vertical space for content", ErrValidationFailed)
	}

	r := c.Render
	if r.FontSize <= 0 {
		return fmt.Errorf("%w: render.font_size %g must be positive", ErrValidationFailed, r.FontSize)
	}
	if r.LineHeight < 0 {
		return fmt.Errorf("%w: render.line_height must not be negative", ErrValidationFailed)
	}

	e := c.Editor
	if e.DebounceMillis < 0 {
		return fmt.Errorf("%w: editor.debounce_ms must not be negative", ErrValidationFailed)
	}
	if e.MaxQueuedEdits < 1 {
		return fmt.Errorf("%w: editor.max_queued_edits %d must be at least 1", ErrValidationFailed, e.MaxQueuedEdits)
	}
	if e.CaretBlinkMillis < 0 {
		return fmt.Errorf("%w: editor.caret_blink_ms must not be negative", ErrValidationFailed)
	}
	if e.MaxUndoEntries < 0 {
		return fmt.Errorf("%w: editor.max_undo_entries must not be negative", ErrValidationFailed)
	}
	return nil
}

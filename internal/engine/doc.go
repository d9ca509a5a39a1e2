// Package engine provides the reference implementation of the authoritative
// text engine: a rune-offset buffer with undo/redo history.
//
// Offset convention: every offset and length crossing this package's boundary
// is counted in Unicode scalar values (Go runes), never bytes or UTF-16 code
// units. Diffing, layout and selection all share this convention; mixing
// conventions silently corrupts offsets.
//
// The engine is thread-safe. Mutating operations return the full updated
// buffer so callers can replace their snapshot wholesale.
package engine

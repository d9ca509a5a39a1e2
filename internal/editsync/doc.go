// Package editsync reconciles a locally observed text buffer against an
// authoritative text engine.
//
// It has two parts: a pure diff function that reduces an (old, new) text pair
// to a minimal delete+insert pair by trimming the longest common prefix and
// suffix, and a Queue that buffers per-keystroke edits, debounces them, merges
// the queue on overflow, and dispatches the resulting diffs to the engine in
// strict FIFO order with each delete fully applied before its insert.
//
// All offsets are counted in Unicode scalar values (Go runes).
package editsync

// Package layout turns a flat text buffer plus a width/height constraint
// into positioned lines, spans and pages, and answers bidirectional
// offset<->coordinate queries used by selection, cursor placement and
// scrolling.
//
// Offsets are Unicode scalar values (runes). Newline characters belong to no
// line span but advance the global offset by one between logical lines.
//
// Relayout is single-flight: a request arriving while a computation is in
// flight is coalesced into the next pass rather than queued, because only the
// newest layout is ever useful.
package layout

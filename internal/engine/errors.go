package engine

import "errors"

var (
	// ErrReadOnly is returned when mutating a read-only engine.
	ErrReadOnly = errors.New("engine: buffer is read-only")

	// ErrInvalidOffset is returned for offsets outside [0, Len].
	ErrInvalidOffset = errors.New("engine: offset out of range")

	// ErrInvalidRange is returned for delete ranges extending past the buffer.
	ErrInvalidRange = errors.New("engine: range out of bounds")

	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("engine: nothing to undo")

	// ErrNothingToRedo is returned by Redo on an empty redo stack.
	ErrNothingToRedo = errors.New("engine: nothing to redo")
)

package engine

// Buffer holds document content as a flat rune slice. Structural sharing is
// deliberately absent at this layer: snapshots are replaced wholesale on
// every confirmed edit.
type Buffer struct {
	runes []rune
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{runes: []rune(s)}
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// String returns the full buffer content.
func (b *Buffer) String() string {
	return string(b.runes)
}

// Slice returns the text in [start, end). Bounds must be valid.
func (b *Buffer) Slice(start, end int) string {
	return string(b.runes[start:end])
}

// Insert places text at offset.
func (b *Buffer) Insert(offset int, text string) error {
	if offset < 0 || offset > len(b.runes) {
		return ErrInvalidOffset
	}
	ins := []rune(text)
	if len(ins) == 0 {
		return nil
	}
	out := make([]rune, 0, len(b.runes)+len(ins))
	out = append(out, b.runes[:offset]...)
	out = append(out, ins...)
	out = append(out, b.runes[offset:]...)
	b.runes = out
	return nil
}

// Delete removes length runes starting at offset.
func (b *Buffer) Delete(offset, length int) error {
	if offset < 0 || offset > len(b.runes) {
		return ErrInvalidOffset
	}
	if length < 0 || offset+length > len(b.runes) {
		return ErrInvalidRange
	}
	if length == 0 {
		return nil
	}
	b.runes = append(b.runes[:offset], b.runes[offset+length:]...)
	return nil
}
